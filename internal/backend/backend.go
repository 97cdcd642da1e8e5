// Package backend drives the external GPU cracking process (hashcat or a
// compatible binary) as an (argv, stdin, results file, exit code)
// black box: it never links against the process's internals, only
// launches it, feeds it a hashes file (and optionally piped stdin
// candidates), and reads its stdout/stderr back.
//
// Grounded on the Hashcat struct in original_source/src/hashcat.rs.
package backend

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"seedcat/internal/address"
	"seedcat/internal/modeplanner"
	"seedcat/internal/pattern"
)

// sModeMaximum mirrors S_MODE_MAXIMUM in original_source/src/hashcat.rs:
// -S (slow candidate generation) is only worth it below this many
// passphrases.
const sModeMaximum = 10_000_000

// Runner launches and drives one backend process for one recovery attempt.
type Runner struct {
	Exe         string
	Prefix      string
	Target      *address.Target
	Derivations *address.DerivationSet
	Seeds       *pattern.SeedPattern
	Passphrases *pattern.PassphraseAttack
	Mode        modeplanner.Mode
	BinarySeed  *pattern.BinaryCharsetSeed
}

// NewRunner builds a Runner from a chosen modeplanner.Plan.
func NewRunner(exe string, target *address.Target, derivations *address.DerivationSet, seeds *pattern.SeedPattern, plan *modeplanner.Plan) *Runner {
	return &Runner{
		Exe:         exe,
		Prefix:      "hc",
		Target:      target,
		Derivations: derivations,
		Seeds:       seeds,
		Passphrases: plan.Passphrases,
		Mode:        plan.Mode,
		BinarySeed:  plan.BinarySeed,
	}
}

func (r *Runner) HashesFile() string { return r.Prefix + "_hashes.gz" }
func (r *Runner) ErrorFile() string  { return r.Prefix + "_error.log" }
func (r *Runner) OutputFile() string { return r.Prefix + "_output.log" }

func (r *Runner) dictFile(slot int) string {
	return fmt.Sprintf("%s_dict%d.gz", r.Prefix, slot)
}

// BuildArgs assembles the full hashcat argv, matching spawn_hashcat's flag
// order and the -S heuristic exactly.
func (r *Runner) BuildArgs() ([]string, error) {
	args := []string{"-m", "28510", "-w", "4", "--status", "--self-test-disable", "--status-timer", "1"}

	if r.Mode != modeplanner.Stdin && r.totalPassphrases() < sModeMaximum {
		mode := 0
		if r.Passphrases != nil {
			mode = r.Passphrases.AttackMode
		}
		if mode != 6 && mode != 7 {
			args = append(args, "-S")
		}
	}

	if r.Passphrases != nil {
		args = append(args, "-a", strconv.Itoa(r.Passphrases.AttackMode))
		passArgs, err := r.passphraseArgs()
		if err != nil {
			return nil, err
		}
		args = append(args, passArgs...)
	}

	args = append(args, r.HashesFile())
	return args, nil
}

func (r *Runner) totalPassphrases() int64 {
	if r.Passphrases == nil {
		return 0
	}
	return r.Passphrases.Total().Int64()
}

func (r *Runner) passphraseArgs() ([]string, error) {
	p := r.Passphrases

	var args []string
	left, err := r.sideArg(0, p.Left)
	if err != nil {
		return nil, err
	}
	args = append(args, left)

	if p.Right != nil {
		right, err := r.sideArg(1, p.Right)
		if err != nil {
			return nil, err
		}
		args = append(args, right)
	}

	for _, w := range p.Charsets.ToWildcards() {
		args = append(args, fmt.Sprintf("-%c", w.Flag), string(w.Charset))
	}
	return args, nil
}

func (r *Runner) sideArg(slot int, side pattern.PassphraseArg) (string, error) {
	switch v := side.(type) {
	case *pattern.Mask:
		return v.Arg, nil
	case *pattern.Dictionary:
		return r.writeDictionaryFile(slot, v)
	default:
		return "", fmt.Errorf("backend: unknown passphrase arg type %T", side)
	}
}

// Start launches the backend process with the given argv, piping its
// stdin/stdout/stderr back to the caller.
func (r *Runner) Start(ctx context.Context, args []string) (cmd *exec.Cmd, stdin *os.File, stdout *os.File, stderr *os.File, err error) {
	c := exec.CommandContext(ctx, r.Exe, args...)

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	c.Stdin = stdinR

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	c.Stdout = stdoutW

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	c.Stderr = stderrW

	if err := c.Start(); err != nil {
		return nil, nil, nil, nil, err
	}
	stdinR.Close()
	stdoutW.Close()
	stderrW.Close()

	return c, stdinW, stdoutR, stderrR, nil
}

// Result is what RunStdout found by the time the backend process exited
// or reported a match.
type Result struct {
	Found   bool
	Address string
}

// RunStdout tails the backend process's stdout, mirroring every line to
// the output log, reporting progress/start-time callbacks, and returning
// as soon as it sees a line naming Target's address.
//
// Grounded on Hashcat::run_stdout.
func (r *Runner) RunStdout(stdout *os.File, onStart func(startedUnixSeconds int64), onProgress func(current int64)) (*Result, error) {
	f, err := os.Create(r.OutputFile())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	addrPrefix := r.Target.Formatted + ":"
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(f, line)

		switch {
		case strings.HasPrefix(line, "Time.Started.....: "):
			if seconds, ok := parseStartedSeconds(line); ok && onStart != nil {
				onStart(seconds)
			}
		case strings.HasPrefix(line, "Progress.........: "):
			if count, ok := parseProgress(line); ok && onProgress != nil {
				onProgress(count)
			}
		case strings.Contains(line, addrPrefix):
			return &Result{Found: true, Address: line}, scanner.Err()
		}
	}
	return &Result{Found: false}, scanner.Err()
}

// RunStderr mirrors the backend process's stderr line-by-line to the
// error log.
func (r *Runner) RunStderr(stderr *os.File) error {
	f, err := os.Create(r.ErrorFile())
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		fmt.Fprintln(f, scanner.Text())
	}
	return scanner.Err()
}

// parseStartedSeconds extracts the seconds component out of a line like
// "Time.Started.....: Thu Jan 01 00:00:00 1970 (12 secs)".
func parseStartedSeconds(line string) (int64, bool) {
	parts := strings.SplitN(line, " (", 2)
	if len(parts) != 2 {
		return 0, false
	}
	numPart := strings.SplitN(parts[1], " sec", 2)
	if len(numPart) != 2 {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(numPart[0]), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseProgress extracts the numerator out of a line like
// "Progress.........: 123/456 (26.97%)".
func parseProgress(line string) (int64, bool) {
	rest := strings.TrimPrefix(line, "Progress.........: ")
	numPart := strings.SplitN(rest, "/", 2)
	if len(numPart) != 2 {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(numPart[0]), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
