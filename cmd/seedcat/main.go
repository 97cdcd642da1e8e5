// Command seedcat is the CLI entrypoint: it parses a target address, seed
// pattern, derivation pattern, and passphrase attack, prints a
// "Seedcat Configuration" preview, confirms with the operator, then drives
// an external GPU hashing process until it reports a match or exhausts the
// search space.
//
// Grounded on cmd/btc_lottery/main.go's flag layout, signal.NotifyContext
// shutdown sequence, and progress-reporter goroutine shape, and on
// original_source/src/main.rs's configure() orchestration order (validate
// -> parse -> preview -> confirm -> plan -> run -> report).
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"seedcat/internal/address"
	"seedcat/internal/backend"
	"seedcat/internal/cardinality"
	"seedcat/internal/modeplanner"
	"seedcat/internal/pattern"
	"seedcat/internal/preview"
	"seedcat/internal/selftest"
	"seedcat/internal/wordlist"
)

// stringList accumulates a repeatable flag, letting --passphrase be given
// zero, one, or two times, matching clap's num_args semantics for that
// argument in original_source/src/main.rs.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

func main() {
	if len(os.Args) > 1 && os.Args[1] == "test" {
		testMain(os.Args[2:])
		return
	}
	os.Exit(run(os.Args[1:]))
}

func testMain(args []string) {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	integration := fs.Bool("t", false, "run integration tests")
	bench := fs.Bool("bench", false, "run the benchmark suite")
	fs.Parse(args)

	if *integration || (!*integration && !*bench) {
		results, err := selftest.RunAll()
		fmt.Print(selftest.Summarize(results))
		if err != nil {
			log.Fatalf("test: %v", err)
		}
		for _, r := range results {
			if !r.Matched {
				os.Exit(1)
			}
		}
	}

	if *bench {
		for _, s := range selftest.Scenarios {
			start := time.Now()
			if _, err := selftest.Run(s); err != nil {
				log.Fatalf("bench: %s: %v", s.Name, err)
			}
			log.Printf("%s: %s", s.Name, time.Since(start))
		}
	}
}

func run(args []string) int {
	fs := flag.NewFlagSet("seedcat", flag.ContinueOnError)
	addr := fs.String("address", "", "Address, e.g. 'bc1q...' OR master xpub key, e.g. 'xpub661...'")
	seedArg := fs.String("seed", "", "Seed words with wildcards, e.g. 'cage,?,zo?,?be,?oo?,toward|st?,able...'")
	derivation := fs.String("derivation", "", "Derivation paths with wildcards, e.g. 'm/0/0,m/49h/0h/0h/?2/?10'")
	combinations := fs.Int("combinations", 0, "Guess all permutations of this many seed words")
	exe := fs.String("exe", "hashcat", "Path to the backend hashing executable")
	workers := fs.Int("w", runtime.NumCPU(), "Number of CPU workers in Stdin mode")
	skipPrompt := fs.Bool("skip-prompt", false, "Skip the confirmation prompt and start immediately")

	var passphraseArgs stringList
	fs.Var(&passphraseArgs, "passphrase", "Dictionaries and/or mask, e.g. './dict.txt' '?l?l?l?d?1'")

	var charsetFlags [4]*string
	for i := range charsetFlags {
		charsetFlags[i] = fs.String(fmt.Sprintf("custom-charset%d", i+1), "", "User-defined charset for use in a passphrase mask attack")
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *addr == "" || *seedArg == "" {
		fmt.Fprintln(os.Stderr, "seedcat: --address and --seed are required")
		return 1
	}

	target, err := address.Classify(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: %v\n", err)
		return 1
	}

	wl := wordlist.Load()
	var combo *int
	if *combinations > 0 {
		combo = combinations
	}
	seeds, err := pattern.ParseSeed(*seedArg, combo, wl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: %v\n", err)
		return 1
	}
	if err := seeds.ValidateLength(); err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: %v\n", err)
		return 1
	}

	var derivSpec *string
	if *derivation != "" {
		derivSpec = derivation
	}
	derivations, err := address.ParseDerivation(derivSpec, target.Kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: %v\n", err)
		return 1
	}

	var customCharsets [4]*string
	for i, c := range charsetFlags {
		if *c != "" {
			customCharsets[i] = c
		}
	}
	passphrases, err := parsePassphrases(passphraseArgs, customCharsets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: %v\n", err)
		return 1
	}

	report := cardinality.Estimate(seeds, derivations, passphrases)

	preview.Heading("Seedcat Configuration")
	log.Printf("%s Address: %s", target.Kind, target.Formatted)
	preview.FormatAttempt("Derivations", derivations)
	preview.FormatAttempt("Seeds", seeds)
	if len(passphraseArgs) > 0 {
		preview.FormatAttempt("Passphrases", passphrases)
	}

	if seeds.ValidSeeds().Sign() == 0 {
		fmt.Fprintln(os.Stderr, "seedcat: all possible seeds have invalid checksums")
		return 1
	}
	preview.PrintNum("Total Guesses: ", report.CandidateTotal)

	plan := modeplanner.Choose(seeds, passphrases, report)
	printModeMessage(plan.Mode)

	if !*skipPrompt && !promptContinue() {
		return 0
	}

	preview.Heading("Seedcat Recovery")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return recover_(ctx, *exe, target, derivations, seeds, plan, *workers)
}

func parsePassphrases(args []string, customCharsets [4]*string) (*pattern.PassphraseAttack, error) {
	if len(args) == 0 {
		return pattern.EmptyMask(), nil
	}
	return pattern.ParsePassphrase(args, customCharsets)
}

func printModeMessage(mode modeplanner.Mode) {
	switch mode {
	case modeplanner.PureGPU:
		log.Println("Pure GPU Mode: can run on large GPU clusters")
	case modeplanner.BinaryCharset:
		log.Println("Pure GPU Mode: can run on large GPU clusters (using binary charsets)")
	case modeplanner.Stdin:
		log.Println("Stdin Mode: CPU-limited candidate generation")
	}
}

func promptContinue() bool {
	fmt.Print("\nContinue with recovery [Y/n]? ")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return !strings.Contains(strings.ToLower(line), "n")
}

// recover_ launches the backend process and reports the outcome, exiting
// 0 on a found match or clean exhaustion and 2 on a backend failure,
// matching §6's exit-code table.
func recover_(ctx context.Context, exe string, target *address.Target, derivations *address.DerivationSet, seeds *pattern.SeedPattern, plan *modeplanner.Plan, workers int) int {
	runner := backend.NewRunner(exe, target, derivations, seeds, plan)

	argv, err := runner.BuildArgs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: %v\n", err)
		return 1
	}

	if plan.Mode != modeplanner.Stdin {
		if err := runner.WriteHashesFile(); err != nil {
			fmt.Fprintf(os.Stderr, "seedcat: writing hashes file: %v\n", err)
			return 1
		}
	}

	cmd, stdin, stdout, stderr, err := runner.Start(ctx, argv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: launching backend: %v\n", err)
		return 2
	}

	if plan.Mode == modeplanner.Stdin {
		go func() {
			if err := runner.RunStdin(ctx, stdin, workers); err != nil && ctx.Err() == nil {
				log.Printf("seedcat: stdin streaming: %v", err)
			}
		}()
	} else {
		stdin.Close()
	}

	go func() {
		_ = runner.RunStderr(stderr)
	}()

	timer := preview.NewTimer("Progress", plan.Report.HashTotal.Int64(), 1)
	result, err := runner.RunStdout(stdout, func(startedSeconds int64) {
		timer.Start(startedSeconds)
	}, func(current int64) {
		timer.Store(current)
	})
	timer.Stop()

	waitErr := cmd.Wait()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seedcat: reading backend output: %v\n", err)
		return 2
	}
	if !result.Found && waitErr != nil {
		fmt.Fprintf(os.Stderr, "seedcat: backend exited abnormally before exhausting the search: %v\n", waitErr)
		return 2
	}

	logFound(result)
	return 0
}

func logFound(result *backend.Result) {
	if !result.Found {
		fmt.Println("Exhausted search with no results...try with different parameters")
		return
	}
	parts := strings.SplitN(result.Address, ":", 2)
	fmt.Print("Found Seed: ")
	if len(parts) == 2 {
		fmt.Println(parts[1])
	} else {
		fmt.Println(result.Address)
	}
}
