package backend

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"seedcat/internal/enumerator"
)

// RunStdin drives Stdin mode: it shards r.Seeds across workers workers,
// checksum-filters each word list as the Enumerator produces it, and
// writes one line per (derivation path, word list) pair to stdin in the
// wire format from §6: "<path>:<word1>,<word2>,...,<wordL>". It returns
// once the Enumerator is exhausted or ctx is cancelled, and always closes
// stdin before returning so the backend process sees EOF.
//
// Grounded on HashcatStdin/stdin_sender in original_source/src/hashcat.rs,
// generalized from its channel-of-pre-rendered-args design to read
// straight off the Enumerator's candidate channel.
func (r *Runner) RunStdin(ctx context.Context, stdin io.WriteCloser, workers int) error {
	defer stdin.Close()

	e := enumerator.New(r.Seeds, workers)
	w := bufio.NewWriter(stdin)

	for candidate := range e.Run(ctx) {
		words := r.Seeds.FormatWords(candidate.Words)
		for _, path := range r.Derivations.Paths {
			if _, err := fmt.Fprintf(w, "%s:%s\n", path.String(), words); err != nil {
				e.Stop()
				return err
			}
		}
	}
	return w.Flush()
}
