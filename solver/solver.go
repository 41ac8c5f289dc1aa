package solver

import (
	"context"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"

	"ecashclient/protocol"
)

// Solver drives a batch of candidate guesses against a single puzzle. The
// memory-hard key derivation dominates every attempt (a few hundred ms and
// ~128MiB each), so Workers defaults to the CPU count; raising it past that
// only inflates peak memory.
type Solver struct {
	Workers int
}

func New() *Solver {
	return &Solver{Workers: runtime.NumCPU()}
}

// Run pulls candidates from guesses until one decrypts the blob, the
// channel drains, or ctx is canceled. Candidates normalizing to an
// already-attempted answer (or to empty) are skipped. Returns the winning
// result, or nil if nothing matched. The first non-guess error (malformed
// blob, derivation rejection) aborts the whole batch.
func (s *Solver) Run(ctx context.Context, puzzleID uint64, blob protocol.PuzzleBlob, guesses <-chan string) (*protocol.DecryptResult, error) {

	// Fail fast on author/caller bugs before spinning anything up
	if err := blob.Validate(); err != nil {
		return nil, err
	}

	workers := s.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		found    *protocol.DecryptResult
		firstErr error
		seen     = make(map[string]bool)
	)

	attempted := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for {
				select {
				case <-ctx.Done():
					return

				case guess, ok := <-guesses:
					if !ok {
						return
					}

					normalized := protocol.Normalize(guess)
					if normalized == "" {
						continue
					}

					// Dedupe by normalized form; the derivation only sees
					// the normalized guess anyway
					mu.Lock()
					dup := seen[normalized]
					seen[normalized] = true
					attempted++
					mu.Unlock()

					if dup {
						continue
					}

					result, err := protocol.TryDecrypt(puzzleID, guess, blob)
					if err != nil {
						mu.Lock()
						if firstErr == nil {
							firstErr = err
						}
						mu.Unlock()
						cancel()

						return
					}

					if result.Success {
						log.WithFields(log.Fields{
							"PuzzleId": puzzleID, "Answer": result.Normalized,
						}).Info("Puzzle solved")

						mu.Lock()
						if found == nil {
							found = result
						}
						mu.Unlock()
						cancel()

						return
					}

					log.WithField("Guess", normalized).Debug("Wrong guess")
				}
			}
		}()
	}

	wg.Wait()

	log.WithFields(log.Fields{
		"PuzzleId": puzzleID, "Attempts": attempted,
	}).Debug("Batch finished")

	if firstErr != nil {
		return nil, firstErr
	}

	return found, nil
}
