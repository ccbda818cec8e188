package wave

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"

	pb "github.com/setanarut/patternbuilder"
)

// Attempt is the outcome of one seeded run.
type Attempt struct {
	Seed   uint64
	Result pb.Result
}

// RunAttempts runs one independent Wave per seed on at most workers
// goroutines. All attempts share cfg read-only. It returns the first collapsed
// attempt in seed order. When none collapsed it returns the first attempt
// stopped by limit with ErrIncomplete, or the last attempt with
// ErrContradiction when every attempt contradicted.
func RunAttempts(cfg *pb.SolverConfig, seeds []uint64, limit, workers int) (Attempt, error) {
	if len(seeds) == 0 {
		return Attempt{}, fmt.Errorf("wave: no seeds")
	}
	p := pool.NewWithResults[Attempt]().WithMaxGoroutines(max(1, workers))
	for _, seed := range seeds {
		p.Go(func() Attempt {
			return Attempt{Seed: seed, Result: New(cfg, seed).Run(limit)}
		})
	}
	attempts := p.Wait()

	// Wait returns results in completion order.
	bySeed := make(map[uint64]Attempt, len(attempts))
	for _, a := range attempts {
		bySeed[a.Seed] = a
	}
	var (
		partial *Attempt
		last    Attempt
	)
	for _, seed := range seeds {
		a := bySeed[seed]
		switch a.Result.Status {
		case pb.Collapsed:
			pb.Logger().Info("solve finished", "seed", seed, "status", a.Result.Status)
			return a, nil
		case pb.InProgress:
			if partial == nil {
				partial = &a
			}
		}
		last = a
	}
	if partial != nil {
		pb.Logger().Warn("no attempt collapsed within the step limit", "attempts", len(seeds), "limit", limit)
		return *partial, fmt.Errorf("wave: seed %d after %d steps: %w", partial.Seed, limit, pb.ErrIncomplete)
	}
	pb.Logger().Warn("every attempt hit a contradiction", "attempts", len(seeds))
	return last, fmt.Errorf("wave: %d attempts: %w", len(seeds), pb.ErrContradiction)
}
