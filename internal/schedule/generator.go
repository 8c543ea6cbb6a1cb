package schedule

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/tiendc/go-deepcopy"
	"golang.org/x/sync/errgroup"
)

// ErrNoSchedule is returned when every construction attempt failed.
var ErrNoSchedule = errors.New("no schedule could be generated")

// DefaultAttempts is the number of independent construction attempts per run.
const DefaultAttempts = 1500

// Generator runs the best-of-N schedule search. The zero value is usable.
type Generator struct {
	Attempts int            // construction attempts; DefaultAttempts if <= 0
	Workers  int            // concurrent workers; GOMAXPROCS if <= 0
	Seed     int64          // base RNG seed; time-based if 0
	Weights  Weights        // scoring weights; DefaultWeights if zero
	Log      zerolog.Logger // diagnostics; zero value is silent
}

// Generate builds Attempts independent schedules and returns the one with
// the lowest score. Each attempt starts from fresh history and its own
// seeded RNG, so attempts are independent random restarts and can run in
// parallel with only the final keep-minimum needing synchronization.
//
// Cancelling ctx stops dispatching new attempts; the best schedule found so
// far is returned. The error case is reserved for a run where no attempt at
// all produced a schedule.
func (g *Generator) Generate(ctx context.Context, event string, roster []Player, opts Options) (*GameSchedule, error) {
	attempts := g.Attempts
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > attempts {
		workers = attempts
	}
	seed := g.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	weights := g.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}

	// Snapshot the inputs so caller-side mutation cannot race the workers.
	var players []Player
	if err := deepcopy.Copy(&players, roster); err != nil {
		return nil, fmt.Errorf("copying roster: %w", err)
	}
	var options Options
	if err := deepcopy.Copy(&options, opts); err != nil {
		return nil, fmt.Errorf("copying options: %w", err)
	}

	var (
		mu          sync.Mutex
		best        *GameSchedule
		bestScore   = math.Inf(1)
		bestAttempt = math.MaxInt
		next        atomic.Int64
	)

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			for {
				if ctx.Err() != nil {
					return nil
				}
				i := int(next.Add(1)) - 1
				if i >= attempts {
					return nil
				}

				rng := rand.New(rand.NewSource(seed + int64(i)))
				s, err := newBuilder(players, options, rng).build()
				if err != nil {
					g.Log.Debug().Int("attempt", i).Err(err).Msg("attempt discarded")
					continue
				}
				s.Score = Score(s, players, weights)

				mu.Lock()
				// Attempt index breaks score ties so the result does not
				// depend on worker arrival order.
				if s.Score < bestScore || (s.Score == bestScore && i < bestAttempt) {
					bestScore = s.Score
					bestAttempt = i
					best = s
					g.Log.Debug().Int("attempt", i).Float64("score", s.Score).Msg("new best schedule")
				}
				mu.Unlock()
			}
		})
	}
	_ = eg.Wait()

	if best == nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoSchedule, err)
		}
		return nil, ErrNoSchedule
	}

	best.Event = event
	best.CreatedAt = time.Now()
	g.Log.Info().
		Int("attempts", attempts).
		Int("workers", workers).
		Float64("score", bestScore).
		Msg("schedule selected")
	return best, nil
}

// Generate runs a search with default settings.
func Generate(ctx context.Context, event string, roster []Player, opts Options) (*GameSchedule, error) {
	g := Generator{Log: zerolog.Nop()}
	return g.Generate(ctx, event, roster, opts)
}
