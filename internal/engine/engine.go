package engine

import (
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/piwi3910/SeatShuffle/internal/model"
)

// Engine produces random seatings that honor fixed seats and keep forbidden
// pairs apart. It keeps no state between calls except its random source, and
// Generate is safe for concurrent use.
type Engine struct {
	Settings model.Settings

	mu      sync.Mutex
	master  *rand.Rand // set for seeded engines
	factory func() *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes the engine deterministic: each Generate call draws its own
// stream from a master PCG seeded with seed, so a sequence of calls repeats
// exactly for the same seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.master = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		e.factory = nil
	}
}

// WithRandFactory supplies the random stream for each Generate call. The
// factory must be safe to call from concurrent goroutines if the engine is.
func WithRandFactory(f func() *rand.Rand) Option {
	return func(e *Engine) {
		e.factory = f
		e.master = nil
	}
}

// New creates an Engine, filling zero settings with their defaults.
func New(settings model.Settings, opts ...Option) *Engine {
	if settings.MaxRetries <= 0 {
		settings.MaxRetries = model.DefaultMaxRetries
	}
	if settings.OverflowMode == "" {
		settings.OverflowMode = model.OverflowAnalytic
	}
	e := &Engine{Settings: settings}
	if settings.Seed != nil {
		WithSeed(*settings.Seed)(e)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// stream returns an independent random stream for one call.
func (e *Engine) stream() *rand.Rand {
	if e.factory != nil {
		return e.factory()
	}
	if e.master != nil {
		e.mu.Lock()
		s1, s2 := e.master.Uint64(), e.master.Uint64()
		e.mu.Unlock()
		return rand.New(rand.NewPCG(s1, s2))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Budget returns the retry budget used for req.
func (e *Engine) Budget(req model.Request) int {
	if req.MaxRetries > 0 {
		return req.MaxRetries
	}
	return e.Settings.MaxRetries
}

// Generate seats students 1..req.Students in a req.Rows x req.Cols grid.
//
// Each attempt shuffles the pool, applies the fixed seats, fills the remaining
// cells row-major and rejects the grid if a forbidden pair sits in 4-adjacent
// cells. The first clean grid is returned. When the budget runs out, or when
// the fixed seats themselves put a forbidden pair side by side, Generate
// returns a *PlacementError.
func (e *Engine) Generate(req model.Request) (model.Result, error) {
	if err := req.Validate(); err != nil {
		return model.Result{}, err
	}
	budget := e.Budget(req)
	pairs := newPairSet(req.ForbiddenPairs)

	if c, ok := fixedSeatConflict(req, pairs); ok {
		return model.Result{}, fixedConflict(c, budget)
	}

	pool, overflow := e.seatingPool(req)
	rng := e.stream()

	for attempt := 1; attempt <= budget; attempt++ {
		g := model.NewGrid(req.Rows, req.Cols)
		rest := PlaceFixedSeats(g, req.FixedSeats, Shuffle(rng, pool))
		rest = FillRowMajor(g, rest)

		if pairs.any(g) {
			continue
		}

		out := overflow
		if e.Settings.OverflowMode == model.OverflowShuffle {
			out = slices.Clone(rest)
			slices.Sort(out)
		}
		if out == nil {
			out = []int{}
		}
		return model.Result{
			Seating:  g,
			Overflow: out,
			Attempts: attempt,
		}, nil
	}
	return model.Result{}, exhausted(budget)
}

// seatingPool returns the students that take part in the shuffle and, in
// analytic mode, the overflow decided up front. Analytic mode seats every
// fixed student plus the lowest-numbered others, so the overflow is always
// the highest-numbered unfixed students in ascending order.
func (e *Engine) seatingPool(req model.Request) (pool, overflow []int) {
	roster := Roster(req.Students)
	if e.Settings.OverflowMode == model.OverflowShuffle || req.Students <= req.Capacity() {
		return roster, nil
	}

	pinned := make(map[int]bool, len(req.FixedSeats))
	for _, fs := range req.FixedSeats {
		pinned[fs.Student] = true
	}
	free := req.Capacity() - len(req.FixedSeats)
	pool = make([]int, 0, req.Capacity())
	overflow = make([]int, 0, req.OverflowCount())
	for _, s := range roster {
		switch {
		case pinned[s]:
			pool = append(pool, s)
		case free > 0:
			pool = append(pool, s)
			free--
		default:
			overflow = append(overflow, s)
		}
	}
	return pool, overflow
}

// fixedSeatConflict finds a forbidden pair that the fixed seats alone place in
// adjacent cells. Such a request can never succeed.
func fixedSeatConflict(req model.Request, pairs pairSet) (Conflict, bool) {
	if len(pairs) == 0 || len(req.FixedSeats) < 2 {
		return Conflict{}, false
	}
	g := model.NewGrid(req.Rows, req.Cols)
	PlaceFixedSeats(g, req.FixedSeats, nil)
	var found Conflict
	ok := false
	pairs.scan(g, func(c Conflict) bool {
		found, ok = c, true
		return false
	})
	return found, ok
}
