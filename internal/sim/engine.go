package sim

import (
	"math"
	"math/rand"
)

// DefaultTickSeconds is the fixed simulation step.
const DefaultTickSeconds = 0.1

// Engine is the fixed-timestep scheduler. Wall-clock elapsed time
// accumulates and is consumed in whole ticks; leftover time carries to the
// next call. One seeded RNG drives every randomness consumer so a run is
// fully reproducible from (seed, timestamp sequence).
type Engine struct {
	tickSeconds float64
	accumulator float64
	lastMs      float64
	primed      bool
	running     bool
	elapsed     float64
	rng         *rand.Rand
}

// NewEngine creates a stopped engine. A non-positive tickSeconds falls back
// to the default.
func NewEngine(seed int64, tickSeconds float64) *Engine {
	if tickSeconds <= 0 {
		tickSeconds = DefaultTickSeconds
	}
	return &Engine{
		tickSeconds: tickSeconds,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Start arms the engine. The first Update after Start only primes the
// baseline timestamp.
func (e *Engine) Start() {
	e.running = true
	e.primed = false
	e.accumulator = 0
}

// Stop halts tick emission. Elapsed time and the RNG stream are preserved.
func (e *Engine) Stop() { e.running = false }

// Running reports whether the engine emits ticks.
func (e *Engine) Running() bool { return e.running }

// TickSeconds returns the fixed step size.
func (e *Engine) TickSeconds() float64 { return e.tickSeconds }

// Elapsed is total simulated time in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// RNG exposes the shared random stream. Call order across consumers is part
// of the reproducibility contract.
func (e *Engine) RNG() *rand.Rand { return e.rng }

// Random draws one float64 from the shared stream.
func (e *Engine) Random() float64 { return e.rng.Float64() }

// Update feeds a wall-clock timestamp in milliseconds and emits zero or more
// fixed ticks through fn. Non-finite or backwards timestamps are dropped
// rather than corrupting the accumulator. Returns the number of ticks
// emitted.
func (e *Engine) Update(nowMs float64, fn func(dt float64)) int {
	if !e.running {
		return 0
	}
	if math.IsNaN(nowMs) || math.IsInf(nowMs, 0) {
		return 0
	}
	if !e.primed {
		e.primed = true
		e.lastMs = nowMs
		return 0
	}
	delta := (nowMs - e.lastMs) / 1000
	e.lastMs = nowMs
	if delta <= 0 {
		return 0
	}
	// Bound runaway frames so a paused host does not replay minutes at once.
	if delta > 5 {
		delta = 5
	}
	e.accumulator += delta

	ticks := 0
	for e.accumulator >= e.tickSeconds {
		e.accumulator -= e.tickSeconds
		e.elapsed += e.tickSeconds
		ticks++
		if fn != nil {
			fn(e.tickSeconds)
		}
	}
	return ticks
}
