package sim

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

type Options struct {
	IntervalMs int
	Scheduler  Scheduler
	RNG        *rand.Rand
}

// Controller owns the simulation state. All methods are safe for concurrent
// use; timer-driven advances and control calls are serialised by one lock
// and never interleave.
type Controller struct {
	mu         sync.Mutex
	grid       *life.Grid
	population int
	generation int
	running    bool
	intervalMs int

	sched  Scheduler
	rng    *rand.Rand
	cancel func()
	// epoch invalidates ticks from a timer that fired while being disarmed.
	epoch  uint64
	closed bool
	seq    uint64

	observers []Observer
}

// New returns a stopped controller holding g with its timer disarmed.
func New(g *life.Grid, opts Options) *Controller {
	if opts.Scheduler == nil {
		opts.Scheduler = TickerScheduler{}
	}
	if opts.RNG == nil {
		opts.RNG = life.NewRNG(time.Now().UnixNano())
	}
	if opts.IntervalMs == 0 {
		opts.IntervalMs = DefaultIntervalMs
	}
	c := &Controller{
		intervalMs: clampInterval(opts.IntervalMs),
		sched:      opts.Scheduler,
		rng:        opts.RNG,
	}
	c.setGrid(g)
	return c
}

func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	c.observers = append(c.observers, o)
	c.mu.Unlock()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Start arms the timer. It does nothing if already running or closed.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.running || c.closed {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.arm()
	snap := c.changedLocked()
	c.mu.Unlock()

	slog.Debug("simulation started", "interval_ms", snap.IntervalMs)
	c.notify(snap)
}

// Stop disarms the timer. It does nothing if already stopped.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.disarm()
	snap := c.changedLocked()
	c.mu.Unlock()

	slog.Debug("simulation stopped", "generation", snap.Generation)
	c.notify(snap)
}

// Step advances one generation. It only has an effect while stopped and
// reports whether it advanced.
func (c *Controller) Step() bool {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return false
	}
	c.advance()
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notify(snap)
	return true
}

// SetSpeed scales the tick interval and re-arms the timer when running.
func (c *Controller) SetSpeed(s Speed) int {
	c.mu.Lock()
	prev := c.intervalMs
	c.intervalMs = AdjustInterval(c.intervalMs, s)
	if c.running && c.intervalMs != prev {
		c.disarm()
		c.arm()
	}
	snap := c.changedLocked()
	c.mu.Unlock()

	slog.Debug("speed changed", "direction", s, "interval_ms", snap.IntervalMs)
	c.notify(snap)
	return snap.IntervalMs
}

// Clear stops the simulation and replaces the grid with an empty one of the
// same size.
func (c *Controller) Clear() {
	c.mu.Lock()
	if c.running {
		c.running = false
		c.disarm()
	}
	c.setGrid(life.New(c.grid.Rows(), c.grid.Cols()))
	c.generation = 0
	snap := c.changedLocked()
	c.mu.Unlock()

	slog.Debug("grid cleared")
	c.notify(snap)
}

// Randomize replaces the grid with a random one; running state is kept.
func (c *Controller) Randomize(density float64) {
	c.mu.Lock()
	c.setGrid(life.Randomize(c.grid, density, c.rng))
	c.generation = 0
	snap := c.changedLocked()
	c.mu.Unlock()

	slog.Debug("grid randomized", "density", density, "population", snap.Population)
	c.notify(snap)
}

// SeedPreset replaces the grid with the named pattern; running state is kept.
func (c *Controller) SeedPreset(name string) error {
	c.mu.Lock()
	g, err := life.Seed(name, c.grid.Rows(), c.grid.Cols())
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.setGrid(g)
	c.generation = 0
	snap := c.changedLocked()
	c.mu.Unlock()

	slog.Debug("preset seeded", "preset", name)
	c.notify(snap)
	return nil
}

// Edit applies fn to the current grid and installs the result, atomically
// with respect to timer ticks. fn must not modify its argument; returning
// an error leaves the state unchanged.
func (c *Controller) Edit(fn func(g *life.Grid) (*life.Grid, error)) error {
	c.mu.Lock()
	next, err := fn(c.grid)
	if err == nil && !c.grid.SameSize(next) {
		err = fmt.Errorf("%w: want %dx%d", ErrSizeMismatch, c.grid.Rows(), c.grid.Cols())
	}
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.setGrid(next)
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// Toggle flips (r, c).
func (c *Controller) Toggle(r, col int) error {
	return c.Edit(func(g *life.Grid) (*life.Grid, error) { return g.Toggle(r, col) })
}

// SetCell writes v to (r, c).
func (c *Controller) SetCell(r, col int, v life.Cell) error {
	return c.Edit(func(g *life.Grid) (*life.Grid, error) { return g.Set(r, col, v) })
}

// Close stops the simulation and disarms the timer for good. Calling it more
// than once is harmless.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	c.closed = true
	c.disarm()
}

func (c *Controller) tick(epoch uint64) {
	c.mu.Lock()
	if !c.running || epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	c.advance()
	snap := c.changedLocked()
	c.mu.Unlock()

	c.notify(snap)
}

func (c *Controller) arm() {
	c.epoch++
	epoch := c.epoch
	c.cancel = c.sched.Every(time.Duration(c.intervalMs)*time.Millisecond, func() { c.tick(epoch) })
}

func (c *Controller) disarm() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.epoch++
}

func (c *Controller) advance() {
	c.setGrid(life.Advance(c.grid))
	c.generation++
}

func (c *Controller) setGrid(g *life.Grid) {
	c.grid = g
	c.population = g.Population()
}

// changedLocked records a state change and returns the new snapshot.
func (c *Controller) changedLocked() Snapshot {
	c.seq++
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Grid:       c.grid,
		Running:    c.running,
		IntervalMs: c.intervalMs,
		Generation: c.generation,
		Population: c.population,
		Seq:        c.seq,
	}
}

func (c *Controller) notify(s Snapshot) {
	c.mu.Lock()
	observers := c.observers
	c.mu.Unlock()
	for _, o := range observers {
		o.OnChange(s)
	}
}

// AdjustInterval scales ms by the speed factor, rounds to the nearest
// millisecond and clamps to [MinIntervalMs, MaxIntervalMs]. Rounding happens
// on every call, so repeated adjustments compound the rounded value.
func AdjustInterval(ms int, s Speed) int {
	factor := SlowerFactor
	if s == Faster {
		factor = FasterFactor
	}
	return clampInterval(int(math.Round(float64(ms) * factor)))
}

func clampInterval(ms int) int {
	if ms < MinIntervalMs {
		return MinIntervalMs
	}
	if ms > MaxIntervalMs {
		return MaxIntervalMs
	}
	return ms
}
