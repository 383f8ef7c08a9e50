package sim

import (
	"errors"
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

const (
	MinIntervalMs     = 20
	MaxIntervalMs     = 2000
	DefaultIntervalMs = 200

	FasterFactor = 0.8
	SlowerFactor = 1.25
)

// ErrSizeMismatch indicates a replacement grid whose dimensions differ from
// the controller's.
var ErrSizeMismatch = errors.New("sim: grid size mismatch")

type Speed int

const (
	Faster Speed = iota
	Slower
)

func (s Speed) String() string {
	if s == Faster {
		return "faster"
	}
	return "slower"
}

// Snapshot is a read-only view of the controller state.
type Snapshot struct {
	Grid       *life.Grid
	Running    bool
	IntervalMs int
	Generation int
	Population int
	// Seq increases with every state change.
	Seq uint64
}

func (s Snapshot) Interval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}

// CanStart, CanStop and CanStep mirror the enable state of the matching
// controls.
func (s Snapshot) CanStart() bool { return !s.Running }
func (s Snapshot) CanStop() bool  { return s.Running }
func (s Snapshot) CanStep() bool  { return !s.Running }

// Observer is notified after every state change. Notifications are
// delivered outside the controller lock, possibly from the timer goroutine,
// so a tick racing a control call can arrive out of order. Compare Seq to
// discard stale snapshots.
type Observer interface {
	OnChange(s Snapshot)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Snapshot)

func (f ObserverFunc) OnChange(s Snapshot) { f(s) }
