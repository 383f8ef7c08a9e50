package sim

import (
	"sync"

	"github.com/san-kum/lifesim/internal/life"
)

// History keeps the most recent population samples seen by an observer.
// Only snapshots carrying a new grid are sampled, and snapshots older than
// the last one sampled are dropped.
type History struct {
	mu      sync.Mutex
	samples []float64
	limit   int

	seen bool
	seq  uint64
	grid *life.Grid
}

func NewHistory(limit int) *History {
	return &History{samples: make([]float64, 0, limit), limit: limit}
}

func (h *History) OnChange(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.seen && (s.Seq < h.seq || s.Grid == h.grid) {
		return
	}
	h.seen, h.seq, h.grid = true, s.Seq, s.Grid

	h.samples = append(h.samples, float64(s.Population))
	if len(h.samples) > h.limit {
		h.samples = h.samples[len(h.samples)-h.limit:]
	}
}

// Values returns a copy of the recorded samples, oldest first.
func (h *History) Values() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]float64, len(h.samples))
	copy(out, h.samples)
	return out
}

// Reset drops the samples. Snapshots older than the last one sampled are
// still ignored afterwards.
func (h *History) Reset() {
	h.mu.Lock()
	h.samples = h.samples[:0]
	h.grid = nil
	h.mu.Unlock()
}
