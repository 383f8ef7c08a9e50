package sim_test

import (
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
)

type manualTimer struct {
	interval time.Duration
	fn       func()
	canceled int
}

// manualScheduler records armed timers and fires them on demand.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) Every(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{interval: d, fn: fn}
	s.timers = append(s.timers, t)
	return func() {
		s.mu.Lock()
		t.canceled++
		s.mu.Unlock()
	}
}

func (s *manualScheduler) active() []*manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTimer
	for _, t := range s.timers {
		if t.canceled == 0 {
			out = append(out, t)
		}
	}
	return out
}

func (s *manualScheduler) fire() {
	for _, t := range s.active() {
		t.fn()
	}
}

var _ = Describe("Controller", func() {
	var (
		sched *manualScheduler
		ctrl  *sim.Controller
	)

	BeforeEach(func() {
		sched = &manualScheduler{}
		ctrl = sim.New(life.New(50, 80), sim.Options{Scheduler: sched, RNG: life.NewRNG(1)})
	})

	AfterEach(func() {
		ctrl.Close()
	})

	It("starts stopped with an empty grid and the default interval", func() {
		s := ctrl.Snapshot()
		Expect(s.Running).To(BeFalse())
		Expect(s.IntervalMs).To(Equal(sim.DefaultIntervalMs))
		Expect(s.Population).To(BeZero())
		Expect(sched.active()).To(BeEmpty())
	})

	Describe("Start and Stop", func() {
		It("arms exactly one timer however often Start is called", func() {
			ctrl.Start()
			ctrl.Start()
			Expect(ctrl.Snapshot().Running).To(BeTrue())
			Expect(sched.active()).To(HaveLen(1))
			Expect(sched.active()[0].interval).To(Equal(200 * time.Millisecond))
		})

		It("cancels the timer on Stop and tolerates repeated Stop", func() {
			ctrl.Start()
			t := sched.active()[0]
			ctrl.Stop()
			ctrl.Stop()
			Expect(ctrl.Snapshot().Running).To(BeFalse())
			Expect(t.canceled).To(Equal(1))
			Expect(sched.active()).To(BeEmpty())
		})

		It("leaves no orphaned timers after repeated cycles", func() {
			for i := 0; i < 5; i++ {
				ctrl.Start()
				ctrl.Stop()
			}
			Expect(sched.active()).To(BeEmpty())
			Expect(sched.timers).To(HaveLen(5))
		})
	})

	Describe("timer ticks", func() {
		BeforeEach(func() {
			Expect(ctrl.SeedPreset("glider")).To(Succeed())
		})

		It("advances the current grid on each tick", func() {
			before := ctrl.Snapshot().Grid
			ctrl.Start()
			sched.fire()
			s := ctrl.Snapshot()
			Expect(s.Generation).To(Equal(1))
			Expect(s.Grid.Equal(life.Advance(before))).To(BeTrue())
		})

		It("advances edits made between ticks", func() {
			ctrl.Start()
			Expect(ctrl.SetCell(40, 40, life.Alive)).To(Succeed())
			sched.fire()
			Expect(ctrl.Snapshot().Grid.Alive(40, 40)).To(BeFalse())
		})

		It("ignores a tick from a timer that was disarmed", func() {
			ctrl.Start()
			stale := sched.active()[0]
			ctrl.Stop()
			stale.fn()
			Expect(ctrl.Snapshot().Generation).To(BeZero())
		})

		It("keeps prior snapshots unchanged", func() {
			before := ctrl.Snapshot().Grid
			text := before.String()
			ctrl.Start()
			sched.fire()
			Expect(before.String()).To(Equal(text))
		})
	})

	Describe("Step", func() {
		It("advances one generation while stopped", func() {
			Expect(ctrl.SeedPreset("blinker")).To(Succeed())
			Expect(ctrl.Step()).To(BeTrue())
			Expect(ctrl.Snapshot().Generation).To(Equal(1))
		})

		It("has no effect while running", func() {
			Expect(ctrl.SeedPreset("blinker")).To(Succeed())
			ctrl.Start()
			before := ctrl.Snapshot().Grid
			Expect(ctrl.Step()).To(BeFalse())
			Expect(ctrl.Snapshot().Grid).To(BeIdenticalTo(before))
		})
	})

	Describe("SetSpeed", func() {
		It("rounds after each step", func() {
			ctrl.SetSpeed(sim.Faster)
			ctrl.SetSpeed(sim.Faster)
			Expect(ctrl.SetSpeed(sim.Faster)).To(Equal(102))
		})

		It("never leaves the allowed range", func() {
			for i := 0; i < 50; i++ {
				Expect(ctrl.SetSpeed(sim.Faster)).To(BeNumerically(">=", sim.MinIntervalMs))
			}
			Expect(ctrl.Snapshot().IntervalMs).To(Equal(sim.MinIntervalMs))
			for i := 0; i < 50; i++ {
				Expect(ctrl.SetSpeed(sim.Slower)).To(BeNumerically("<=", sim.MaxIntervalMs))
			}
			Expect(ctrl.Snapshot().IntervalMs).To(Equal(sim.MaxIntervalMs))
		})

		It("re-arms the timer with the new interval while running", func() {
			ctrl.Start()
			old := sched.active()[0]
			ctrl.SetSpeed(sim.Slower)
			Expect(old.canceled).To(Equal(1))
			Expect(sched.active()).To(HaveLen(1))
			Expect(sched.active()[0].interval).To(Equal(250 * time.Millisecond))
		})

		It("does not arm a timer while stopped", func() {
			ctrl.SetSpeed(sim.Faster)
			Expect(sched.timers).To(BeEmpty())
		})
	})

	Describe("Clear", func() {
		It("stops the simulation and empties the grid", func() {
			ctrl.Randomize(0.5)
			ctrl.Start()
			ctrl.Clear()
			s := ctrl.Snapshot()
			Expect(s.Running).To(BeFalse())
			Expect(s.Population).To(BeZero())
			Expect(s.Grid.Rows()).To(Equal(50))
			Expect(s.Grid.Cols()).To(Equal(80))
			Expect(sched.active()).To(BeEmpty())
		})
	})

	Describe("Randomize and SeedPreset", func() {
		It("keep the running state", func() {
			ctrl.Start()
			ctrl.Randomize(life.DefaultDensity)
			Expect(ctrl.Snapshot().Running).To(BeTrue())
			Expect(ctrl.SeedPreset("glider")).To(Succeed())
			Expect(ctrl.Snapshot().Running).To(BeTrue())
			Expect(ctrl.Snapshot().Population).To(Equal(5))
		})

		It("honours density bounds", func() {
			ctrl.Randomize(1)
			Expect(ctrl.Snapshot().Population).To(Equal(50 * 80))
			ctrl.Randomize(0)
			Expect(ctrl.Snapshot().Population).To(BeZero())
		})

		It("rejects unknown presets without changing the grid", func() {
			before := ctrl.Snapshot().Grid
			err := ctrl.SeedPreset("nope")
			Expect(errors.Is(err, life.ErrUnknownPreset)).To(BeTrue())
			Expect(ctrl.Snapshot().Grid).To(BeIdenticalTo(before))
		})
	})

	Describe("Edit", func() {
		It("fails fast on out-of-bounds coordinates", func() {
			err := ctrl.Toggle(50, 0)
			Expect(errors.Is(err, life.ErrOutOfBounds)).To(BeTrue())
		})

		It("rejects grids of a different size", func() {
			err := ctrl.Edit(func(*life.Grid) (*life.Grid, error) { return life.New(3, 3), nil })
			Expect(errors.Is(err, sim.ErrSizeMismatch)).To(BeTrue())
		})

		It("notifies observers with the new population", func() {
			var got []int
			ctrl.AddObserver(sim.ObserverFunc(func(s sim.Snapshot) { got = append(got, s.Population) }))
			Expect(ctrl.Toggle(1, 1)).To(Succeed())
			Expect(ctrl.Toggle(1, 2)).To(Succeed())
			Expect(got).To(Equal([]int{1, 2}))
		})
	})

	Describe("Close", func() {
		It("disarms the timer and refuses to restart", func() {
			ctrl.Start()
			t := sched.active()[0]
			ctrl.Close()
			ctrl.Close()
			Expect(t.canceled).To(Equal(1))
			ctrl.Start()
			Expect(ctrl.Snapshot().Running).To(BeFalse())
			Expect(sched.active()).To(BeEmpty())
		})
	})
})

var _ = Describe("TickerScheduler", func() {
	It("fires periodically until canceled", func() {
		var mu sync.Mutex
		count := 0
		cancel := sim.TickerScheduler{}.Every(5*time.Millisecond, func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
		Eventually(func() int {
			mu.Lock()
			defer mu.Unlock()
			return count
		}).Should(BeNumerically(">=", 2))
		cancel()
		cancel()
	})
})

var _ = Describe("History", func() {
	var (
		sched   *manualScheduler
		ctrl    *sim.Controller
		history *sim.History
	)

	BeforeEach(func() {
		sched = &manualScheduler{}
		ctrl = sim.New(life.New(20, 20), sim.Options{Scheduler: sched, RNG: life.NewRNG(1)})
		history = sim.NewHistory(100)
		ctrl.AddObserver(history)
		Expect(ctrl.SeedPreset("glider")).To(Succeed())
	})

	AfterEach(func() {
		ctrl.Close()
	})

	It("samples the seeded board", func() {
		Expect(history.Values()).To(Equal([]float64{5}))
	})

	It("ignores start, stop and speed changes", func() {
		ctrl.SetSpeed(sim.Faster)
		ctrl.SetSpeed(sim.Slower)
		ctrl.Start()
		ctrl.Stop()
		Expect(history.Values()).To(HaveLen(1))
	})

	It("samples every generation", func() {
		ctrl.Step()
		ctrl.Start()
		sched.fire()
		sched.fire()
		Expect(history.Values()).To(HaveLen(4))
	})

	It("drops snapshots older than the last sample", func() {
		ctrl.Step()
		stale := ctrl.Snapshot()
		ctrl.Step()
		n := len(history.Values())

		stale.Grid = life.New(20, 20)
		history.OnChange(stale)
		Expect(history.Values()).To(HaveLen(n))
	})

	It("keeps the first board sample after a reset", func() {
		ctrl.Step()
		history.Reset()
		ctrl.Randomize(0.5)
		Expect(history.Values()).To(Equal([]float64{float64(ctrl.Snapshot().Population)}))
	})
})

var _ = Describe("Snapshot sequence", func() {
	It("increases with every notified change", func() {
		ctrl := sim.New(life.New(5, 5), sim.Options{Scheduler: &manualScheduler{}})
		defer ctrl.Close()

		var seqs []uint64
		ctrl.AddObserver(sim.ObserverFunc(func(s sim.Snapshot) { seqs = append(seqs, s.Seq) }))
		ctrl.Start()
		ctrl.SetSpeed(sim.Faster)
		ctrl.Stop()
		Expect(ctrl.Toggle(1, 1)).To(Succeed())

		Expect(seqs).To(Equal([]uint64{1, 2, 3, 4}))
		Expect(ctrl.Snapshot().Seq).To(Equal(uint64(4)))
	})
})
