package paint

import (
	"errors"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
)

// gridTarget is a bare Target holding a grid and counting edits.
type gridTarget struct {
	grid  *life.Grid
	edits int
}

func (t *gridTarget) Edit(fn func(*life.Grid) (*life.Grid, error)) error {
	next, err := fn(t.grid)
	if err != nil {
		return err
	}
	t.grid = next
	t.edits++
	return nil
}

func diff(a, b *life.Grid) int {
	n := 0
	for r := 0; r < a.Rows(); r++ {
		for c := 0; c < a.Cols(); c++ {
			if a.At(r, c) != b.At(r, c) {
				n++
			}
		}
	}
	return n
}

func TestPointerDownTogglesOneCell(t *testing.T) {
	start := life.New(5, 5)
	target := &gridTarget{grid: start}
	p := New(target)

	if err := p.PointerDown(2, 3); err != nil {
		t.Fatal(err)
	}
	p.Release()

	if n := diff(start, target.grid); n != 1 {
		t.Errorf("expected 1 changed cell, got %d", n)
	}
	if !target.grid.Alive(2, 3) {
		t.Error("dead cell should become live")
	}
	if p.Active() {
		t.Error("release should end the session")
	}
}

func TestPointerDownChoosesEraseMode(t *testing.T) {
	start, _ := life.Parse(`
		###
		###
	`)
	target := &gridTarget{grid: start}
	p := New(target)

	if err := p.PointerDown(0, 0); err != nil {
		t.Fatal(err)
	}
	if s := p.Session(); s.Value != life.Dead {
		t.Fatalf("starting on a live cell should erase, got value %d", s.Value)
	}
	for _, c := range []int{1, 2} {
		if err := p.PointerEnter(0, c); err != nil {
			t.Fatal(err)
		}
	}
	p.Release()

	want, _ := life.Parse(`
		...
		###
	`)
	if !target.grid.Equal(want) {
		t.Errorf("got:\n%s\nwant:\n%s", target.grid, want)
	}
}

func TestDragPaintsDistinctCells(t *testing.T) {
	start := life.New(10, 10)
	target := &gridTarget{grid: start}
	p := New(target)

	if err := p.PointerDown(0, 0); err != nil {
		t.Fatal(err)
	}
	path := []Coord{{0, 1}, {0, 1}, {0, 2}, {1, 2}, {1, 2}, {1, 3}}
	for _, c := range path {
		if err := p.PointerEnter(c.Row, c.Col); err != nil {
			t.Fatal(err)
		}
	}
	p.Release()

	if n := diff(start, target.grid); n != 5 {
		t.Errorf("expected 5 changed cells, got %d", n)
	}
	if target.edits != 5 {
		t.Errorf("re-entering the last cell should not edit; got %d edits", target.edits)
	}
}

func TestReenterAfterLeavingRepaintsSameValue(t *testing.T) {
	target := &gridTarget{grid: life.New(3, 3)}
	p := New(target)

	_ = p.PointerDown(1, 1)
	_ = p.PointerEnter(1, 2)
	_ = p.PointerEnter(1, 1)
	p.Release()

	if !target.grid.Alive(1, 1) || !target.grid.Alive(1, 2) {
		t.Errorf("revisiting a cell must not toggle it back:\n%s", target.grid)
	}
}

func TestPointerEnterWithoutSession(t *testing.T) {
	target := &gridTarget{grid: life.New(3, 3)}
	p := New(target)

	if err := p.PointerEnter(1, 1); err != nil {
		t.Fatal(err)
	}
	if target.edits != 0 {
		t.Error("enter without a gesture should be a no-op")
	}

	_ = p.PointerDown(0, 0)
	p.Cancel()
	_ = p.PointerEnter(2, 2)
	if target.grid.Alive(2, 2) {
		t.Error("enter after cancel should be a no-op")
	}
}

func TestReleaseWithoutSession(t *testing.T) {
	p := New(&gridTarget{grid: life.New(3, 3)})
	p.Release()
	p.Cancel()
	if p.Active() {
		t.Error("expected no active session")
	}
}

func TestOutOfBounds(t *testing.T) {
	target := &gridTarget{grid: life.New(3, 3)}
	p := New(target)

	if err := p.PointerDown(3, 0); !errors.Is(err, life.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if p.Active() {
		t.Error("out-of-bounds press must not start a session")
	}

	_ = p.PointerDown(0, 0)
	if err := p.PointerEnter(0, -1); !errors.Is(err, life.ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if last := p.Session().Last; last == nil || *last != (Coord{0, 0}) {
		t.Errorf("failed enter must keep the last painted cell, got %v", last)
	}
}

func TestPaintWhileRunning(t *testing.T) {
	ctrl := sim.New(life.New(10, 10), sim.Options{IntervalMs: sim.MaxIntervalMs})
	defer ctrl.Close()
	ctrl.Start()

	p := New(ctrl)
	if err := p.PointerDown(5, 5); err != nil {
		t.Fatal(err)
	}
	_ = p.PointerEnter(5, 6)
	p.Release()

	s := ctrl.Snapshot()
	if !s.Running {
		t.Error("painting must not stop the simulation")
	}
	if s.Population != 2 {
		t.Errorf("expected 2 live cells, got %d", s.Population)
	}
}
