// Package paint turns pointer gestures over grid cells into cell edits.
//
// A gesture starts with PointerDown, which toggles the touched cell and fixes
// the paint value (live or dead) for the rest of the drag. PointerEnter paints
// further cells with that value; Release or Cancel ends the gesture. Editing
// works the same whether or not the simulation is running.
package paint

import (
	"github.com/san-kum/lifesim/internal/life"
)

// Target is the grid owner being painted on. Edit must apply fn atomically
// with respect to any other change of the grid.
type Target interface {
	Edit(fn func(g *life.Grid) (*life.Grid, error)) error
}

type Coord struct {
	Row, Col int
}

// Session is the state of one pointer-down to pointer-up gesture.
type Session struct {
	Active bool
	Value  life.Cell
	Last   *Coord
}

// Painter is not safe for concurrent use; gestures arrive from a single
// input loop.
type Painter struct {
	target  Target
	session Session
}

func New(target Target) *Painter {
	return &Painter{target: target}
}

// Session returns a copy of the current gesture state.
func (p *Painter) Session() Session {
	s := p.session
	if s.Last != nil {
		last := *s.Last
		s.Last = &last
	}
	return s
}

func (p *Painter) Active() bool { return p.session.Active }

// PointerDown begins a gesture at (r, c), painting the inverse of the cell's
// current value. An out-of-bounds coordinate returns life.ErrOutOfBounds and
// starts no gesture.
func (p *Painter) PointerDown(r, c int) error {
	var value life.Cell
	err := p.target.Edit(func(g *life.Grid) (*life.Grid, error) {
		if !g.InBounds(r, c) {
			return g.Set(r, c, life.Alive)
		}
		value = life.Alive
		if g.Alive(r, c) {
			value = life.Dead
		}
		return g.Set(r, c, value)
	})
	if err != nil {
		return err
	}
	p.session = Session{Active: true, Value: value, Last: &Coord{r, c}}
	return nil
}

// PointerEnter paints (r, c) with the gesture's value. It does nothing when no
// gesture is active or when (r, c) is the cell painted last.
func (p *Painter) PointerEnter(r, c int) error {
	if !p.session.Active {
		return nil
	}
	if last := p.session.Last; last != nil && last.Row == r && last.Col == c {
		return nil
	}
	value := p.session.Value
	if err := p.target.Edit(func(g *life.Grid) (*life.Grid, error) {
		return g.Set(r, c, value)
	}); err != nil {
		return err
	}
	p.session.Last = &Coord{r, c}
	return nil
}

// Release ends the gesture. It is safe to call without an active gesture.
func (p *Painter) Release() {
	p.session = Session{}
}

// Cancel ends the gesture exactly like Release.
func (p *Painter) Cancel() {
	p.Release()
}
