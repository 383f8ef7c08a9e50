package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/san-kum/lifesim/internal/sim"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer prints generations of a headless run as plain text frames,
// dropping frames that arrive faster than frameRate.
type LiveRenderer struct {
	out       io.Writer
	label     string
	frameRate int
	lastFrame time.Time
}

func NewLiveRenderer(out io.Writer, label string, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{out: out, label: label, frameRate: frameRate}
}

func (r *LiveRenderer) OnChange(s sim.Snapshot) {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.render(s)
}

func (r *LiveRenderer) render(s sim.Snapshot) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  gen=%d  alive=%d\n", r.label, s.Generation, s.Population))
	b.WriteString("  " + strings.Repeat("-", s.Grid.Cols()) + "\n")

	for _, line := range strings.Split(s.Grid.String(), "\n") {
		b.WriteString("  ")
		b.WriteString(strings.NewReplacer("#", "o", ".", " ").Replace(line))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", s.Grid.Cols()) + "\n")
	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
