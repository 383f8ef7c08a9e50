package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
)

func TestLiveRendererFrame(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "glider", 1000)

	g, _ := life.Seed("glider", 6, 6)
	r.OnChange(sim.Snapshot{Grid: g, Generation: 3, Population: 5})

	out := buf.String()
	if !strings.Contains(out, "gen=3") || !strings.Contains(out, "alive=5") {
		t.Errorf("frame header missing stats:\n%s", out)
	}
	if strings.Count(out, "o") != 5 {
		t.Errorf("expected 5 live cells drawn, got %d", strings.Count(out, "o"))
	}
}

func TestLiveRendererDropsFastFrames(t *testing.T) {
	var buf bytes.Buffer
	r := NewLiveRenderer(&buf, "x", 1)

	g := life.New(2, 2)
	r.OnChange(sim.Snapshot{Grid: g})
	first := buf.Len()
	r.OnChange(sim.Snapshot{Grid: g})

	if buf.Len() != first {
		t.Error("second frame within the frame interval should be dropped")
	}
}
