package life

import (
	"fmt"
	"sort"
)

// Anchor is the top-left position at which presets are placed.
var Anchor = struct{ Row, Col int }{2, 2}

// Presets maps pattern names to their live-cell offsets from Anchor.
var Presets = map[string][][2]int{
	"glider": {
		{0, 1},
		{1, 2},
		{2, 0}, {2, 1}, {2, 2},
	},
	"blinker": {
		{1, 0}, {1, 1}, {1, 2},
	},
	"block": {
		{0, 0}, {0, 1},
		{1, 0}, {1, 1},
	},
	"beacon": {
		{0, 0}, {0, 1},
		{1, 0},
		{2, 3},
		{3, 2}, {3, 3},
	},
	"lwss": {
		{0, 0}, {0, 3},
		{1, 4},
		{2, 0}, {2, 4},
		{3, 1}, {3, 2}, {3, 3}, {3, 4},
	},
	"rpentomino": {
		{0, 1}, {0, 2},
		{1, 0}, {1, 1},
		{2, 1},
	},
}

// PresetNames lists preset names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seed returns a fresh rows×cols grid holding the named pattern at Anchor.
func Seed(name string, rows, cols int) (*Grid, error) {
	offsets, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, name, PresetNames())
	}
	g := New(rows, cols)
	for _, off := range offsets {
		r, c := Anchor.Row+off[0], Anchor.Col+off[1]
		if !g.InBounds(r, c) {
			return nil, fmt.Errorf("%w: preset %q does not fit a %dx%d grid", ErrOutOfBounds, name, rows, cols)
		}
		g.cells[r][c] = Alive
	}
	return g, nil
}
