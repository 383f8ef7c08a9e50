package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifesim/internal/life"
)

// GridToSVG draws each live cell as a square of side scale pixels.
func GridToSVG(g *life.Grid, scale float64, fill string) string {
	if g == nil {
		return ""
	}
	if scale <= 0 {
		scale = 8
	}

	width := float64(g.Cols()) * scale
	height := float64(g.Rows()) * scale

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill))

	// one rect per horizontal run of live cells
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); {
			if !g.Alive(r, c) {
				c++
				continue
			}
			start := c
			for c < g.Cols() && g.Alive(r, c) {
				c++
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(start)*scale, float64(r)*scale, float64(c-start)*scale, scale))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PopulationToSVG plots a population series as a polyline, generation on the
// x axis.
func PopulationToSVG(populations []int, width, height int, strokeColor string) string {
	if len(populations) < 2 {
		return ""
	}

	maxY := populations[0]
	for _, p := range populations {
		maxY = max(maxY, p)
	}
	rangeY := float64(maxY) * 1.1
	if rangeY == 0 {
		rangeY = 1
	}
	rangeX := float64(len(populations) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range populations {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - float64(p)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
