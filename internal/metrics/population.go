package metrics

import (
	"gonum.org/v1/gonum/stat"
)

// PopulationStats summarises a population series.
type PopulationStats struct {
	Initial int     `json:"initial"`
	Final   int     `json:"final"`
	Peak    int     `json:"peak"`
	PeakAt  int     `json:"peak_at"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"`
}

func Summarize(populations []int) PopulationStats {
	if len(populations) == 0 {
		return PopulationStats{}
	}

	values := make([]float64, len(populations))
	s := PopulationStats{
		Initial: populations[0],
		Final:   populations[len(populations)-1],
	}
	for i, p := range populations {
		values[i] = float64(p)
		if p > s.Peak {
			s.Peak = p
			s.PeakAt = i
		}
	}

	if len(values) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}
	return s
}

// Floats converts a population series for plotting.
func Floats(populations []int) []float64 {
	out := make([]float64, len(populations))
	for i, p := range populations {
		out[i] = float64(p)
	}
	return out
}
