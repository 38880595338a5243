package scoring

import (
	"github.com/astrorun/astrorun/internal/feature"
)

// Weights is the linear blend applied to the three per-bar score components.
// During optimization weights are sampled on the 3-simplex (summing to 1), but
// Combine itself imposes no normalization on callers.
type Weights struct {
	Astro float64 `json:"w_astro"`
	Gann  float64 `json:"w_gann"`
	Tech  float64 `json:"w_tech"`
}

// DefaultWeights returns the even three-way split used before any
// optimization has run.
func DefaultWeights() Weights {
	return Weights{Astro: 0.33, Gann: 0.33, Tech: 0.34}
}

// Combine produces the composite Total series, aligned index-for-index with
// the input frame. Pure: identical inputs always yield identical output.
func Combine(f feature.Frame, w Weights) []float64 {
	total := make([]float64, len(f))
	for i, bar := range f {
		total[i] = w.Astro*bar.AstroScore + w.Gann*bar.GannScore + w.Tech*bar.TechScore
	}
	return total
}
