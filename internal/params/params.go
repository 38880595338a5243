// Package params defines the typed parameter set produced by optimization
// and consumed by report/signal generation. The JSON shape is a flat record
// with exactly the keys w_astro, w_gann, w_tech, up_th, down_th, objective —
// the persistence contract shared with the external orchestration layer.
package params

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/astrorun/astrorun/internal/scoring"
)

var validate = validator.New()

// Set couples score weights with entry thresholds and the objective value the
// optimizer attached to them. Immutable by convention once returned.
type Set struct {
	WAstro    float64 `json:"w_astro"`
	WGann     float64 `json:"w_gann"`
	WTech     float64 `json:"w_tech"`
	UpTh      float64 `json:"up_th" validate:"gtfield=DownTh"`
	DownTh    float64 `json:"down_th"`
	Objective float64 `json:"objective"`
}

// New builds a validated Set. Inverted thresholds (down_th >= up_th) are
// rejected at construction rather than silently accepted.
func New(wAstro, wGann, wTech, upTh, downTh float64) (Set, error) {
	s := Set{
		WAstro: wAstro,
		WGann:  wGann,
		WTech:  wTech,
		UpTh:   upTh,
		DownTh: downTh,
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// Default returns the pre-optimization fallback: an even weight split with
// symmetric 0.1 thresholds.
func Default() Set {
	return Set{WAstro: 0.33, WGann: 0.33, WTech: 0.34, UpTh: 0.1, DownTh: -0.1}
}

// Validate checks the threshold ordering invariant.
func (s Set) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid parameter set (up_th=%.4f, down_th=%.4f): %w", s.UpTh, s.DownTh, err)
	}
	return nil
}

// Weights returns the score-combination weights carried by the set.
func (s Set) Weights() scoring.Weights {
	return scoring.Weights{Astro: s.WAstro, Gann: s.WGann, Tech: s.WTech}
}

// Save writes the set to path as the flat JSON record.
func (s Set) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal parameter set: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write parameter set: %w", err)
	}
	return nil
}

// Load reads and validates a previously saved set.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read parameter set: %w", err)
	}
	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return Set{}, fmt.Errorf("failed to parse parameter set %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}
