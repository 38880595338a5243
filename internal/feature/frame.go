package feature

import (
	"fmt"
	"time"
)

// Bar is a single observation in a feature frame. Close is the bar's closing
// price; the three scores are produced upstream by the astro/gann/technical
// scoring modules and default to zero when a source column is absent.
type Bar struct {
	Timestamp  time.Time
	Close      float64
	AstroScore float64
	GannScore  float64
	TechScore  float64
}

// Frame is a time-ordered sequence of bars with strictly ascending, unique
// timestamps. Frames are treated as read-only by every downstream component;
// derived series are always fresh allocations aligned index-for-index.
type Frame []Bar

// New validates the bar sequence and returns it as a Frame.
func New(bars []Bar) (Frame, error) {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Timestamp.After(bars[i-1].Timestamp) {
			return nil, fmt.Errorf("bars must have strictly ascending timestamps: bar %d (%s) not after bar %d (%s)",
				i, bars[i].Timestamp.Format(time.RFC3339), i-1, bars[i-1].Timestamp.Format(time.RFC3339))
		}
	}
	return Frame(bars), nil
}

// Closes returns the close series as a new slice.
func (f Frame) Closes() []float64 {
	out := make([]float64, len(f))
	for i, b := range f {
		out[i] = b.Close
	}
	return out
}

// Start returns the timestamp of the first bar.
func (f Frame) Start() time.Time {
	if len(f) == 0 {
		return time.Time{}
	}
	return f[0].Timestamp
}

// End returns the timestamp of the last bar.
func (f Frame) End() time.Time {
	if len(f) == 0 {
		return time.Time{}
	}
	return f[len(f)-1].Timestamp
}
