package signal

// Position labels emitted by the state machine.
const (
	Long  = 1
	Short = -1
	Flat  = 0
)

// Config holds the hold/cooldown constraints applied to every state-machine
// pass. It is an explicit value passed to New rather than ambient process
// state, so callers can override it per invocation.
type Config struct {
	MinHold  int `json:"min_hold_bars" yaml:"min_hold_bars"`
	Cooldown int `json:"cooldown_bars" yaml:"cooldown_bars"`
}

// DefaultConfig returns the standard 3-bar hold, 3-bar cooldown settings.
func DefaultConfig() Config {
	return Config{MinHold: 3, Cooldown: 3}
}

// Machine converts a composite score series into position signals under
// min-hold and cooldown constraints.
//
// Transition contract (confirmed with the strategy owners, do not "fix"):
// a position can only terminate by flipping to the opposite sign — there is
// no position-to-flat exit once entered. Cooldown gates only flat-to-entry
// transitions, never flip-to-flip.
type Machine struct {
	upTh   float64
	downTh float64
	cfg    Config
}

// New creates a machine with the given discretization thresholds.
func New(upTh, downTh float64, cfg Config) *Machine {
	return &Machine{upTh: upTh, downTh: downTh, cfg: cfg}
}

// Run performs a single pass over the total series starting from flat state
// with zeroed counters, returning one signal per input bar.
//
// Each call is an independent pass: per-window backtesting calls Run once per
// window (reset semantics), while continuous signal generation calls Run once
// over the whole history. The two outputs are intentionally not
// interchangeable.
func (m *Machine) Run(total []float64) []int {
	out := make([]int, len(total))
	pos, hold, cooldown := 0, 0, 0

	for i, v := range total {
		raw := m.discretize(v)

		if pos == Flat {
			if cooldown > 0 {
				cooldown--
			} else if raw != Flat {
				pos = raw
				hold = m.cfg.MinHold
			}
		} else {
			if hold > 0 {
				hold--
			} else if raw*pos < 0 {
				// Opposite signal at zero hold: flip and arm cooldown.
				pos = raw
				hold = m.cfg.MinHold
				cooldown = m.cfg.Cooldown
			}
		}
		out[i] = pos
	}
	return out
}

func (m *Machine) discretize(v float64) int {
	switch {
	case v >= m.upTh:
		return Long
	case v <= m.downTh:
		return Short
	default:
		return Flat
	}
}

// Direction maps a signal value to its label for downstream consumers.
func Direction(sig int) string {
	switch {
	case sig > 0:
		return "long"
	case sig < 0:
		return "short"
	default:
		return "flat"
	}
}
