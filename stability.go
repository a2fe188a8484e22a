package focus

import (
	"time"

	"github.com/grindlemire/go-focus/internal/debug"
)

// StabilityConfig controls how reluctantly the primary winner changes.
// Immutable configuration; validate with Validate or pass through
// WithStability.
type StabilityConfig struct {
	// HysteresisPx is the margin by which a challenger must beat the
	// current primary's absolute anchor distance before displacing it
	// (only consulted when PreferCurrentPrimary is true). Zero means
	// any improvement wins.
	HysteresisPx float64

	// MinPrimaryDuration is how long an item holds primary status
	// before any challenger may displace it.
	MinPrimaryDuration time.Duration

	// PreferCurrentPrimary keeps the incumbent unless a challenger
	// clears the hysteresis margin. When false, the best focused item
	// always wins once MinPrimaryDuration has elapsed.
	PreferCurrentPrimary bool

	// AllowPrimaryWhenNoneFocused lets a merely-visible item hold
	// primary status when nothing intersects the focus region.
	AllowPrimaryWhenNoneFocused bool
}

// DefaultStability returns the stock configuration: sticky incumbent,
// no hysteresis margin, no hold duration.
func DefaultStability() StabilityConfig {
	return StabilityConfig{PreferCurrentPrimary: true}
}

// Validate rejects configurations that are out of range.
func (c StabilityConfig) Validate() error {
	if c.HysteresisPx < 0 {
		return errNegative("stability hysteresis")
	}
	if c.MinPrimaryDuration < 0 {
		return errNegative("stability min primary duration")
	}
	return nil
}

// stabilityState is the engine-owned bookkeeping between passes:
// which item last held primary status and since when. It is read and
// written exactly once per compute pass.
type stabilityState struct {
	primaryID string
	since     time.Time
}

// selectPrimary runs the stability state machine for one pass and
// returns the new primary id ("" for none) plus its hold-start time.
//
// items is the full pass result keyed by id; ordered is the same
// items in registration order (the deterministic pickBest input).
// The function is pure given its arguments: no hidden state, so it is
// unit-testable without any geometry or host dependency.
func selectPrimary(
	items map[string]ItemFocus,
	ordered []ItemFocus,
	policy SelectionPolicy,
	cfg StabilityConfig,
	prev stabilityState,
	now time.Time,
) (string, time.Time) {
	var focused, visible []ItemFocus
	for _, it := range ordered {
		if it.Focused {
			focused = append(focused, it)
		}
		if it.Visible {
			visible = append(visible, it)
		}
	}

	// No focused candidate at all.
	if len(focused) == 0 {
		if !cfg.AllowPrimaryWhenNoneFocused {
			return "", time.Time{}
		}
		if prev.primaryID != "" {
			if p, ok := items[prev.primaryID]; ok && p.Visible {
				return prev.primaryID, prev.since
			}
		}
		if len(visible) > 0 {
			best := pickBest(policy, visible)
			debug.Log("selectPrimary: adopting visible %q (none focused)", best.ID)
			return best.ID, now
		}
		return "", time.Time{}
	}

	best := pickBest(policy, focused)

	// No eligible incumbent: the previous primary is gone or no longer
	// focused.
	prevItem, prevKnown := items[prev.primaryID]
	if prev.primaryID == "" || !prevKnown || !prevItem.Focused {
		debug.Log("selectPrimary: adopting %q (no eligible incumbent)", best.ID)
		return best.ID, now
	}

	// Incumbent still focused and still the best pick.
	if best.ID == prev.primaryID {
		return prev.primaryID, prev.since
	}

	// A different item ranks best. Too soon to switch?
	if now.Sub(prev.since) < cfg.MinPrimaryDuration {
		return prev.primaryID, prev.since
	}

	if !cfg.PreferCurrentPrimary {
		debug.Log("selectPrimary: switching %q -> %q", prev.primaryID, best.ID)
		return best.ID, now
	}

	// Hysteresis: the challenger must beat the incumbent's absolute
	// anchor distance by at least the configured margin. A margin of
	// zero means any improvement wins.
	improvement := abs(prevItem.DistancePx) - abs(best.DistancePx)
	if (cfg.HysteresisPx <= 0 && improvement > 0) || (cfg.HysteresisPx > 0 && improvement >= cfg.HysteresisPx) {
		debug.Log("selectPrimary: switching %q -> %q (improvement %.1fpx)", prev.primaryID, best.ID, improvement)
		return best.ID, now
	}
	return prev.primaryID, prev.since
}
