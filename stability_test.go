package focus

import (
	"testing"
	"time"
)

// buildItems turns a slice into the (map, ordered) pair selectPrimary
// consumes, assigning registration order by position.
func buildItems(items []ItemFocus) (map[string]ItemFocus, []ItemFocus) {
	byID := make(map[string]ItemFocus, len(items))
	for i := range items {
		items[i].order = uint64(i + 1)
		byID[items[i].ID] = items[i]
	}
	return byID, items
}

func focusedItem(id string, dist float64) ItemFocus {
	return ItemFocus{ID: id, Visible: true, Focused: true, VisibleFraction: 1, DistancePx: dist}
}

func visibleItem(id string, dist float64) ItemFocus {
	return ItemFocus{ID: id, Visible: true, VisibleFraction: 1, DistancePx: dist}
}

func TestSelectPrimary_NoFocusedCandidates(t *testing.T) {
	t0 := time.Unix(1000, 0)
	now := t0.Add(time.Second)

	type tc struct {
		items     []ItemFocus
		cfg       StabilityConfig
		prev      stabilityState
		wantID    string
		wantSince time.Time
	}

	tests := map[string]tc{
		"nothing visible yields none": {
			items:  nil,
			cfg:    DefaultStability(),
			wantID: "",
		},
		"visible only, fallback disabled": {
			items:  []ItemFocus{visibleItem("a", 10)},
			cfg:    DefaultStability(),
			wantID: "",
		},
		"previous primary still visible is kept without since reset": {
			items: []ItemFocus{visibleItem("a", 10), visibleItem("b", 5)},
			cfg: StabilityConfig{
				PreferCurrentPrimary:        true,
				AllowPrimaryWhenNoneFocused: true,
			},
			prev:      stabilityState{primaryID: "a", since: t0},
			wantID:    "a",
			wantSince: t0,
		},
		"previous gone, best visible adopted with since reset": {
			items: []ItemFocus{visibleItem("a", 10), visibleItem("b", 5)},
			cfg: StabilityConfig{
				PreferCurrentPrimary:        true,
				AllowPrimaryWhenNoneFocused: true,
			},
			prev:      stabilityState{primaryID: "gone", since: t0},
			wantID:    "b",
			wantSince: now,
		},
		"fallback enabled but nothing visible": {
			items: []ItemFocus{{ID: "a"}},
			cfg: StabilityConfig{
				AllowPrimaryWhenNoneFocused: true,
			},
			wantID: "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			byID, ordered := buildItems(tt.items)
			gotID, gotSince := selectPrimary(byID, ordered, ClosestToAnchor(), tt.cfg, tt.prev, now)
			if gotID != tt.wantID {
				t.Errorf("primary = %q, want %q", gotID, tt.wantID)
			}
			if tt.wantID != "" && !gotSince.Equal(tt.wantSince) {
				t.Errorf("since = %v, want %v", gotSince, tt.wantSince)
			}
		})
	}
}

func TestSelectPrimary_AdoptsBestFocused(t *testing.T) {
	now := time.Unix(1000, 0)
	byID, ordered := buildItems([]ItemFocus{
		focusedItem("far", 80),
		focusedItem("near", 10),
	})

	gotID, gotSince := selectPrimary(byID, ordered, ClosestToAnchor(), DefaultStability(), stabilityState{}, now)
	if gotID != "near" {
		t.Errorf("primary = %q, want %q", gotID, "near")
	}
	if !gotSince.Equal(now) {
		t.Errorf("since = %v, want %v", gotSince, now)
	}
}

func TestSelectPrimary_IncumbentNoLongerFocused(t *testing.T) {
	t0 := time.Unix(1000, 0)
	now := t0.Add(time.Second)
	byID, ordered := buildItems([]ItemFocus{
		visibleItem("old", 5),
		focusedItem("new", 40),
	})

	gotID, gotSince := selectPrimary(byID, ordered, ClosestToAnchor(), DefaultStability(),
		stabilityState{primaryID: "old", since: t0}, now)
	if gotID != "new" {
		t.Errorf("primary = %q, want %q", gotID, "new")
	}
	if !gotSince.Equal(now) {
		t.Errorf("since = %v, want reset to %v", gotSince, now)
	}
}

func TestSelectPrimary_HysteresisRetainsIncumbent(t *testing.T) {
	// Incumbent at 20px, challenger at 15px, hysteresis 10px: the 5px
	// improvement is below the margin, so the incumbent is retained
	// regardless of elapsed time.
	t0 := time.Unix(1000, 0)
	cfg := StabilityConfig{HysteresisPx: 10, PreferCurrentPrimary: true}

	for name, elapsed := range map[string]time.Duration{
		"immediately":   time.Millisecond,
		"after an hour": time.Hour,
	} {
		t.Run(name, func(t *testing.T) {
			byID, ordered := buildItems([]ItemFocus{
				focusedItem("incumbent", 20),
				focusedItem("challenger", 15),
			})
			gotID, gotSince := selectPrimary(byID, ordered, ClosestToAnchor(), cfg,
				stabilityState{primaryID: "incumbent", since: t0}, t0.Add(elapsed))
			if gotID != "incumbent" {
				t.Errorf("primary = %q, want incumbent retained", gotID)
			}
			if !gotSince.Equal(t0) {
				t.Errorf("since = %v, want unchanged %v", gotSince, t0)
			}
		})
	}
}

func TestSelectPrimary_HysteresisAllowsClearWin(t *testing.T) {
	t0 := time.Unix(1000, 0)
	now := t0.Add(time.Second)
	cfg := StabilityConfig{HysteresisPx: 10, PreferCurrentPrimary: true}
	byID, ordered := buildItems([]ItemFocus{
		focusedItem("incumbent", 30),
		focusedItem("challenger", 15),
	})

	gotID, gotSince := selectPrimary(byID, ordered, ClosestToAnchor(), cfg,
		stabilityState{primaryID: "incumbent", since: t0}, now)
	if gotID != "challenger" {
		t.Errorf("primary = %q, want challenger (15px improvement >= 10px margin)", gotID)
	}
	if !gotSince.Equal(now) {
		t.Errorf("since = %v, want reset to %v", gotSince, now)
	}
}

func TestSelectPrimary_ZeroHysteresisAnyImprovementWins(t *testing.T) {
	t0 := time.Unix(1000, 0)
	now := t0.Add(time.Second)
	cfg := StabilityConfig{PreferCurrentPrimary: true}
	byID, ordered := buildItems([]ItemFocus{
		focusedItem("incumbent", 20),
		focusedItem("challenger", 18),
	})

	gotID, _ := selectPrimary(byID, ordered, ClosestToAnchor(), cfg,
		stabilityState{primaryID: "incumbent", since: t0}, now)
	if gotID != "challenger" {
		t.Errorf("primary = %q, want challenger with zero hysteresis", gotID)
	}
}

func TestSelectPrimary_MinDurationGate(t *testing.T) {
	// Incumbent set at t0; a strictly better challenger appears at
	// t0+1ms. With a 100ms hold the switch must not happen before
	// t0+100ms even though hysteresis would allow it.
	t0 := time.Unix(1000, 0)
	cfg := StabilityConfig{MinPrimaryDuration: 100 * time.Millisecond}

	type tc struct {
		now    time.Time
		wantID string
	}

	tests := map[string]tc{
		"1ms after adoption": {
			now:    t0.Add(time.Millisecond),
			wantID: "incumbent",
		},
		"99ms after adoption": {
			now:    t0.Add(99 * time.Millisecond),
			wantID: "incumbent",
		},
		"at the 100ms boundary": {
			now:    t0.Add(100 * time.Millisecond),
			wantID: "challenger",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			byID, ordered := buildItems([]ItemFocus{
				focusedItem("incumbent", 50),
				focusedItem("challenger", 5),
			})
			gotID, _ := selectPrimary(byID, ordered, ClosestToAnchor(), cfg,
				stabilityState{primaryID: "incumbent", since: t0}, tt.now)
			if gotID != tt.wantID {
				t.Errorf("primary = %q, want %q", gotID, tt.wantID)
			}
		})
	}
}

func TestSelectPrimary_KeepsBestIncumbent(t *testing.T) {
	t0 := time.Unix(1000, 0)
	byID, ordered := buildItems([]ItemFocus{
		focusedItem("incumbent", 5),
		focusedItem("other", 50),
	})

	gotID, gotSince := selectPrimary(byID, ordered, ClosestToAnchor(), DefaultStability(),
		stabilityState{primaryID: "incumbent", since: t0}, t0.Add(time.Minute))
	if gotID != "incumbent" {
		t.Errorf("primary = %q, want %q", gotID, "incumbent")
	}
	if !gotSince.Equal(t0) {
		t.Errorf("since = %v, want unchanged %v", gotSince, t0)
	}
}

func TestSelectPrimary_Deterministic(t *testing.T) {
	t0 := time.Unix(1000, 0)
	now := t0.Add(42 * time.Millisecond)
	cfg := StabilityConfig{HysteresisPx: 8, MinPrimaryDuration: 10 * time.Millisecond, PreferCurrentPrimary: true}

	var firstID string
	var firstSince time.Time
	for i := 0; i < 50; i++ {
		byID, ordered := buildItems([]ItemFocus{
			focusedItem("a", 12),
			focusedItem("b", 3),
			visibleItem("c", 70),
		})
		gotID, gotSince := selectPrimary(byID, ordered, ClosestToAnchor(), cfg,
			stabilityState{primaryID: "a", since: t0}, now)
		if i == 0 {
			firstID, firstSince = gotID, gotSince
			continue
		}
		if gotID != firstID || !gotSince.Equal(firstSince) {
			t.Fatalf("pass %d: (%q, %v) differs from first pass (%q, %v)", i, gotID, gotSince, firstID, firstSince)
		}
	}
}
