package focus

// Tolerances for numeric comparisons. Normalized fractions within
// FractionEpsilon and distances within DistanceEpsilonPx compare as
// tied, so floating-point noise cannot flip a ranking or trigger a
// notification.
const (
	FractionEpsilon   = 0.001
	DistanceEpsilonPx = 0.5
)

// policyKind discriminates the SelectionPolicy variants.
type policyKind uint8

const (
	policyClosestToAnchor policyKind = iota
	policyLargestVisibleFraction
	policyLargestOverlap
	policyLargestProgress
	policyCustom
)

// Comparator ranks two candidates: negative means a wins, positive
// means b wins, zero is a tie. Comparators must be pure, deterministic,
// and side-effect free. A comparator that violates antisymmetry is not
// detected; ranking then degrades to the deterministic tie-break chain,
// which is still stable within a pass.
type Comparator func(a, b ItemFocus) int

// SelectionPolicy ranks focused/visible candidates to pick the best
// one. It is a closed family of variants; construct one with the
// functions below. The zero value ranks by closest anchor distance.
// Immutable value.
type SelectionPolicy struct {
	kind policyKind
	cmp  Comparator
}

// ClosestToAnchor ranks candidates by smallest absolute anchor
// distance. This is the default policy.
func ClosestToAnchor() SelectionPolicy {
	return SelectionPolicy{kind: policyClosestToAnchor}
}

// LargestVisibleFraction ranks candidates by largest visible fraction.
func LargestVisibleFraction() SelectionPolicy {
	return SelectionPolicy{kind: policyLargestVisibleFraction}
}

// LargestOverlap ranks candidates by largest region overlap fraction.
func LargestOverlap() SelectionPolicy {
	return SelectionPolicy{kind: policyLargestOverlap}
}

// LargestProgress ranks candidates by largest focus progress.
func LargestProgress() SelectionPolicy {
	return SelectionPolicy{kind: policyLargestProgress}
}

// CustomPolicy ranks candidates with a caller-supplied comparator.
//
// Panics if cmp is nil.
func CustomPolicy(cmp Comparator) SelectionPolicy {
	if cmp == nil {
		panic("focus: nil comparator")
	}
	return SelectionPolicy{kind: policyCustom, cmp: cmp}
}

// compare ranks a against b: negative means a wins. Built-in policies
// report a tie when the compared metric is within tolerance.
func (p SelectionPolicy) compare(a, b ItemFocus) int {
	switch p.kind {
	case policyCustom:
		return sign(p.cmp(a, b))
	case policyLargestVisibleFraction:
		return compareFractionDesc(a.VisibleFraction, b.VisibleFraction)
	case policyLargestOverlap:
		return compareFractionDesc(a.FocusOverlap, b.FocusOverlap)
	case policyLargestProgress:
		return compareFractionDesc(a.FocusProgress, b.FocusProgress)
	default:
		return compareDistanceAsc(a.DistancePx, b.DistancePx)
	}
}

// tieBreak is the deterministic chain applied when a comparator
// reports a tie: higher progress, then higher visible fraction, then
// smaller absolute distance, then earlier registration order.
func tieBreak(a, b ItemFocus) int {
	if v := compareFractionDesc(a.FocusProgress, b.FocusProgress); v != 0 {
		return v
	}
	if v := compareFractionDesc(a.VisibleFraction, b.VisibleFraction); v != 0 {
		return v
	}
	if v := compareDistanceAsc(a.DistancePx, b.DistancePx); v != 0 {
		return v
	}
	if a.order != b.order {
		if a.order < b.order {
			return -1
		}
		return 1
	}
	return 0
}

// betterCandidate reports whether challenger strictly outranks
// incumbent under the policy plus the tie-break chain. On a full tie
// the incumbent (earlier in input order) is kept.
func betterCandidate(p SelectionPolicy, challenger, incumbent ItemFocus) bool {
	if v := p.compare(challenger, incumbent); v != 0 {
		return v < 0
	}
	return tieBreak(challenger, incumbent) < 0
}

// pickBest folds the policy over the candidates and returns the
// winner. Candidates must be in registration order so the final
// tie-break is deterministic.
//
// Panics on an empty candidate list; callers guarantee non-empty.
func pickBest(p SelectionPolicy, candidates []ItemFocus) ItemFocus {
	if len(candidates) == 0 {
		panic("focus: pickBest on empty candidates")
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if betterCandidate(p, c, best) {
			best = c
		}
	}
	return best
}

func compareFractionDesc(a, b float64) int {
	if fractionsEqual(a, b) {
		return 0
	}
	if a > b {
		return -1
	}
	return 1
}

func compareDistanceAsc(a, b float64) int {
	a, b = abs(a), abs(b)
	if distancesEqual(a, b) {
		return 0
	}
	if a < b {
		return -1
	}
	return 1
}

func fractionsEqual(a, b float64) bool {
	return abs(a-b) <= FractionEpsilon
}

func distancesEqual(a, b float64) bool {
	return abs(a-b) <= DistanceEpsilonPx
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
