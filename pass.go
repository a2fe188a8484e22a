package focus

// passConfig is the immutable per-pass slice of the engine
// configuration the geometry pass needs.
type passConfig struct {
	region                 Region
	anchor                 Anchor
	insets                 Insets
	insetAffectsVisibility bool
	debugRects             bool
}

// computeItems converts the current registry entries into one
// ItemFocus per measurable item, in registration order.
//
// The viewport used for anchor resolution is always the inset-adjusted
// rectangle; visibility uses it too unless insetAffectsVisibility is
// false. If the insets swallow the whole viewport the pass yields an
// empty result rather than working with a degenerate rectangle.
func computeItems(entries []*registryEntry, viewport Rect, axis Axis, cfg passConfig) []ItemFocus {
	anchorViewport := viewport
	if !cfg.insets.IsZero() {
		anchorViewport = viewport.Inset(cfg.insets)
		if anchorViewport.IsEmpty() {
			return nil
		}
	}
	visViewport := viewport
	if cfg.insetAffectsVisibility {
		visViewport = anchorViewport
	}

	anchorPx := cfg.anchor.Resolve(anchorViewport, axis)

	items := make([]ItemFocus, 0, len(entries))
	for _, e := range entries {
		if !e.handle.Measurable() {
			continue
		}
		rect, ok := e.handle.ItemRect()
		if !ok {
			continue
		}

		it := ItemFocus{
			ID:         e.id,
			DistancePx: rect.Center(axis) - anchorPx,
			order:      e.order,
		}
		if cfg.debugRects {
			it.ItemRect = rect
			it.ViewportRect = viewport
		}

		if area := rect.Area(); area > 0 {
			it.VisibleFraction = clamp01(rect.Intersect(visViewport).Area() / area)
		}
		it.Visible = it.VisibleFraction > 0

		// Off-screen items short-circuit to not-focused with zero
		// metrics.
		if it.Visible {
			res := cfg.region.evaluate(rect, anchorViewport, axis, anchorPx)
			it.Focused = res.Focused
			it.FocusProgress = res.Progress
			it.FocusOverlap = res.Overlap
		}

		items = append(items, it)
	}
	return items
}
