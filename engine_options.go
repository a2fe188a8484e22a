package focus

import "fmt"

// Option is a functional option for configuring an Engine.
type Option func(*Engine) error

// WithRegion sets the focus region. Default is a zero-thickness line.
func WithRegion(r Region) Option {
	return func(e *Engine) error {
		e.cfg.region = r
		return nil
	}
}

// WithAnchor sets the anchor. Default is the viewport center
// (AnchorFraction(0.5)).
func WithAnchor(a Anchor) Option {
	return func(e *Engine) error {
		e.cfg.anchor = a
		return nil
	}
}

// WithPolicy sets the selection policy. Default is ClosestToAnchor.
func WithPolicy(p SelectionPolicy) Option {
	return func(e *Engine) error {
		e.policy = p
		return nil
	}
}

// WithStability sets the stability configuration. Invalid
// configuration is rejected at construction.
func WithStability(c StabilityConfig) Option {
	return func(e *Engine) error {
		if err := c.Validate(); err != nil {
			return err
		}
		e.stability = c
		return nil
	}
}

// WithUpdatePolicy sets the cadence policy. Default is PerFrame.
func WithUpdatePolicy(p UpdatePolicy) Option {
	return func(e *Engine) error {
		e.updatePolicy = p
		return nil
	}
}

// WithInsets deflates the viewport rectangle used for anchor
// resolution (and, by default, visibility), e.g. to exclude pinned
// overlays.
func WithInsets(in Insets) Option {
	return func(e *Engine) error {
		e.cfg.insets = in
		return nil
	}
}

// WithInsetAffectsVisibility controls whether the inset viewport is
// also used for the visible-fraction computation. Default is true;
// pass false to measure visibility against the full viewport while
// the anchor still resolves inside the insets.
func WithInsetAffectsVisibility(affects bool) Option {
	return func(e *Engine) error {
		e.cfg.insetAffectsVisibility = affects
		return nil
	}
}

// WithClock replaces the wall clock. Intended for tests.
func WithClock(c Clock) Option {
	return func(e *Engine) error {
		if c == nil {
			return fmt.Errorf("focus: nil clock")
		}
		e.clock = c
		return nil
	}
}

// WithDebugRects populates ItemRect and ViewportRect on every
// ItemFocus, for debug overlays and analytics. Off by default; the
// rectangles never participate in selection or diffing.
func WithDebugRects() Option {
	return func(e *Engine) error {
		e.cfg.debugRects = true
		return nil
	}
}
