// Package focus derives attention state for items inside a scrollable
// viewport: which items are visible, which intersect an
// application-defined focus region, and which single item is the
// stable primary winner (for autoplay, prefetch, or analytics).
//
// Users import this single package for the complete public API:
// engine lifecycle, anchors, regions, selection policies, stability
// and cadence configuration, and the subscription outputs.
package focus
