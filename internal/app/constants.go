package app

import "time"

// Layout constants define the pane split and footer sizing.
const (
	// ReportWidthDivider sets the report pane to terminal_width / this value.
	ReportWidthDivider = 2
	// MinReportWidth hides the report pane on terminals narrower than this.
	MinReportWidth = 30

	// FooterMinRows is the default number of rows reserved for key hints
	// and status.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when the hints do
	// not fit within FooterMinRows.
	FooterMaxRows = 3
	// FooterHintSpacing is the gap between footer hints.
	FooterHintSpacing = 2
)

// Editing limits for the live layout controls.
const (
	// SpacingStep is how much [ and ] change the spacing.
	SpacingStep = 1
	// MaxSpacing caps the spacing reachable from the keyboard.
	MaxSpacing = 16
	// MaxItemsLimit caps the per-line item limit reachable from the keyboard.
	MaxItemsLimit = 64
)

// Rendering constants control report timing.
const (
	// ReportDebounce is the delay before the report is rendered after the
	// layout or the window changes.
	ReportDebounce = 250 * time.Millisecond
	// ReportCacheEntries bounds the cached report renderers.
	ReportCacheEntries = 4
)
