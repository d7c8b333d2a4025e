package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops detail
	// and comparison cards stack vertically.
	LayoutCompactWidth = 100

	// LayoutMinCardWidth is the narrowest a comparison card is rendered.
	LayoutMinCardWidth = 34
)

// Timing constants.
const (
	// LookupTimeout bounds a profile lookup issued from the search screen.
	LookupTimeout = 5 * time.Second

	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second
)

// Rows above the content box: status header plus command bar, then the
// profile title line plus tab bar.
const (
	headerRows        = 2
	profileHeaderRows = 2
)
