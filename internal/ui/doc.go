// Package ui provides terminal rendering helpers shared by the dashboard
// and the plain CLI output.
//
// The package includes the color palette, sparklines, table helpers, and
// memory unit formatting, using the Lip Gloss library for consistent
// terminal styling.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Healthy values, present capabilities
//	ColorError     (red)    - Values past the pressure threshold
//	ColorWarning   (yellow) - Values approaching the threshold
//	ColorInfo      (cyan)   - Informational accents
//	ColorMuted     (gray)   - Secondary text, staleness ages
//
// ThresholdColor maps a percentage to these bands: green below 60, yellow
// to 80, red above.
//
// # Sparklines
//
//	ui.RenderSparkline(history, 30)  // ▁▂▄▆█ colored by the latest value
//
// # Units
//
// Unit converts and formats kilobyte quantities for display. KB renders
// whole numbers, MB one decimal, GB two.
package ui
