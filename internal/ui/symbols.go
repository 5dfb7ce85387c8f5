package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Capability present
	SymbolFail     = "✗" // Capability missing or read failed
	SymbolPending  = "○" // No data yet
	SymbolComplete = "●" // Fresh data
)
