// Package dashboard implements a real-time TUI for host memory pressure.
//
// The dashboard correlates three memory domains — kernel swap, discrete GPU
// memory, and NUMA page placement — into live views with color-coded status
// and sparkline history.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: Holds all dashboard state (cached telemetry, view, sort, unit)
//   - Update: Processes messages (keystrokes, tick events, terminal resize)
//   - View: Renders the current state to a string for display
//
// # Key Components
//
//	Model      - The Bubble Tea model containing all dashboard state
//	Scheduler  - Per-class staleness budgets deciding what each tick fetches
//	History    - Ring buffer storage for sparkline graphs
//
// # Refresh Cycle
//
// The dashboard operates on a tick-based refresh cycle:
//
//  1. tickMsg fires at the configured interval (default 1s)
//  2. refresh() asks the scheduler which telemetry classes are due and
//     fetches only those from the Source, synchronously
//  3. correlation and ranking are rebuilt from the current cache values
//  4. View() re-renders with new data and the next tick is scheduled
//
// A failed fetch keeps the previous value; the footer shows per-class data
// ages so staleness is always visible. Expensive per-process page
// distributions are only collected while the NUMA or Unified view is
// active, and only for the largest swap consumers.
//
// # Views
//
//	Swap     - totals, swap devices, ranked swapped processes
//	NUMA     - node table and per-process page placement
//	GPU      - device cards with utilization sparklines, GPU processes
//	Unified  - one row per process joining swap, GPU, and node data
package dashboard
