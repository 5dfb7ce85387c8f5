package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/memtop/internal/cache"
	"github.com/rileyhilliard/memtop/internal/correlate"
	"github.com/rileyhilliard/memtop/internal/gpu"
	"github.com/rileyhilliard/memtop/internal/logger"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/telemetry"
	"github.com/rileyhilliard/memtop/internal/topo"
	"github.com/rileyhilliard/memtop/internal/ui"
)

// View identifies which dashboard screen is displayed.
type View int

const (
	ViewSwap View = iota
	ViewNUMA
	ViewGPU
	ViewUnified
)

// String returns the tab label for the view.
func (v View) String() string {
	switch v {
	case ViewSwap:
		return "swap"
	case ViewNUMA:
		return "numa"
	case ViewGPU:
		return "gpu"
	case ViewUnified:
		return "unified"
	default:
		return "?"
	}
}

// Next cycles to the following view, wrapping after unified.
func (v View) Next() View {
	return View((int(v) + 1) % 4)
}

// Interval bounds for the left/right adjustment keys.
const (
	minInterval  = 250 * time.Millisecond
	maxInterval  = 10 * time.Second
	intervalStep = 250 * time.Millisecond
)

// DefaultTopN is how many of the largest swap consumers get their page
// distribution fetched per refresh.
const DefaultTopN = 20

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	src   telemetry.Source
	sched *cache.Scheduler
	log   logger.Logger

	// Last successful fetch per telemetry class. A failed refresh leaves
	// the previous value in place.
	overview  swap.Overview
	swapProcs []swap.ProcessRecord
	devices   []gpu.Device
	gpuProcs  []gpu.ProcessRecord
	nodes     []topo.Node
	dists     []topo.Distribution

	// Derived on every tick from the cached values above.
	records []correlate.Record

	history  *History
	interval time.Duration
	unit     ui.Unit
	sortKey  correlate.SortKey
	view     View
	topN     int

	// aggregated folds the swap process list into one row per process
	// name, summing swap and counting members.
	aggregated bool

	width    int
	height   int
	scroll   int
	showHelp bool
	quitting bool

	lastTick time.Time
}

// Options configures a dashboard model.
type Options struct {
	Interval time.Duration
	Unit     ui.Unit
	SortKey  correlate.SortKey
	Budgets  cache.Budgets
	TopN     int
	History  int
	Logger   logger.Logger
}

// NewModel creates a dashboard over the telemetry source.
func NewModel(src telemetry.Source, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Budgets == nil {
		opts.Budgets = cache.DefaultBudgets()
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	if opts.History <= 0 {
		opts.History = DefaultHistorySize
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	return Model{
		src:      src,
		sched:    cache.NewScheduler(opts.Budgets),
		log:      opts.Logger,
		history:  NewHistory(opts.History),
		interval: opts.Interval,
		unit:     opts.Unit,
		sortKey:  opts.SortKey,
		topN:     opts.TopN,
	}
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// Init schedules an immediate first tick so the dashboard renders with
// data instead of waiting a full interval.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

// Update handles messages and updates the model state. Telemetry refreshes
// run synchronously inside the tick: fetches are local reads and one
// subprocess query, all expected to finish well inside the tick budget,
// and keeping them on the update loop means no cache field is ever touched
// from two goroutines.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.handleKey(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.lastTick = time.Time(msg)
		m.refresh()
		return m, m.tickCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
