package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/memtop/internal/cache"
	"github.com/rileyhilliard/memtop/internal/correlate"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/topo"
	"github.com/rileyhilliard/memtop/internal/ui"
)

const sparklineWidth = 30

// render draws the full dashboard frame: header tabs, the active view's
// body, and the staleness footer.
func (m *Model) render() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.view {
	case ViewSwap:
		b.WriteString(m.renderSwapView())
	case ViewNUMA:
		b.WriteString(m.renderNUMAView())
	case ViewGPU:
		b.WriteString(m.renderGPUView())
	case ViewUnified:
		b.WriteString(m.renderUnifiedView())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	var tabs []string
	for v := ViewSwap; v <= ViewUnified; v++ {
		label := fmt.Sprintf("%d:%s", int(v)+1, v)
		if v == m.view {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	title := headerStyle.Render("memtop")
	status := labelStyle.Render(fmt.Sprintf("sort:%s unit:%s", m.sortKey, m.unit.Label()))
	return title + strings.Join(tabs, "") + " " + status + " " + m.capabilityIndicators()
}

// capabilityIndicators marks which optional sources this host exposes.
func (m *Model) capabilityIndicators() string {
	mark := func(name string, ok bool) string {
		if ok {
			return okStyle.Render(name + ui.SymbolSuccess)
		}
		return labelStyle.Render(name + ui.SymbolFail)
	}
	return mark("gpu:", m.src.GPUAvailable()) + " " + mark("numa:", m.src.TopologyAvailable())
}

func (m *Model) renderSwapView() string {
	var b strings.Builder

	percent := 0.0
	if m.overview.TotalKB > 0 {
		percent = float64(m.overview.UsedKB) / float64(m.overview.TotalKB) * 100
	}
	usage := fmt.Sprintf("%s / %s (%.1f%%)",
		m.unit.Format(m.overview.UsedKB),
		m.unit.FormatWithLabel(m.overview.TotalKB),
		percent)
	b.WriteString(sectionTitleStyle.Render("swap usage") + "  " + valueStyle.Render(usage))
	if spark := ui.RenderSparkline(m.history.Swap(), sparklineWidth); spark != "" {
		b.WriteString("  " + spark)
	}
	b.WriteString("\n\n")

	if len(m.overview.Devices) > 0 {
		b.WriteString(sectionTitleStyle.Render("devices") + "\n")
		for _, d := range m.overview.Devices {
			line := fmt.Sprintf("  %s %s %s/%s prio %d",
				ui.PadRight(d.Name, 28), ui.PadRight(d.Kind, 10),
				m.unit.Format(d.UsedKB), m.unit.FormatWithLabel(d.SizeKB), d.Priority)
			b.WriteString(valueStyle.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	if m.aggregated {
		b.WriteString(m.renderAggregatedSwapList())
		return b.String()
	}

	procs := append([]swap.ProcessRecord(nil), m.swapProcs...)
	sort.SliceStable(procs, func(i, j int) bool { return procs[i].SwapKB > procs[j].SwapKB })

	b.WriteString(sectionTitleStyle.Render("swapped processes") + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-8s %-24s %12s %5s",
		"PID", "NAME", "SWAP "+m.unit.Label(), "CPU")) + "\n")
	for _, p := range m.visibleSwapRows(procs) {
		cpu := "-"
		if p.LastCPU != nil {
			cpu = strconv.Itoa(*p.LastCPU)
		}
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-8d %-24s %12s %5s",
			p.PID, truncate(p.Name, 24), m.unit.Format(p.SwapKB), cpu)) + "\n")
	}
	return b.String()
}

// renderAggregatedSwapList folds the swap list into one row per process
// name with a member count in place of the PID column.
func (m *Model) renderAggregatedSwapList() string {
	var b strings.Builder
	aggs := swap.AggregateByName(m.swapProcs)

	b.WriteString(sectionTitleStyle.Render("swapped processes (by name)") + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-8s %-24s %12s",
		"COUNT", "NAME", "SWAP "+m.unit.Label())) + "\n")
	for _, a := range m.visibleAggRows(aggs) {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-8d %-24s %12s",
			a.Count, truncate(a.Name, 24), m.unit.Format(a.SwapKB))) + "\n")
	}
	return b.String()
}

func (m *Model) renderNUMAView() string {
	var b strings.Builder

	if len(m.nodes) == 0 {
		b.WriteString(labelStyle.Render("no topology information available") + "\n")
		return b.String()
	}

	b.WriteString(sectionTitleStyle.Render("topology nodes") + "\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-5s %-10s %14s %14s %-16s %s",
		"NODE", "KIND", "TOTAL "+m.unit.Label(), "FREE "+m.unit.Label(), "CPUS", "GPU")) + "\n")
	for _, n := range m.nodes {
		gpuCol := "-"
		if n.GPUIndex != nil {
			gpuCol = strconv.Itoa(*n.GPUIndex)
		}
		usedFrac := 0.0
		if n.MemTotalKB > 0 {
			usedFrac = float64(n.MemTotalKB-n.MemFreeKB) / float64(n.MemTotalKB) * 100
		}
		style := valueStyle
		if n.Kind == topo.KindGPUMemory {
			style = okStyle
		}
		line := fmt.Sprintf("  %-5d %-10s %14s %14s %-16s %s",
			n.ID, n.Kind, m.unit.Format(n.MemTotalKB), m.unit.Format(n.MemFreeKB),
			rangeString(n.CPUs), gpuCol)
		if usedFrac >= 90 {
			style = errorStyle
		}
		b.WriteString(style.Render(line) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionTitleStyle.Render("per-process page placement") + "\n")
	if len(m.dists) == 0 {
		b.WriteString(labelStyle.Render("  no page distributions collected yet") + "\n")
		return b.String()
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-8s %-24s %12s %-7s %s",
		"PID", "NAME", "PAGES", "ON-CPU", "PER-NODE")) + "\n")
	for _, d := range m.visibleDistRows() {
		cpuNode := "-"
		if d.CPUNode != nil {
			cpuNode = "N" + strconv.Itoa(*d.CPUNode)
		}
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-8d %-24s %12d %-7s %s",
			d.PID, truncate(d.Name, 24), d.TotalPages, cpuNode, perNodeString(d))) + "\n")
	}
	return b.String()
}

func (m *Model) renderGPUView() string {
	var b strings.Builder

	if len(m.devices) == 0 {
		b.WriteString(labelStyle.Render("no GPU devices detected") + "\n")
		return b.String()
	}

	b.WriteString(sectionTitleStyle.Render("devices") + "\n")
	for _, d := range m.devices {
		percent := 0.0
		if d.MemTotalKB > 0 {
			percent = float64(d.MemUsedKB) / float64(d.MemTotalKB) * 100
		}
		temp := "-"
		if d.Temperature != nil {
			temp = fmt.Sprintf("%d°C", *d.Temperature)
		}
		node := "-"
		if d.NUMANode != nil {
			node = "N" + strconv.Itoa(*d.NUMANode)
		}
		line := fmt.Sprintf("  [%d] %s %s/%s (%.1f%%) %s %s",
			d.Index, ui.PadRight(truncate(d.Name, 30), 30),
			m.unit.Format(d.MemUsedKB), m.unit.FormatWithLabel(d.MemTotalKB),
			percent, temp, node)
		b.WriteString(valueStyle.Render(line))
		if spark := ui.RenderSparkline(m.history.GPU(d.Index), sparklineWidth); spark != "" {
			b.WriteString("  " + spark)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionTitleStyle.Render("GPU processes") + "\n")
	if len(m.gpuProcs) == 0 {
		b.WriteString(labelStyle.Render("  none") + "\n")
		return b.String()
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-8s %-24s %5s %12s",
		"PID", "NAME", "GPU", "MEM "+m.unit.Label())) + "\n")
	for _, p := range m.gpuProcs {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-8d %-24s %5d %12s",
			p.PID, truncate(p.Name, 24), p.Device, m.unit.Format(p.MemUsedKB))) + "\n")
	}
	return b.String()
}

func (m *Model) renderUnifiedView() string {
	var b strings.Builder

	b.WriteString(sectionTitleStyle.Render("unified processes") + "\n")
	if len(m.records) == 0 {
		b.WriteString(labelStyle.Render("  no processes with swap or GPU footprint") + "\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("  %-8s %-24s %-8s %12s %12s %5s %-5s",
		"PID", "NAME", "WHERE", "SWAP "+m.unit.Label(), "GPU "+m.unit.Label(), "GPU#", "NODE")) + "\n")
	for _, r := range m.visibleUnifiedRows() {
		gpuMem := "-"
		if r.GPUMemoryKB != nil {
			gpuMem = m.unit.Format(*r.GPUMemoryKB)
		}
		gpuIdx := "-"
		if r.GPUIndex != nil {
			gpuIdx = strconv.Itoa(*r.GPUIndex)
		}
		node := "-"
		if r.Node != nil {
			node = "N" + strconv.Itoa(*r.Node)
		}
		b.WriteString(valueStyle.Render(fmt.Sprintf("  %-8d %-24s %-8s %12s %12s %5s %-5s",
			r.PID, truncate(r.Name, 24), r.Placement, m.unit.Format(r.SwapKB),
			gpuMem, gpuIdx, node)) + "\n")
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	var stale []string
	for _, c := range []cache.Class{cache.ClassSwap, cache.ClassTopology, cache.ClassDistributions, cache.ClassDevices, cache.ClassGPUProcesses} {
		age, ok := m.sched.Age(c)
		if !ok {
			stale = append(stale, fmt.Sprintf("%s:%s", c, ui.SymbolPending))
			continue
		}
		entry := fmt.Sprintf("%s:%s%s", c, ui.SymbolComplete, age.Truncate(time.Second))
		if budget := m.sched.Budget(c); budget > 0 {
			entry += "/" + budget.String()
		}
		stale = append(stale, entry)
	}
	hints := fmt.Sprintf("< %s >  tab/1-4:view  s:sort  k/m/g:unit  r:refresh  ?:help  q:quit",
		m.interval)
	line := hints
	if len(stale) > 0 {
		line += "  " + strings.Join(stale, " ")
	}
	return footerStyle.Render(line)
}

func (m *Model) renderHelp() string {
	lines := []string{
		sectionTitleStyle.Render("memtop keys"),
		"",
		"  tab, 1-4      switch view (swap / numa / gpu / unified)",
		"  s             cycle sort column",
		"  a             aggregate swap processes by name",
		"  k, m, g       display units (KB / MB / GB)",
		"  up/u, down/d  scroll process list",
		"  pgup, pgdn    scroll a page at a time",
		"  home, end     jump to top / bottom",
		"  left, right   adjust refresh interval",
		"  r             force refresh now",
		"  ?             toggle this help",
		"  q, ctrl+c     quit",
		"",
		footerStyle.Render("press ? or esc to close"),
	}
	return strings.Join(lines, "\n")
}

// visibleRows returns how many data rows fit under the current height.
func (m *Model) visibleRows() int {
	// Header, section titles, and footer eat into the height budget.
	const chrome = 10
	rows := m.height - chrome
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m *Model) visibleSwapRows(procs []swap.ProcessRecord) []swap.ProcessRecord {
	start, end := m.window(len(procs))
	return procs[start:end]
}

func (m *Model) visibleAggRows(aggs []swap.Aggregate) []swap.Aggregate {
	start, end := m.window(len(aggs))
	return aggs[start:end]
}

func (m *Model) visibleDistRows() []topo.Distribution {
	start, end := m.window(len(m.dists))
	return m.dists[start:end]
}

func (m *Model) visibleUnifiedRows() []correlate.Record {
	start, end := m.window(len(m.records))
	return m.records[start:end]
}

// window clamps the scroll offset against the list length and returns the
// slice bounds for the visible rows.
func (m *Model) window(total int) (int, int) {
	rows := m.visibleRows()
	maxScroll := total - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	start := m.scroll
	end := start + rows
	if end > total {
		end = total
	}
	return start, end
}

// truncate shortens s to width runes with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

// rangeString compresses a sorted CPU list into range notation, the
// inverse of the cpulist parser: [0,1,2,3,8] -> "0-3,8".
func rangeString(cpus []int) string {
	if len(cpus) == 0 {
		return "-"
	}
	var parts []string
	start, prev := cpus[0], cpus[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, c := range cpus[1:] {
		if c == prev+1 {
			prev = c
			continue
		}
		flush()
		start, prev = c, c
	}
	flush()
	return strings.Join(parts, ",")
}

// perNodeString summarizes a page distribution as "N0:100 N1:25", node ids
// ascending.
func perNodeString(d topo.Distribution) string {
	nodes := make([]int, 0, len(d.PagesPerNode))
	for n := range d.PagesPerNode {
		nodes = append(nodes, n)
	}
	sort.Ints(nodes)
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, fmt.Sprintf("N%d:%d", n, d.PagesPerNode[n]))
	}
	return strings.Join(parts, " ")
}
