package dashboard

import (
	"sort"

	"github.com/rileyhilliard/memtop/internal/cache"
	"github.com/rileyhilliard/memtop/internal/correlate"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/topo"
)

// refresh runs one cooperative tick: every telemetry class that is due gets
// one fetch attempt, then the unified records are rebuilt from whatever the
// cache now holds. A failed fetch keeps the previous value and still counts
// as an attempt, so a broken source is retried at its class cadence rather
// than every tick.
func (m *Model) refresh() {
	m.refreshSwap()
	m.refreshTopology()
	m.refreshDistributions()
	m.refreshGPU()
	m.rebuild()
}

func (m *Model) refreshSwap() {
	if !m.sched.Due(cache.ClassSwap) {
		return
	}
	if overview, err := m.src.SwapOverview(); err == nil {
		m.overview = overview
		if overview.TotalKB > 0 {
			m.history.PushSwap(float64(overview.UsedKB) / float64(overview.TotalKB) * 100)
		}
	} else {
		m.log.Debug("refresh: swap overview: %v", err)
	}
	if procs, err := m.src.SwapProcesses(); err == nil {
		m.swapProcs = procs
	} else {
		m.log.Debug("refresh: swap processes: %v", err)
	}
	m.sched.MarkRefreshed(cache.ClassSwap)
}

func (m *Model) refreshTopology() {
	if !m.src.TopologyAvailable() || !m.sched.Due(cache.ClassTopology) {
		return
	}
	if nodes, err := m.src.Topology(); err == nil {
		m.nodes = nodes
	} else {
		m.log.Debug("refresh: topology: %v", err)
	}
	m.sched.MarkRefreshed(cache.ClassTopology)
}

// refreshDistributions fetches per-process page distributions for the
// largest swap consumers. The fetch is gated on the views that display it;
// gating affects only when this class is polled, never the freshness of
// the others.
func (m *Model) refreshDistributions() {
	if !m.src.TopologyAvailable() {
		return
	}
	if m.view != ViewNUMA && m.view != ViewUnified {
		return
	}
	if !m.sched.Due(cache.ClassDistributions) {
		return
	}

	top := make([]int, 0, m.topN)
	names := make(map[int]string, m.topN)
	procs := append([]swap.ProcessRecord(nil), m.swapProcs...)
	sort.SliceStable(procs, func(i, j int) bool {
		return procs[i].SwapKB > procs[j].SwapKB
	})
	for i, p := range procs {
		if i >= m.topN {
			break
		}
		top = append(top, p.PID)
		names[p.PID] = p.Name
	}

	dists := make([]topo.Distribution, 0, len(top))
	for _, pid := range top {
		dist, err := m.src.Distribution(pid, names[pid])
		if err != nil {
			// The process likely exited between the swap scan and now.
			continue
		}
		if dist.LastCPU != nil {
			if node, ok := topo.NodeForCPU(*dist.LastCPU, m.nodes); ok {
				dist.CPUNode = &node
			}
		}
		dists = append(dists, dist)
	}
	m.dists = dists
	m.sched.MarkRefreshed(cache.ClassDistributions)
}

func (m *Model) refreshGPU() {
	if !m.src.GPUAvailable() {
		return
	}

	if m.sched.Due(cache.ClassDevices) {
		if devices, err := m.src.Devices(); err == nil {
			m.devices = devices
			for _, d := range m.devices {
				if d.MemTotalKB > 0 {
					m.history.PushGPU(d.Index, float64(d.MemUsedKB)/float64(d.MemTotalKB)*100)
				}
			}
		} else {
			m.log.Debug("refresh: GPU devices: %v", err)
		}
		m.sched.MarkRefreshed(cache.ClassDevices)
	}

	if m.sched.Due(cache.ClassGPUProcesses) {
		if procs, err := m.src.GPUProcesses(); err == nil {
			m.gpuProcs = procs
		} else {
			m.log.Debug("refresh: GPU processes: %v", err)
		}
		m.sched.MarkRefreshed(cache.ClassGPUProcesses)
	}
}

// rebuild recomputes the unified records from the current cache contents.
func (m *Model) rebuild() {
	m.records = correlate.Correlate(m.swapProcs, m.gpuProcs, m.dists, m.nodes)
	correlate.Rank(m.records, m.sortKey)
}
