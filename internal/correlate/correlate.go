// Package correlate joins per-process records from the swap, GPU, and
// topology sources into unified records keyed by PID, then ranks them.
//
// The join is total: every PID seen by any input appears exactly once in
// the output. An absent source degrades fields, never presence.
package correlate

import (
	"sort"

	"github.com/rileyhilliard/memtop/internal/gpu"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/topo"
)

// Placement classifies where a process's memory lives.
type Placement int

const (
	CPUOnly Placement = iota
	GPUOnly
	CPUAndGPU
)

// String returns the placement label shown in the unified table.
func (p Placement) String() string {
	switch p {
	case CPUOnly:
		return "CPU"
	case GPUOnly:
		return "GPU"
	case CPUAndGPU:
		return "CPU+GPU"
	default:
		return "?"
	}
}

// Record is one process as seen across all sources. Optional fields are
// nil when the corresponding source produced no evidence for this PID.
type Record struct {
	PID         int
	Name        string
	SwapKB      int64
	Node        *int   // dominant topology node, from the page distribution
	GPUMemoryKB *int64 // nil when no GPU evidence exists
	GPUIndex    *int
	Placement   Placement
}

// TotalKB is the process's combined footprint across swap and GPU memory,
// treating absent GPU evidence as zero.
func (r Record) TotalKB() int64 {
	total := r.SwapKB
	if r.GPUMemoryKB != nil {
		total += *r.GPUMemoryKB
	}
	return total
}

// Correlate builds one unified record per PID from the three per-process
// inputs. Swap records seed the mapping, GPU records merge in or insert,
// and distribution-only PIDs are inserted last so no source's sighting of
// a process is dropped. A CPU-resident process with pages on a GPU-memory
// node is promoted to CPUAndGPU even without a GPU process entry, since
// migrated pages are accelerator usage in all but name.
//
// Output is ordered by combined footprint descending, ties by first
// sighting. Callers re-rank with Rank for other sort keys.
func Correlate(
	swapProcs []swap.ProcessRecord,
	gpuProcs []gpu.ProcessRecord,
	distributions []topo.Distribution,
	nodes []topo.Node,
) []Record {
	distByPID := make(map[int]topo.Distribution, len(distributions))
	for _, d := range distributions {
		distByPID[d.PID] = d
	}

	byPID := make(map[int]*Record)
	var order []int

	insert := func(r Record) *Record {
		rec := r
		byPID[rec.PID] = &rec
		order = append(order, rec.PID)
		return &rec
	}

	for _, p := range swapProcs {
		rec := Record{
			PID:       p.PID,
			Name:      p.Name,
			SwapKB:    p.SwapKB,
			Placement: CPUOnly,
		}
		if d, ok := distByPID[p.PID]; ok {
			rec.Node = dominantNode(d)
		}
		insert(rec)
	}

	for _, gp := range gpuProcs {
		mem := gp.MemUsedKB
		idx := gp.Device
		if existing, ok := byPID[gp.PID]; ok {
			existing.GPUMemoryKB = &mem
			existing.GPUIndex = &idx
			existing.Placement = CPUAndGPU
			continue
		}
		insert(Record{
			PID:         gp.PID,
			Name:        gp.Name,
			GPUMemoryKB: &mem,
			GPUIndex:    &idx,
			Placement:   GPUOnly,
		})
	}

	gpuMemNodes := topo.GPUMemoryNodes(nodes)
	for _, d := range distributions {
		rec, ok := byPID[d.PID]
		if !ok {
			rec = insert(Record{
				PID:       d.PID,
				Name:      d.Name,
				Node:      dominantNode(d),
				Placement: CPUOnly,
			})
		}
		if rec.Placement != CPUOnly {
			continue
		}
		for node := range gpuMemNodes {
			if d.PagesPerNode[node] > 0 {
				rec.Placement = CPUAndGPU
				break
			}
		}
	}

	records := make([]Record, 0, len(order))
	for _, pid := range order {
		records = append(records, *byPID[pid])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalKB() > records[j].TotalKB()
	})
	return records
}

// dominantNode picks the node holding the most pages; ties go to the
// lowest node id so repeated correlations of the same snapshot agree.
func dominantNode(d topo.Distribution) *int {
	best := -1
	var bestPages int64
	for node, pages := range d.PagesPerNode {
		if pages > bestPages || (pages == bestPages && pages > 0 && (best == -1 || node < best)) {
			best = node
			bestPages = pages
		}
	}
	if best < 0 {
		return nil
	}
	return &best
}
