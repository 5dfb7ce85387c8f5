package correlate

import "sort"

// SortKey selects the column the unified table is ordered by.
type SortKey int

const (
	SortSwap SortKey = iota
	SortGPUMem
	SortName
	SortNode
)

// Next cycles to the following sort key, wrapping after node.
func (k SortKey) Next() SortKey {
	if k == SortNode {
		return SortSwap
	}
	return k + 1
}

// String returns the footer label for the key.
func (k SortKey) String() string {
	switch k {
	case SortSwap:
		return "swap"
	case SortGPUMem:
		return "gpu-mem"
	case SortName:
		return "name"
	case SortNode:
		return "node"
	default:
		return "?"
	}
}

// Rank orders records by the given key: magnitude keys descending, identity
// keys ascending. The sort is stable, so records tied on the key keep their
// relative order from the input. Absent GPU memory compares as zero; an
// absent node sorts before every present node.
func Rank(records []Record, key SortKey) {
	switch key {
	case SortSwap:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].SwapKB > records[j].SwapKB
		})
	case SortGPUMem:
		sort.SliceStable(records, func(i, j int) bool {
			return gpuMemOrZero(records[i]) > gpuMemOrZero(records[j])
		})
	case SortName:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Name < records[j].Name
		})
	case SortNode:
		sort.SliceStable(records, func(i, j int) bool {
			return nodeOrFloor(records[i]) < nodeOrFloor(records[j])
		})
	}
}

func gpuMemOrZero(r Record) int64 {
	if r.GPUMemoryKB == nil {
		return 0
	}
	return *r.GPUMemoryKB
}

func nodeOrFloor(r Record) int {
	if r.Node == nil {
		return -1
	}
	return *r.Node
}
