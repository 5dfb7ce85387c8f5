// Package topo models NUMA topology: node discovery from sysfs, semantic
// classification of nodes, and per-process page placement.
package topo

// NodeKind is the semantic classification of a topology node.
type NodeKind int

const (
	// KindUnknown is a node with no CPUs and no known GPU attachment.
	KindUnknown NodeKind = iota
	// KindCPU is a node with at least one CPU attached.
	KindCPU
	// KindGPUMemory is a CPU-less node backing a GPU's device memory,
	// exposed to the kernel as a memory-only NUMA node.
	KindGPUMemory
)

// String returns a short label for display.
func (k NodeKind) String() string {
	switch k {
	case KindCPU:
		return "cpu"
	case KindGPUMemory:
		return "gpu-mem"
	default:
		return "unknown"
	}
}

// Node is one NUMA memory domain.
type Node struct {
	ID         int
	MemTotalKB int64
	MemFreeKB  int64
	CPUs       []int // sorted, deduplicated; empty for memory-only nodes
	Kind       NodeKind
	GPUIndex   *int // set only when Kind == KindGPUMemory
}

// Distribution is one process's page placement across topology nodes.
// TotalPages is always recomputed as the sum of PagesPerNode, never carried
// separately.
type Distribution struct {
	PID          int
	Name         string
	PagesPerNode map[int]int64
	TotalPages   int64
	LastCPU      *int // CPU the process last ran on, when known
	CPUNode      *int // node implied by LastCPU via affinity lookup
}

// Classify assigns a semantic kind to a node. CPU presence always wins:
// a node with a non-empty CPU set is KindCPU even if the GPU affinity index
// also claims it. A CPU-less node whose id appears in gpuByNode is
// KindGPUMemory with the mapped device index; anything else is KindUnknown.
func Classify(node Node, gpuByNode map[int]int) (NodeKind, *int) {
	if len(node.CPUs) > 0 {
		return KindCPU, nil
	}
	if gpuIndex, ok := gpuByNode[node.ID]; ok {
		idx := gpuIndex
		return KindGPUMemory, &idx
	}
	return KindUnknown, nil
}

// NodeForCPU returns the id of the node whose CPU set contains cpu.
func NodeForCPU(cpu int, nodes []Node) (int, bool) {
	for _, node := range nodes {
		for _, c := range node.CPUs {
			if c == cpu {
				return node.ID, true
			}
		}
	}
	return 0, false
}

// GPUMemoryNodes returns the set of node ids classified as GPU memory.
func GPUMemoryNodes(nodes []Node) map[int]struct{} {
	out := make(map[int]struct{})
	for _, node := range nodes {
		if node.Kind == KindGPUMemory {
			out[node.ID] = struct{}{}
		}
	}
	return out
}
