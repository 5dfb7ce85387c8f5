package topo

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/memtop/internal/parse"
)

// DefaultSysRoot is where the kernel exposes NUMA node directories.
const DefaultSysRoot = "/sys/devices/system/node"

// Available reports whether the host exposes a NUMA topology at all.
// Callers check this before every refresh; it is never inferred from a
// failed read.
func Available(sysRoot string) bool {
	_, err := os.Stat(filepath.Join(sysRoot, "node0"))
	return err == nil
}

// Discover scans sysRoot for node<N> directories and builds the node list,
// classifying each node against the GPU affinity index. Nodes are returned
// sorted by id. Classification is recomputed on every call; it is never
// cached apart from the node value itself.
func Discover(sysRoot string, gpuByNode map[int]int) ([]Node, error) {
	entries, err := os.ReadDir(sysRoot)
	if err != nil {
		return nil, err
	}

	var nodes []Node
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "node") {
			continue
		}
		id, err := strconv.Atoi(name[len("node"):])
		if err != nil {
			continue
		}

		dir := filepath.Join(sysRoot, name)

		// Unreadable files degrade to zero values and an empty CPU set.
		meminfo, _ := os.ReadFile(filepath.Join(dir, "meminfo"))
		totalKB, freeKB := parse.NodeMemInfo(string(meminfo))

		cpulist, _ := os.ReadFile(filepath.Join(dir, "cpulist"))

		node := Node{
			ID:         id,
			MemTotalKB: totalKB,
			MemFreeKB:  freeKB,
			CPUs:       parse.RangeList(string(cpulist)),
		}
		node.Kind, node.GPUIndex = Classify(node, gpuByNode)
		nodes = append(nodes, node)
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes, nil
}

// ParseDistribution builds a Distribution from numa_maps content. Page
// counts for regions on the same node are summed and TotalPages is derived
// from the final map.
func ParseDistribution(content string, pid int, name string) Distribution {
	pages := parse.NodePages(content)

	var total int64
	for _, count := range pages {
		total += count
	}

	return Distribution{
		PID:          pid,
		Name:         name,
		PagesPerNode: pages,
		TotalPages:   total,
	}
}
