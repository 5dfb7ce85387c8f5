package gpu

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultPCIRoot is where the kernel exposes PCI device attributes.
const DefaultPCIRoot = "/sys/bus/pci/devices"

// AffinityByNode resolves each device's PCI bus address to the NUMA node
// backing it and returns the index keyed by node id. A lookup that fails or
// reports -1 (no affinity) is silently omitted; partial indexes are normal
// on hosts without device-attached memory nodes.
func AffinityByNode(devices []Device, pciRoot string) map[int]int {
	byNode := make(map[int]int)
	for _, device := range devices {
		node, ok := numaNodeFor(device.BusAddress, pciRoot)
		if !ok {
			continue
		}
		byNode[node] = device.Index
	}
	return byNode
}

// FillNUMANodes sets each device's NUMANode from its sysfs affinity.
// Devices whose lookup fails keep a nil node.
func FillNUMANodes(devices []Device, pciRoot string) {
	for i := range devices {
		if node, ok := numaNodeFor(devices[i].BusAddress, pciRoot); ok {
			n := node
			devices[i].NUMANode = &n
		}
	}
}

// numaNodeFor reads /sys/bus/pci/devices/<addr>/numa_node. The query tool
// reports bus addresses with an eight-digit domain ("00000000:01:00.0")
// while sysfs uses four ("0000:01:00.0"); both spellings are tried.
func numaNodeFor(busAddress, pciRoot string) (int, bool) {
	if busAddress == "" {
		return 0, false
	}
	for _, addr := range addressCandidates(busAddress) {
		content, err := os.ReadFile(filepath.Join(pciRoot, addr, "numa_node"))
		if err != nil {
			continue
		}
		node, err := strconv.Atoi(strings.TrimSpace(string(content)))
		if err != nil || node < 0 {
			return 0, false
		}
		return node, true
	}
	return 0, false
}

func addressCandidates(busAddress string) []string {
	lower := strings.ToLower(busAddress)
	candidates := []string{lower}
	if strings.HasPrefix(lower, "0000") && len(lower) > 4 && lower[4] != ':' {
		// Drop the extended domain digits: 00000000:01:00.0 -> 0000:01:00.0
		candidates = append(candidates, lower[4:])
	}
	return candidates
}
