// Package swap reads kernel swap telemetry from procfs: global totals and
// per-device rows, plus the per-process list of swapped-out footprints.
package swap

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rileyhilliard/memtop/internal/parse"
)

// DefaultProcRoot is the procfs mount point.
const DefaultProcRoot = "/proc"

// DeviceInfo is one row of /proc/swaps.
type DeviceInfo struct {
	Name     string
	Kind     string
	SizeKB   int64
	UsedKB   int64
	Priority int
}

// Overview is the host-wide swap picture: meminfo totals plus the backing
// devices.
type Overview struct {
	TotalKB int64
	UsedKB  int64
	Devices []DeviceInfo
}

// ProcessRecord is one process currently holding swapped-out pages.
// Records are produced fresh on each refresh and carry no identity across
// ticks.
type ProcessRecord struct {
	PID     int
	Name    string
	SwapKB  int64
	LastCPU *int // CPU the process last ran on, when readable
}

// ParseMeminfo extracts SwapTotal and derives used swap from /proc/meminfo
// content. Values are already in kB.
func ParseMeminfo(content string) (totalKB, usedKB int64) {
	var freeKB int64

	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		value, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}
		switch strings.TrimSuffix(fields[0], ":") {
		case "SwapTotal":
			totalKB = value
		case "SwapFree":
			freeKB = value
		}
	}

	usedKB = totalKB - freeKB
	if usedKB < 0 {
		usedKB = 0
	}
	return totalKB, usedKB
}

// ParseSwaps parses /proc/swaps content. The first line is a column header;
// each data row is "Filename Type Size Used Priority" with sizes in kB.
func ParseSwaps(content string) []DeviceInfo {
	var devices []DeviceInfo

	tab := parse.NewTable(content, "\t", 1, "Filename")
	for {
		row, ok := tab.Next()
		if !ok {
			return devices
		}
		// /proc/swaps mixes tabs and spaces; refield on whitespace.
		fields := strings.Fields(strings.Join(row.Fields, " "))
		if len(fields) < 5 {
			continue
		}
		size, err1 := strconv.ParseInt(fields[2], 10, 64)
		used, err2 := strconv.ParseInt(fields[3], 10, 64)
		priority, err3 := strconv.Atoi(fields[4])
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		devices = append(devices, DeviceInfo{
			Name:     fields[0],
			Kind:     fields[1],
			SizeKB:   size,
			UsedKB:   used,
			Priority: priority,
		})
	}
}

// ParseStatus extracts the process name and VmSwap from /proc/<pid>/status
// content. ok is false when the process holds no swapped pages.
func ParseStatus(content string) (name string, swapKB int64, ok bool) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "Name:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
		case strings.HasPrefix(line, "VmSwap:"):
			if v, kvOK := kbField(line); kvOK {
				swapKB = v
			}
		}
	}
	return name, swapKB, swapKB > 0
}

// ParseStatLastCPU extracts the last-run CPU (field 39) from
// /proc/<pid>/stat content. The comm field may contain spaces and
// parentheses, so fields are counted after the final ')'.
func ParseStatLastCPU(content string) *int {
	end := strings.LastIndex(content, ")")
	if end < 0 {
		return nil
	}
	fields := strings.Fields(content[end+1:])
	// Field 39 overall; the first two (pid, comm) sit before the ')'.
	const lastCPUIndex = 39 - 3
	if len(fields) <= lastCPUIndex {
		return nil
	}
	cpu, err := strconv.Atoi(fields[lastCPUIndex])
	if err != nil || cpu < 0 {
		return nil
	}
	return &cpu
}

// ReadOverview builds the host-wide swap picture from procRoot.
func ReadOverview(procRoot string) (Overview, error) {
	meminfo, err := os.ReadFile(filepath.Join(procRoot, "meminfo"))
	if err != nil {
		return Overview{}, err
	}
	total, used := ParseMeminfo(string(meminfo))

	overview := Overview{TotalKB: total, UsedKB: used}

	// Device rows are enrichment; a missing /proc/swaps degrades to totals
	// only.
	if swaps, err := os.ReadFile(filepath.Join(procRoot, "swaps")); err == nil {
		overview.Devices = ParseSwaps(string(swaps))
	}
	return overview, nil
}

// CollectProcesses walks procRoot for processes with nonzero VmSwap.
// Individual unreadable processes (exited mid-walk, permission denied) are
// skipped.
func CollectProcesses(procRoot string) ([]ProcessRecord, error) {
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		return nil, err
	}

	var records []ProcessRecord
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		status, err := os.ReadFile(filepath.Join(procRoot, entry.Name(), "status"))
		if err != nil {
			continue
		}
		name, swapKB, ok := ParseStatus(string(status))
		if !ok {
			continue
		}

		record := ProcessRecord{PID: pid, Name: name, SwapKB: swapKB}
		if stat, err := os.ReadFile(filepath.Join(procRoot, entry.Name(), "stat")); err == nil {
			record.LastCPU = ParseStatLastCPU(string(stat))
		}
		records = append(records, record)
	}
	return records, nil
}

func kbField(line string) (int64, bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return 0, false
	}
	fields := strings.Fields(line[colon+1:])
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
