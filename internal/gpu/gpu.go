// Package gpu reads discrete GPU memory telemetry from the vendor query
// tool and correlates devices with NUMA topology through sysfs.
package gpu

import (
	"github.com/rileyhilliard/memtop/internal/parse"
)

// Device is one discrete GPU. Identity is the index reported by the query
// tool; the whole inventory is replaced on each device-class refresh.
type Device struct {
	Index       int
	Name        string
	MemTotalKB  int64
	MemUsedKB   int64
	MemFreeKB   int64
	NUMANode    *int // operating-system node backing this device, when resolvable
	Temperature *int // degrees Celsius, when reported
	BusAddress  string
}

// ProcessRecord is one process's memory footprint on one device. A process
// using multiple devices yields multiple records; they are not deduplicated.
type ProcessRecord struct {
	PID       int
	Name      string
	Device    int
	MemUsedKB int64
}

// Header prefixes the query tool emits before data rows.
var csvHeaders = []string{"index", "gpu", "name", "pid"}

// ParseDevices parses device-inventory CSV of the form:
//
//	index, name, memory.total [MiB], memory.used [MiB], memory.free [MiB], temperature.gpu, pci.bus_id
//
// Malformed rows are skipped. Memory fields are converted to KiB at parse
// time. A missing temperature leaves the field nil rather than zero.
func ParseDevices(csv string) []Device {
	var devices []Device

	tab := parse.NewTable(csv, ",", 7, csvHeaders...)
	for {
		row, ok := tab.Next()
		if !ok {
			return devices
		}

		index, ok := row.Int(0)
		if !ok {
			continue
		}
		total, ok := row.MiB(2)
		if !ok {
			continue
		}
		used, ok := row.MiB(3)
		if !ok {
			continue
		}
		free, ok := row.MiB(4)
		if !ok {
			continue
		}

		device := Device{
			Index:      int(index),
			Name:       row.Str(1),
			MemTotalKB: total,
			MemUsedKB:  used,
			MemFreeKB:  free,
			BusAddress: row.Str(6),
		}
		if temp, ok := row.Int(5); ok {
			t := int(temp)
			device.Temperature = &t
		}
		devices = append(devices, device)
	}
}

// ParseProcesses parses per-process CSV of the form:
//
//	gpu_index, pid, process_name, used_gpu_memory [MiB]
//
// Rows whose first field is not a numeric index are skipped.
func ParseProcesses(csv string) []ProcessRecord {
	return ParseProcessesResolved(csv, nil)
}

// ParseProcessesResolved parses per-process CSV whose first field is either
// a numeric device index or a PCI bus address resolvable through byBus.
// Rows identifying an unknown device are skipped like any other malformed
// row.
func ParseProcessesResolved(csv string, byBus map[string]int) []ProcessRecord {
	var procs []ProcessRecord

	tab := parse.NewTable(csv, ",", 4, csvHeaders...)
	for {
		row, ok := tab.Next()
		if !ok {
			return procs
		}

		device, ok := row.Int(0)
		if !ok {
			resolved, found := byBus[row.Str(0)]
			if !found {
				continue
			}
			device = int64(resolved)
		}
		pid, ok := row.Int(1)
		if !ok {
			continue
		}
		mem, ok := row.MiB(3)
		if !ok {
			continue
		}

		procs = append(procs, ProcessRecord{
			PID:       int(pid),
			Name:      row.Str(2),
			Device:    int(device),
			MemUsedKB: mem,
		})
	}
}
