package gpu

import (
	"fmt"
	"os/exec"

	"github.com/rileyhilliard/memtop/internal/errors"
)

// Queries passed to nvidia-smi. The compute-apps query has a legacy field
// spelling on older driver versions, so process queries try both.
const (
	deviceQuery         = "--query-gpu=index,name,memory.total,memory.used,memory.free,temperature.gpu,pci.bus_id"
	processQuery        = "--query-compute-apps=gpu_bus_id,pid,process_name,used_gpu_memory"
	processQueryLegacy  = "--query-compute-apps=gpu_bus_id,pid,process_name,used_memory"
	availabilityQuery   = "--query-gpu=index"
	csvNoHeaderFormat   = "--format=csv,noheader"
	nvidiaSMIExecutable = "nvidia-smi"
)

// Runner executes the vendor query tool. The default implementation shells
// out to nvidia-smi; tests substitute a canned runner.
type Runner interface {
	Run(args ...string) (string, error)
}

// ExecRunner runs nvidia-smi via os/exec.
type ExecRunner struct{}

// Run executes nvidia-smi with the given arguments and returns stdout.
func (ExecRunner) Run(args ...string) (string, error) {
	out, err := exec.Command(nvidiaSMIExecutable, args...).Output()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("%s query failed", nvidiaSMIExecutable),
			"Check the NVIDIA driver is loaded and nvidia-smi is on PATH")
	}
	return string(out), nil
}

// Available reports whether the query tool responds at all. Callers consult
// this before every refresh instead of treating a failed fetch as absence.
func Available(runner Runner) bool {
	_, err := runner.Run(availabilityQuery, csvNoHeaderFormat)
	return err == nil
}

// QueryDevices fetches and parses the device inventory.
func QueryDevices(runner Runner) ([]Device, error) {
	csv, err := runner.Run(deviceQuery, csvNoHeaderFormat)
	if err != nil {
		return nil, err
	}
	return ParseDevices(csv), nil
}

// QueryProcesses fetches and parses the per-process list, falling back to
// the legacy field spelling when the primary query is rejected. The query
// tool identifies devices by PCI bus address in per-process output, so the
// current device inventory is used to resolve addresses back to indexes.
func QueryProcesses(runner Runner, devices []Device) ([]ProcessRecord, error) {
	csv, err := runner.Run(processQuery, csvNoHeaderFormat)
	if err != nil {
		csv, err = runner.Run(processQueryLegacy, csvNoHeaderFormat)
		if err != nil {
			return nil, err
		}
	}
	return ParseProcessesResolved(csv, IndexByBusAddress(devices)), nil
}

// IndexByBusAddress maps each device's PCI bus address to its index.
func IndexByBusAddress(devices []Device) map[string]int {
	out := make(map[string]int, len(devices))
	for _, d := range devices {
		if d.BusAddress != "" {
			out[d.BusAddress] = d.Index
		}
	}
	return out
}
