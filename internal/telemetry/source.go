// Package telemetry defines the boundary between the correlation core and
// the host: a Source hands back typed snapshots of swap, GPU, and topology
// state, and reports per-capability availability so callers can degrade
// instead of probing with failing calls.
package telemetry

import (
	"github.com/rileyhilliard/memtop/internal/gpu"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/topo"
)

// Source is the telemetry capability the dashboard polls. Fetch methods
// return an error only for transient read failures; a capability that is
// absent on this host is signalled by the availability methods, and the
// corresponding fetches are simply not called.
type Source interface {
	SwapOverview() (swap.Overview, error)
	SwapProcesses() ([]swap.ProcessRecord, error)

	Devices() ([]gpu.Device, error)
	GPUProcesses() ([]gpu.ProcessRecord, error)

	Topology() ([]topo.Node, error)
	Distribution(pid int, name string) (topo.Distribution, error)

	GPUAvailable() bool
	TopologyAvailable() bool
}
