package telemetry

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/rileyhilliard/memtop/internal/errors"
	"github.com/rileyhilliard/memtop/internal/gpu"
	"github.com/rileyhilliard/memtop/internal/logger"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/topo"
)

// systemSource reads live telemetry from procfs, sysfs, and the NVIDIA
// query tool. Roots are injectable so tests can point it at a fake tree.
type systemSource struct {
	procRoot string
	sysRoot  string
	pciRoot  string
	runner   gpu.Runner
	log      logger.Logger

	gpuChecked  bool
	gpuPresent  bool
	topoChecked bool
	topoPresent bool
}

// Option adjusts a system source before first use.
type Option func(*systemSource)

// WithProcRoot overrides the procfs mount point.
func WithProcRoot(root string) Option {
	return func(s *systemSource) { s.procRoot = root }
}

// WithSysRoot overrides the topology sysfs root.
func WithSysRoot(root string) Option {
	return func(s *systemSource) { s.sysRoot = root }
}

// WithPCIRoot overrides the PCI device sysfs root.
func WithPCIRoot(root string) Option {
	return func(s *systemSource) { s.pciRoot = root }
}

// WithRunner overrides the GPU query tool runner.
func WithRunner(r gpu.Runner) Option {
	return func(s *systemSource) { s.runner = r }
}

// NewSystemSource builds a Source over the live host.
func NewSystemSource(log logger.Logger, opts ...Option) Source {
	s := &systemSource{
		procRoot: swap.DefaultProcRoot,
		sysRoot:  topo.DefaultSysRoot,
		pciRoot:  gpu.DefaultPCIRoot,
		runner:   gpu.ExecRunner{},
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *systemSource) SwapOverview() (swap.Overview, error) {
	overview, err := swap.ReadOverview(s.procRoot)
	if err != nil {
		return swap.Overview{}, errors.Wrap(err, "reading swap overview")
	}
	return overview, nil
}

func (s *systemSource) SwapProcesses() ([]swap.ProcessRecord, error) {
	records, err := swap.CollectProcesses(s.procRoot)
	if err != nil {
		return nil, errors.Wrap(err, "scanning swapped processes")
	}
	return records, nil
}

func (s *systemSource) Devices() ([]gpu.Device, error) {
	devices, err := gpu.QueryDevices(s.runner)
	if err != nil {
		return nil, err
	}
	gpu.FillNUMANodes(devices, s.pciRoot)
	gpu.RefineNames(devices, s.pciRoot)
	return devices, nil
}

func (s *systemSource) GPUProcesses() ([]gpu.ProcessRecord, error) {
	devices, err := gpu.QueryDevices(s.runner)
	if err != nil {
		return nil, err
	}
	return gpu.QueryProcesses(s.runner, devices)
}

func (s *systemSource) Topology() ([]topo.Node, error) {
	affinity := map[int]int{}
	if s.GPUAvailable() {
		// GPU affinity enriches node classification but its absence never
		// fails a topology read.
		if devices, err := s.Devices(); err == nil {
			affinity = gpu.AffinityByNode(devices, s.pciRoot)
		} else {
			s.log.Debug("topology: skipping GPU affinity: %v", err)
		}
	}

	nodes, err := topo.Discover(s.sysRoot, affinity)
	if err != nil {
		return nil, errors.Wrap(err, "discovering topology nodes")
	}
	return nodes, nil
}

func (s *systemSource) Distribution(pid int, name string) (topo.Distribution, error) {
	pidDir := filepath.Join(s.procRoot, strconv.Itoa(pid))
	content, err := os.ReadFile(filepath.Join(pidDir, "numa_maps"))
	if err != nil {
		return topo.Distribution{}, errors.Wrap(err, "reading numa_maps")
	}

	dist := topo.ParseDistribution(string(content), pid, name)
	if stat, err := os.ReadFile(filepath.Join(pidDir, "stat")); err == nil {
		dist.LastCPU = swap.ParseStatLastCPU(string(stat))
	}
	return dist, nil
}

// GPUAvailable probes the query tool once and caches the answer for the
// process lifetime.
func (s *systemSource) GPUAvailable() bool {
	if !s.gpuChecked {
		s.gpuPresent = gpu.Available(s.runner)
		s.gpuChecked = true
		s.log.Debug("telemetry: GPU available=%v", s.gpuPresent)
	}
	return s.gpuPresent
}

// TopologyAvailable stats the sysfs node tree once and caches the answer.
func (s *systemSource) TopologyAvailable() bool {
	if !s.topoChecked {
		s.topoPresent = topo.Available(s.sysRoot)
		s.topoChecked = true
		s.log.Debug("telemetry: topology available=%v", s.topoPresent)
	}
	return s.topoPresent
}
