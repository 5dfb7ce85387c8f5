// Package telemetrytest provides a scriptable telemetry source for tests.
package telemetrytest

import (
	"github.com/rileyhilliard/memtop/internal/gpu"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/topo"
)

// Source returns canned snapshots and counts every fetch, so tests can
// assert both what the dashboard saw and how often each class was polled.
// The zero value reports no capabilities and empty data.
type Source struct {
	Overview      swap.Overview
	SwapProcs     []swap.ProcessRecord
	GPUDevices    []gpu.Device
	GPUProcs      []gpu.ProcessRecord
	Nodes         []topo.Node
	Distributions map[int]topo.Distribution

	GPUPresent  bool
	TopoPresent bool

	// Errors returned by the corresponding fetches when non-nil.
	OverviewErr  error
	SwapErr      error
	DevicesErr   error
	GPUProcsErr  error
	TopologyErr  error
	DistErr      error

	Calls map[string]int
}

func (s *Source) count(method string) {
	if s.Calls == nil {
		s.Calls = make(map[string]int)
	}
	s.Calls[method]++
}

func (s *Source) SwapOverview() (swap.Overview, error) {
	s.count("SwapOverview")
	return s.Overview, s.OverviewErr
}

func (s *Source) SwapProcesses() ([]swap.ProcessRecord, error) {
	s.count("SwapProcesses")
	return s.SwapProcs, s.SwapErr
}

func (s *Source) Devices() ([]gpu.Device, error) {
	s.count("Devices")
	return s.GPUDevices, s.DevicesErr
}

func (s *Source) GPUProcesses() ([]gpu.ProcessRecord, error) {
	s.count("GPUProcesses")
	return s.GPUProcs, s.GPUProcsErr
}

func (s *Source) Topology() ([]topo.Node, error) {
	s.count("Topology")
	return s.Nodes, s.TopologyErr
}

func (s *Source) Distribution(pid int, name string) (topo.Distribution, error) {
	s.count("Distribution")
	if s.DistErr != nil {
		return topo.Distribution{}, s.DistErr
	}
	if d, ok := s.Distributions[pid]; ok {
		return d, nil
	}
	return topo.Distribution{PID: pid, Name: name, PagesPerNode: map[int]int64{}}, nil
}

func (s *Source) GPUAvailable() bool      { return s.GPUPresent }
func (s *Source) TopologyAvailable() bool { return s.TopoPresent }
