package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/memtop/internal/correlate"
	"github.com/rileyhilliard/memtop/internal/gpu"
	"github.com/rileyhilliard/memtop/internal/logger"
	"github.com/rileyhilliard/memtop/internal/swap"
	"github.com/rileyhilliard/memtop/internal/telemetry"
	"github.com/rileyhilliard/memtop/internal/topo"
	"github.com/rileyhilliard/memtop/internal/ui"
)

var snapshotJSON bool

// snapshotCmd prints one correlated sample and exits, for scripts and
// quick checks without the TUI.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one correlated sample and exit",
	Long: `Fetch swap, topology, and GPU telemetry once, correlate them, and
print the unified process table.

Examples:
  memtop snapshot
  memtop snapshot --json | jq '.processes[] | select(.placement == "CPU+GPU")'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		src := telemetry.NewSystemSource(logger.NewEnvLogger("memtop"))
		return snapshotCommand(cmd.OutOrStdout(), src, cfg.DisplayUnit(), cfg.SortKey(), snapshotJSON)
	},
}

// Snapshot is the JSON shape emitted by --json.
type Snapshot struct {
	Swap      swap.Overview      `json:"swap"`
	Nodes     []topo.Node        `json:"nodes,omitempty"`
	Devices   []gpu.Device       `json:"devices,omitempty"`
	Processes []SnapshotProcess  `json:"processes"`
}

// SnapshotProcess flattens a unified record for machine output.
type SnapshotProcess struct {
	PID         int    `json:"pid"`
	Name        string `json:"name"`
	Placement   string `json:"placement"`
	SwapKB      int64  `json:"swap_kb"`
	GPUMemoryKB *int64 `json:"gpu_memory_kb,omitempty"`
	GPUIndex    *int   `json:"gpu_index,omitempty"`
	Node        *int   `json:"node,omitempty"`
}

func snapshotCommand(w io.Writer, src telemetry.Source, unit ui.Unit, key correlate.SortKey, asJSON bool) error {
	overview, err := src.SwapOverview()
	if err != nil {
		return err
	}
	swapProcs, err := src.SwapProcesses()
	if err != nil {
		return err
	}

	var nodes []topo.Node
	if src.TopologyAvailable() {
		// Topology failures degrade the snapshot instead of killing it.
		nodes, _ = src.Topology()
	}

	var devices []gpu.Device
	var gpuProcs []gpu.ProcessRecord
	if src.GPUAvailable() {
		devices, _ = src.Devices()
		gpuProcs, _ = src.GPUProcesses()
	}

	records := correlate.Correlate(swapProcs, gpuProcs, nil, nodes)
	correlate.Rank(records, key)

	if asJSON {
		return writeSnapshotJSON(w, overview, nodes, devices, records)
	}
	return writeSnapshotTable(w, overview, records, unit)
}

func writeSnapshotJSON(w io.Writer, overview swap.Overview, nodes []topo.Node, devices []gpu.Device, records []correlate.Record) error {
	snap := Snapshot{
		Swap:      overview,
		Nodes:     nodes,
		Devices:   devices,
		Processes: make([]SnapshotProcess, 0, len(records)),
	}
	for _, r := range records {
		snap.Processes = append(snap.Processes, SnapshotProcess{
			PID:         r.PID,
			Name:        r.Name,
			Placement:   r.Placement.String(),
			SwapKB:      r.SwapKB,
			GPUMemoryKB: r.GPUMemoryKB,
			GPUIndex:    r.GPUIndex,
			Node:        r.Node,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

func writeSnapshotTable(w io.Writer, overview swap.Overview, records []correlate.Record, unit ui.Unit) error {
	fmt.Fprintf(w, "swap: %s / %s\n\n", unit.Format(overview.UsedKB), unit.FormatWithLabel(overview.TotalKB))

	columns := []ui.TableColumn{
		{Title: "PID", Width: 8},
		{Title: "NAME", Width: 24},
		{Title: "WHERE", Width: 8},
		{Title: "SWAP " + unit.Label(), Width: 12},
		{Title: "GPU " + unit.Label(), Width: 12},
		{Title: "NODE", Width: 5},
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		gpuMem := "-"
		if r.GPUMemoryKB != nil {
			gpuMem = unit.Format(*r.GPUMemoryKB)
		}
		node := "-"
		if r.Node != nil {
			node = "N" + strconv.Itoa(*r.Node)
		}
		rows = append(rows, []string{
			strconv.Itoa(r.PID), r.Name, r.Placement.String(),
			unit.Format(r.SwapKB), gpuMem, node,
		})
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "no processes with swap or GPU footprint")
		return nil
	}
	fmt.Fprintln(w, ui.RenderSimpleTable(columns, rows))
	return nil
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "emit machine-readable JSON")
}
