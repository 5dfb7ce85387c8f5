package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/memtop/internal/config"
	"github.com/rileyhilliard/memtop/internal/dashboard"
	"github.com/rileyhilliard/memtop/internal/errors"
	"github.com/rileyhilliard/memtop/internal/logger"
	"github.com/rileyhilliard/memtop/internal/telemetry"
)

// Global flags
var (
	configFlag   string
	intervalFlag string
	unitFlag     string
	sortFlag     string
)

// rootCmd runs the dashboard when invoked with no subcommand.
var rootCmd = &cobra.Command{
	Use:   "memtop",
	Short: "Swap, NUMA, and GPU memory dashboard",
	Long: `memtop is an interactive terminal dashboard correlating three views of
process memory: swapped-out pages, NUMA page placement, and GPU memory
residency.

Views:
  1 swap      Global swap usage and the processes swapping
  2 numa      Topology nodes and per-process page placement
  3 gpu       GPU devices and their resident processes
  4 unified   All three sources joined per process

Keyboard shortcuts:
  q / Ctrl+C   Quit
  Tab / 1-4    Switch view
  s            Cycle sort column (swap/gpu-mem/name/node)
  k / m / g    Display units
  left/right   Adjust refresh interval
  r            Force refresh
  ?            Show help

Examples:
  memtop
  memtop --interval 2s --unit mb
  memtop snapshot --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runDashboard(cfg)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path (default: .memtop.yaml)")
	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "refresh interval (e.g., 1s, 500ms)")
	rootCmd.Flags().StringVar(&unitFlag, "unit", "", "display unit: kb, mb, or gb")
	rootCmd.Flags().StringVar(&sortFlag, "sort", "", "sort column: swap, gpu-mem, name, or node")
}

// loadConfig resolves the effective config: file values overridden by any
// flags the user passed.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFlag == "" {
		if cfg, err = config.LoadOrDefault(); err != nil {
			return nil, err
		}
	} else {
		path, err := config.Find(configFlag)
		if err != nil {
			return nil, err
		}
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if intervalFlag != "" {
		parsed, err := time.ParseDuration(intervalFlag)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", intervalFlag),
				"Use a valid duration like 1s, 500ms, or 2s")
		}
		cfg.Interval = parsed
	}
	if unitFlag != "" {
		cfg.Unit = unitFlag
	}
	if sortFlag != "" {
		cfg.Sort = sortFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runDashboard starts the TUI over the live host.
func runDashboard(cfg *config.Config) error {
	log := logger.NewEnvLogger("memtop")
	src := telemetry.NewSystemSource(log)

	model := dashboard.NewModel(src, dashboard.Options{
		Interval: cfg.Interval,
		Unit:     cfg.DisplayUnit(),
		SortKey:  cfg.SortKey(),
		Budgets:  cfg.ToBudgets(),
		TopN:     cfg.TopN,
		History:  cfg.History,
		Logger:   log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
