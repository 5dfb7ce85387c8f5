package config

import (
	"time"

	"github.com/rileyhilliard/memtop/internal/cache"
	"github.com/rileyhilliard/memtop/internal/correlate"
	"github.com/rileyhilliard/memtop/internal/ui"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .memtop.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval is the dashboard tick cadence.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Unit is the display unit: kb, mb, or gb.
	Unit string `yaml:"unit" mapstructure:"unit"`

	// Sort is the initial sort column: swap, gpu-mem, name, or node.
	Sort string `yaml:"sort" mapstructure:"sort"`

	// TopN is how many of the largest swap consumers get their page
	// distribution fetched per refresh.
	TopN int `yaml:"top_n" mapstructure:"top_n"`

	// History is the number of samples kept for sparklines.
	History int `yaml:"history" mapstructure:"history"`

	// Budgets override the per-class staleness budgets.
	Budgets BudgetsConfig `yaml:"budgets" mapstructure:"budgets"`
}

// BudgetsConfig holds the staleness budget per telemetry class. Swap has
// no entry: it refreshes on every tick.
type BudgetsConfig struct {
	Topology      time.Duration `yaml:"topology" mapstructure:"topology"`
	Distributions time.Duration `yaml:"distributions" mapstructure:"distributions"`
	Devices       time.Duration `yaml:"devices" mapstructure:"devices"`
	GPUProcesses  time.Duration `yaml:"gpu_processes" mapstructure:"gpu_processes"`
}

// DefaultConfig returns the configuration memtop runs with when no config
// file exists.
func DefaultConfig() *Config {
	defaults := cache.DefaultBudgets()
	return &Config{
		Version:  CurrentConfigVersion,
		Interval: time.Second,
		Unit:     "kb",
		Sort:     "swap",
		TopN:     20,
		History:  60,
		Budgets: BudgetsConfig{
			Topology:      defaults[cache.ClassTopology],
			Distributions: defaults[cache.ClassDistributions],
			Devices:       defaults[cache.ClassDevices],
			GPUProcesses:  defaults[cache.ClassGPUProcesses],
		},
	}
}

// ToBudgets converts the config budgets to the scheduler's form.
func (c *Config) ToBudgets() cache.Budgets {
	return cache.Budgets{
		cache.ClassSwap:          0,
		cache.ClassTopology:      c.Budgets.Topology,
		cache.ClassDistributions: c.Budgets.Distributions,
		cache.ClassDevices:       c.Budgets.Devices,
		cache.ClassGPUProcesses:  c.Budgets.GPUProcesses,
	}
}

// SortKey maps the configured sort name to a ranking key.
func (c *Config) SortKey() correlate.SortKey {
	switch c.Sort {
	case "gpu-mem", "gpu":
		return correlate.SortGPUMem
	case "name":
		return correlate.SortName
	case "node":
		return correlate.SortNode
	default:
		return correlate.SortSwap
	}
}

// DisplayUnit maps the configured unit name to a display unit.
func (c *Config) DisplayUnit() ui.Unit {
	return ui.ParseUnit(c.Unit)
}
