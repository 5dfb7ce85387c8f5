package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/memtop/internal/errors"
)

// validSorts are the accepted sort column names.
var validSorts = map[string]bool{
	"swap":    true,
	"gpu-mem": true,
	"gpu":     true,
	"name":    true,
	"node":    true,
}

// validUnits are the accepted display unit names.
var validUnits = map[string]bool{
	"kb": true,
	"mb": true,
	"gb": true,
}

// Validate checks the config for errors and returns structured error messages.
func (c *Config) Validate() error {
	if c.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but memtop only knows up to %d)", c.Version, CurrentConfigVersion),
			"Update memtop or regenerate the config with 'memtop init'")
	}

	if c.Interval < 100*time.Millisecond {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval %s is too fast", c.Interval),
			"Use an interval of at least 100ms")
	}

	if !validUnits[c.Unit] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown display unit %q", c.Unit),
			"Use one of: kb, mb, gb")
	}

	if !validSorts[c.Sort] {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown sort column %q", c.Sort),
			"Use one of: swap, gpu-mem, name, node")
	}

	if c.TopN <= 0 {
		return errors.New(errors.ErrConfig,
			"top_n must be positive",
			"Use a value like 20")
	}

	if c.History <= 0 {
		return errors.New(errors.ErrConfig,
			"history must be positive",
			"Use a value like 60")
	}

	for name, d := range map[string]time.Duration{
		"topology":      c.Budgets.Topology,
		"distributions": c.Budgets.Distributions,
		"devices":       c.Budgets.Devices,
		"gpu_processes": c.Budgets.GPUProcesses,
	} {
		if d < 0 {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Budget %s cannot be negative", name),
				"Use a duration like 10s, or 0 to refresh every tick")
		}
	}

	return nil
}
