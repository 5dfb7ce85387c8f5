package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/memtop/internal/config"
	"github.com/rileyhilliard/memtop/internal/errors"
)

var initForce bool

// initCmd creates a new .memtop.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .memtop.yaml configuration",
	Long: `Write a .memtop.yaml file in the current directory with the default
refresh interval, display unit, sort column, and staleness budgets.

Examples:
  memtop init
  memtop init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce)
	},
}

func initCommand(force bool) error {
	cwd, err := os.Getwd()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	path := filepath.Join(cwd, config.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			config.ConfigFileName+" already exists",
			"Use --force to overwrite it")
	}

	if err := config.Write(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	return nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(versionCmd)
}
