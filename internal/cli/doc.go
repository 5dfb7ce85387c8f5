// Package cli implements the memtop command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to the telemetry and dashboard packages for the actual work.
//
// # Command Structure
//
// The root command launches the dashboard; subcommands cover one-shot use:
//
//	memtop              - Interactive dashboard
//	memtop snapshot     - One correlation pass as a table or JSON
//	memtop init         - Create .memtop.yaml config
//	memtop version      - Build information
//
// # Flag Handling
//
// The --config flag is defined on the root command and available to all
// subcommands. Display flags (--interval, --unit, --sort) are defined on
// the root command and override the config file when set.
package cli
