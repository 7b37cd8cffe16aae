package simulate

import (
	"os"

	"github.com/okian/stride/pkg/logger"
)

// SetupLogging initializes the global logger for a simulation run.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return err
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Stride Marker Simulator
=======================

A concurrent tool for exercising a running stride instance with synthetic
player traffic.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -players int
        Number of simulated players (default 100)
  -markers int
        Total markers to submit (default 10000)
  -top int
        Number of leaderboard entries to fetch (default 50)
  -workers int
        Number of concurrent submitters (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with defaults
  go run cmd/simulate/main.go

  # Heavier run against a remote instance
  go run cmd/simulate/main.go -markers 50000 -workers 16 -url http://stride:8080
`)
}
