package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/stride/internal/simulate"
)

const (
	defaultPlayers          = 100
	defaultMarkers          = 10000
	defaultTopN             = 50
	defaultWorkerMultiplier = 2
	defaultTimeout          = 30 * time.Second
	defaultRunTimeout       = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		players = flag.Int("players", defaultPlayers, "Number of simulated players")
		markers = flag.Int("markers", defaultMarkers, "Total markers to submit")
		topN    = flag.Int("top", defaultTopN, "Number of leaderboard entries to fetch")
		workers = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent submitters")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:    *baseURL,
		NumPlayers: *players,
		NumMarkers: *markers,
		TopN:       *topN,
		Workers:    *workers,
		Timeout:    *timeout,
		Verbose:    *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
