package simulate

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/stride/pkg/logger"
)

// Run executes a complete simulation: health check, marker generation,
// concurrent submission, then leaderboard retrieval and verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting stride simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.NumPlayers),
		logger.Int("markers", config.NumMarkers),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	markers, err := generateMarkers(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("marker generation failed: %w", err)
	}

	if err := submitMarkers(ctx, config, markers, stats); err != nil {
		return fmt.Errorf("marker submission failed: %w", err)
	}

	leaderboard, err := fetchLeaderboard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	if err := verifyLeaderboard(ctx, leaderboard, stats); err != nil {
		return fmt.Errorf("leaderboard verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// verifyLeaderboard checks the retrieved board is internally consistent:
// ranks sequential from 1, scores non-increasing, players unique.
func verifyLeaderboard(ctx context.Context, entries []entryPayload, stats *Stats) error {
	seen := make(map[string]struct{}, len(entries))
	var total uint64
	for i, e := range entries {
		if e.Rank != i+1 {
			return fmt.Errorf("entry %d has rank %d, want %d", i, e.Rank, i+1)
		}
		if i > 0 && e.Score > entries[i-1].Score {
			return fmt.Errorf("entry %d score %d exceeds predecessor %d", i, e.Score, entries[i-1].Score)
		}
		if _, dup := seen[e.Player]; dup {
			return fmt.Errorf("player %s appears twice on the board", e.Player)
		}
		seen[e.Player] = struct{}{}
		total += e.Score
	}

	// Every accepted marker scores exactly one point, so the board can
	// never hold more points than were accepted. A lower total just means
	// some players fell off the capped board.
	if total > uint64(stats.MarkersAccepted) {
		return fmt.Errorf("board total %d exceeds accepted markers %d", total, stats.MarkersAccepted)
	}

	logger.Get().Info(ctx, "leaderboard verified",
		logger.Int("entries", len(entries)),
		logger.Uint64("scoreTotal", total))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, markersPerSecond float64
	if stats.MarkersSubmitted > 0 {
		acceptRate = float64(stats.MarkersAccepted) / float64(stats.MarkersSubmitted) * 100
	}
	if stats.Duration > 0 {
		markersPerSecond = float64(stats.MarkersSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("markersGenerated", stats.MarkersGenerated),
		logger.Int("markersSubmitted", stats.MarkersSubmitted),
		logger.Int("markersAccepted", stats.MarkersAccepted),
		logger.Int("markersCooldown", stats.MarkersCooldown),
		logger.Int("markersDuplicate", stats.MarkersDuplicate),
		logger.Int("markersRejected", stats.MarkersRejected),
		logger.Int("markersFailed", stats.MarkersFailed),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("markersPerSecond", markersPerSecond))
}
