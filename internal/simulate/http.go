package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/stride/pkg/logger"
)

// httpClient wraps http.Client with a shared request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

func (c *httpClient) post(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// checkServiceHealth verifies the service is reachable before the run starts.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submission outcomes tracked by the submit pool.
type outcome int

const (
	outcomeAccepted outcome = iota
	outcomeCooldown
	outcomeDuplicate
	outcomeRejected
	outcomeFailed
)

// submitMarkers pushes the generated markers through a worker pool.
// Per-player submission order is preserved by sharding markers onto workers
// by player, so cooldown and dedup outcomes stay deterministic.
func submitMarkers(ctx context.Context, config *Config, markers []markerPayload, stats *Stats) error {
	logger.Get().Info(ctx, "submitting markers",
		logger.Int("markers", len(markers)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/markers"

	var (
		submitted int64
		accepted  int64
		cooldown  int64
		duplicate int64
		rejected  int64
		failed    int64
	)

	workers := max(config.Workers, 1)
	shards := make([]chan markerPayload, workers)
	for i := range shards {
		shards[i] = make(chan markerPayload, workers*2)
	}

	var wg sync.WaitGroup
	for _, shard := range shards {
		wg.Add(1)
		go func(in <-chan markerPayload) {
			defer wg.Done()
			for m := range in {
				if ctx.Err() != nil {
					continue // drain the shard so the feeder never blocks
				}
				atomic.AddInt64(&submitted, 1)
				switch submitSingleMarker(ctx, client, url, m) {
				case outcomeAccepted:
					atomic.AddInt64(&accepted, 1)
				case outcomeCooldown:
					atomic.AddInt64(&cooldown, 1)
				case outcomeDuplicate:
					atomic.AddInt64(&duplicate, 1)
				case outcomeRejected:
					atomic.AddInt64(&rejected, 1)
				case outcomeFailed:
					atomic.AddInt64(&failed, 1)
				}
			}
		}(shard)
	}

	// Feed markers to shards keyed by player so one player's markers never
	// race each other.
	go func() {
		for i := range shards {
			defer close(shards[i])
		}
		for _, m := range markers {
			if ctx.Err() != nil {
				return
			}
			shards[shardFor(m.Player, workers)] <- m
		}
	}()

	wg.Wait()

	stats.MarkersSubmitted = int(atomic.LoadInt64(&submitted))
	stats.MarkersAccepted = int(atomic.LoadInt64(&accepted))
	stats.MarkersCooldown = int(atomic.LoadInt64(&cooldown))
	stats.MarkersDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.MarkersRejected = int(atomic.LoadInt64(&rejected))
	stats.MarkersFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "marker submission completed",
		logger.Int("accepted", stats.MarkersAccepted),
		logger.Int("cooldown", stats.MarkersCooldown),
		logger.Int("duplicate", stats.MarkersDuplicate),
		logger.Int("rejected", stats.MarkersRejected),
		logger.Int("failed", stats.MarkersFailed))
	return nil
}

// shardFor hashes a player id onto a worker index with FNV-1a.
func shardFor(player string, workers int) int {
	const (
		offset = 14695981039346656037
		prime  = 1099511628211
	)
	var h uint64 = offset
	for i := 0; i < len(player); i++ {
		h ^= uint64(player[i])
		h *= prime
	}
	return int(h % uint64(workers))
}

// submitSingleMarker posts one marker and classifies the response.
func submitSingleMarker(ctx context.Context, client *httpClient, url string, m markerPayload) outcome {
	resp, err := client.post(ctx, url, m)
	if err != nil {
		return outcomeFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeFailed
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		return outcomeAccepted
	case http.StatusConflict:
		var rej rejectionPayload
		if err := json.Unmarshal(body, &rej); err == nil && rej.Code == "cooldown_active" {
			return outcomeCooldown
		}
		return outcomeDuplicate
	case http.StatusUnprocessableEntity:
		return outcomeRejected
	default:
		return outcomeFailed
	}
}

// fetchLeaderboard retrieves the top entries from the global board.
func fetchLeaderboard(ctx context.Context, config *Config, stats *Stats) ([]entryPayload, error) {
	url := fmt.Sprintf("%s/leaderboard?limit=%d", config.BaseURL, config.TopN)

	client := newHTTPClient(config.Timeout)
	resp, err := client.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard request failed with status: %d", resp.StatusCode)
	}

	var entries []entryPayload
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}

	stats.LeaderboardEntries = len(entries)
	return entries, nil
}
