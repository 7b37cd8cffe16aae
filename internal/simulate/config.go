package simulate

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL    string        // Base URL of the service
	NumPlayers int           // Number of simulated players
	NumMarkers int           // Total markers to submit
	TopN       int           // Number of leaderboard entries to fetch
	Workers    int           // Number of concurrent submitters
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Enable verbose logging
}

// markerPayload mirrors the POST /markers request schema.
type markerPayload struct {
	Player    string `json:"player"`
	Lat       int64  `json:"lat"`
	Lng       int64  `json:"lng"`
	State     string `json:"state"`
	City      string `json:"city"`
	Landmark  string `json:"landmark"`
	Activity  string `json:"activity"`
	SpeedKmh  int64  `json:"speed_kmh"`
	Cadence   int64  `json:"cadence"`
	Timestamp int64  `json:"timestamp"`
}

// receiptPayload mirrors the accepted-submission response.
type receiptPayload struct {
	MarkerID   uint64 `json:"marker_id"`
	DistanceM  uint64 `json:"distance_m"`
	GlobalRank int    `json:"global_rank"`
	CityRank   int    `json:"city_rank"`
	RewardDue  uint64 `json:"reward_due"`
}

// rejectionPayload mirrors the error response.
type rejectionPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// entryPayload mirrors a leaderboard entry.
type entryPayload struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Score  uint64 `json:"score"`
}

// Stats holds simulation statistics.
type Stats struct {
	MarkersGenerated   int
	MarkersSubmitted   int
	MarkersAccepted    int
	MarkersCooldown    int
	MarkersDuplicate   int
	MarkersRejected    int
	MarkersFailed      int
	LeaderboardEntries int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
