package analytics

import "time"

// Interaction is one answered chat turn.
type Interaction struct {
	Timestamp    time.Time
	UserID       string
	SessionID    string
	Query        string
	Response     string
	SearchMethod string
	ResultCount  int
	ResponseTime float64 // seconds
	UserRole     string
	UserCampus   string
}

// QueryFrequency is one entry in the top-queries list.
type QueryFrequency struct {
	Query     string `json:"query"`
	Frequency int    `json:"frequency"`
}

// Statistics aggregates usage over a period.
type Statistics struct {
	PeriodDays        int              `json:"period_days"`
	TotalInteractions int              `json:"total_interactions"`
	AvgResponseTime   float64          `json:"avg_response_time"`
	SearchMethods     map[string]int   `json:"search_methods"`
	UserRoles         map[string]int   `json:"user_roles"`
	Campuses          map[string]int   `json:"campuses"`
	TopQueries        []QueryFrequency `json:"top_queries"`
	ActiveSessions    int              `json:"active_sessions"`
	GeneratedAt       time.Time        `json:"generated_at"`
}

// Percentiles are response-time percentiles in seconds.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
}

// PerformanceMetrics aggregates latency over a period.
type PerformanceMetrics struct {
	PeriodDays              int         `json:"period_days"`
	ResponseTimePercentiles Percentiles `json:"response_time_percentiles"`
	GeneratedAt             time.Time   `json:"generated_at"`
}
