package models

import "time"

// SystemMetrics is a lightweight aggregate snapshot for the
// /metrics/summary endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	UpstreamCalls            uint64    `json:"upstream_calls"`
	UpstreamErrors           uint64    `json:"upstream_errors"`
	AverageUpstreamMs        float64   `json:"average_upstream_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	StatusReportsDerived     uint64    `json:"status_reports_derived"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
