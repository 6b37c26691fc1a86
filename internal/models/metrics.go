package models

import "time"

// SystemMetricsSnapshot is a lightweight aggregate for the ops endpoint.
type SystemMetricsSnapshot struct {
	SchedulingRunsTotal      uint64    `json:"schedulingRunsTotal"`
	SchedulingRunsFailed     uint64    `json:"schedulingRunsFailed"`
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
