package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/localrivet/textsummary/internal/telemetry"
)

// Version is reported in statistics reports.
const Version = "1.0.0"

// HealthStatus represents the health status of the service
type HealthStatus string

const (
	// StatusHealthy indicates no request has failed
	StatusHealthy HealthStatus = "healthy"

	// StatusDegraded indicates some requests failed while others succeeded
	StatusDegraded HealthStatus = "degraded"

	// StatusUnhealthy indicates requests failed and none succeeded
	StatusUnhealthy HealthStatus = "unhealthy"
)

// RequestCounts breaks down the requests seen by the service.
type RequestCounts struct {
	Total       int64 `json:"total"`
	Extractive  int64 `json:"extractive"`
	Abstractive int64 `json:"abstractive"`
	Both        int64 `json:"both"`
	Succeeded   int64 `json:"succeeded"`
	Failed      int64 `json:"failed"`
	Rejected    int64 `json:"rejected"`
}

// LatencySummary holds engine processing times in milliseconds.
type LatencySummary struct {
	Avg float64 `json:"avg"`
	P95 float64 `json:"p95"`
}

// StatsReport contains information about the current state of the service
type StatsReport struct {
	Status                HealthStatus   `json:"status"`
	Timestamp             time.Time      `json:"timestamp"`
	Requests              RequestCounts  `json:"requests"`
	ProcessingMS          LatencySummary `json:"processing_ms"`
	SuccessRate           float64        `json:"success_rate"`
	LastRequestAgoSeconds float64        `json:"last_request_ago_seconds"`
	Version               string         `json:"version"`
}

// CreateStatsReport generates a statistics report from the collected metrics.
// Rejected requests are client errors and do not affect the status or the
// success rate.
func CreateStatsReport(m *telemetry.MetricsCollector) (*StatsReport, error) {
	if m == nil {
		return nil, errors.New("metrics collector is nil")
	}

	counts := RequestCounts{
		Total:       m.GetCounter(telemetry.MetricRequestsTotal),
		Extractive:  m.GetCounter(telemetry.MetricMethodExtractive),
		Abstractive: m.GetCounter(telemetry.MetricMethodAbstractive),
		Both:        m.GetCounter(telemetry.MetricMethodBoth),
		Succeeded:   m.GetCounter(telemetry.MetricRequestsSuccess),
		Failed:      m.GetCounter(telemetry.MetricRequestsFailed),
		Rejected:    m.GetCounter(telemetry.MetricRequestsRejected),
	}

	status := StatusHealthy
	if counts.Failed > 0 {
		status = StatusDegraded
		if counts.Succeeded == 0 {
			status = StatusUnhealthy
		}
	}

	var successRate float64
	if processed := counts.Succeeded + counts.Failed; processed > 0 {
		successRate = float64(counts.Succeeded) / float64(processed) * 100.0
	}

	latency := LatencySummary{
		Avg: toMillis(m.GetTimerAverage(telemetry.MetricProcessingTime)),
		P95: toMillis(m.GetTimerP95(telemetry.MetricProcessingTime)),
	}

	return &StatsReport{
		Status:                status,
		Timestamp:             time.Now(),
		Requests:              counts,
		ProcessingMS:          latency,
		SuccessRate:           successRate,
		LastRequestAgoSeconds: m.GetTimeSince(telemetry.MetricLastRequest).Seconds(),
		Version:               Version,
	}, nil
}

// FormatStatsReport renders a report as human readable text.
func FormatStatsReport(r *StatsReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarizer Status: %s (version %s)\n", r.Status, r.Version)
	fmt.Fprintf(&b, "Requests: total=%d succeeded=%d failed=%d rejected=%d\n",
		r.Requests.Total, r.Requests.Succeeded, r.Requests.Failed, r.Requests.Rejected)
	fmt.Fprintf(&b, "Methods: extractive=%d abstractive=%d both=%d\n",
		r.Requests.Extractive, r.Requests.Abstractive, r.Requests.Both)
	fmt.Fprintf(&b, "Processing: avg=%.3fms p95=%.3fms\n", r.ProcessingMS.Avg, r.ProcessingMS.P95)
	fmt.Fprintf(&b, "Success rate: %.1f%%\n", r.SuccessRate)
	return b.String()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
