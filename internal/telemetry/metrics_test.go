package telemetry

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMetricsCollector_Counters(t *testing.T) {
	m := NewMetricsCollector()
	m.IncrementCounter(MetricRequestsTotal, 1)
	m.IncrementCounter(MetricRequestsTotal, 2)

	if got := m.GetCounter(MetricRequestsTotal); got != 3 {
		t.Errorf("GetCounter() = %d, want 3", got)
	}
	if got := m.GetCounter("missing"); got != 0 {
		t.Errorf("GetCounter(missing) = %d, want 0", got)
	}
}

func TestMetricsCollector_Timers(t *testing.T) {
	m := NewMetricsCollector()
	for i := 1; i <= 20; i++ {
		m.RecordTimer(MetricProcessingTime, time.Duration(i)*time.Millisecond)
	}

	if got := m.GetTimerAverage(MetricProcessingTime); got != 10500*time.Microsecond {
		t.Errorf("GetTimerAverage() = %v, want 10.5ms", got)
	}
	if got := m.GetTimerP95(MetricProcessingTime); got != 20*time.Millisecond {
		t.Errorf("GetTimerP95() = %v, want 20ms", got)
	}
	if got := m.GetTimerAverage("missing"); got != 0 {
		t.Errorf("GetTimerAverage(missing) = %v, want 0", got)
	}
}

func TestMetricsCollector_TimerSamplesBounded(t *testing.T) {
	m := NewMetricsCollector()
	for i := 0; i < maxTimerSamples+25; i++ {
		m.RecordTimer(MetricProcessingTime, time.Millisecond)
	}
	if got := m.GetTimerCount(MetricProcessingTime); got != maxTimerSamples {
		t.Errorf("GetTimerCount() = %d, want %d", got, maxTimerSamples)
	}
}

func TestMetricsCollector_Timestamps(t *testing.T) {
	m := NewMetricsCollector()
	if _, ok := m.GetTimestamp(MetricLastRequest); ok {
		t.Error("GetTimestamp() found a timestamp before recording")
	}
	if got := m.GetTimeSince(MetricLastRequest); got != 0 {
		t.Errorf("GetTimeSince() = %v, want 0", got)
	}

	m.RecordTimestamp(MetricLastRequest)
	if _, ok := m.GetTimestamp(MetricLastRequest); !ok {
		t.Error("GetTimestamp() missing after RecordTimestamp")
	}
}

func TestMetricsCollector_Report(t *testing.T) {
	m := NewMetricsCollector()
	m.IncrementCounter(MetricRequestsTotal, 4)
	m.IncrementCounter(MetricRequestsFailed, 1)
	m.SetGauge(MetricReductionExtractive, 62)
	m.RecordTimer(MetricProcessingTime, 2*time.Millisecond)
	m.RecordTimestamp(MetricLastRequest)

	report := m.GetReport()
	for _, want := range []string{
		"summarizer.requests.total: 4",
		"summarizer.reduction.extractive: 62.00",
		"summarizer.processing_time.total: avg=2ms",
		"summarizer.last_request:",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	failed := strings.Index(report, MetricRequestsFailed)
	total := strings.Index(report, MetricRequestsTotal)
	if failed > total {
		t.Error("counters are not listed in sorted order")
	}
}

func TestMetricsCollector_Reset(t *testing.T) {
	m := NewMetricsCollector()
	m.IncrementCounter(MetricRequestsTotal, 1)
	m.SetGauge(MetricReductionAbstractive, 10)
	m.Reset()

	if m.GetCounter(MetricRequestsTotal) != 0 || m.GetGauge(MetricReductionAbstractive) != 0 {
		t.Error("Reset() did not clear metrics")
	}
}

func TestMetricsCollector_Concurrent(t *testing.T) {
	m := NewMetricsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementCounter(MetricRequestsTotal, 1)
			m.RecordTimer(MetricProcessingTime, time.Microsecond)
			_ = m.GetReport()
		}()
	}
	wg.Wait()

	if got := m.GetCounter(MetricRequestsTotal); got != 50 {
		t.Errorf("GetCounter() = %d, want 50", got)
	}
}
