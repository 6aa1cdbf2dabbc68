package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/summarizer"
	"github.com/localrivet/textsummary/internal/telemetry"
	"github.com/localrivet/textsummary/internal/tools"
)

// ErrSummaryUnavailable is reported to callers when the engine fails.
var ErrSummaryUnavailable = errors.New("summary unavailable")

// ServiceOptions configures a SummaryService. Nil dependencies and an empty
// DefaultMethod select defaults. MinInputLength is used as given, so zero
// accepts text of any length; config.DefaultMinInputLength is the usual value.
type ServiceOptions struct {
	Engine         *summarizer.Engine
	Metrics        *telemetry.MetricsCollector
	Logger         *slog.Logger
	DefaultMethod  summarizer.Method
	MinInputLength int
}

// SummaryService validates summarize requests, runs the engine and records
// metrics. It is shared by the MCP tools and the HTTP API.
type SummaryService struct {
	engine         *summarizer.Engine
	metrics        *telemetry.MetricsCollector
	logger         *slog.Logger
	defaultMethod  summarizer.Method
	minInputLength int

	// summarize runs the engine; replaced in tests
	summarize func(engine *summarizer.Engine, text string, method summarizer.Method) summarizer.Result
	// newRequestID generates request identifiers; replaced in tests
	newRequestID func() string
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(opts ServiceOptions) *SummaryService {
	if opts.Engine == nil {
		opts.Engine = summarizer.NewEngine(summarizer.Options{})
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewMetricsCollector()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.DefaultMethod == "" {
		opts.DefaultMethod = summarizer.MethodBoth
	}
	if opts.MinInputLength < 0 {
		opts.MinInputLength = 0
	}

	return &SummaryService{
		engine:         opts.Engine,
		metrics:        opts.Metrics,
		logger:         opts.Logger,
		defaultMethod:  opts.DefaultMethod,
		minInputLength: opts.MinInputLength,
		summarize:      (*summarizer.Engine).Summarize,
		newRequestID:   uuid.NewString,
	}
}

// Metrics returns the collector the service records into.
func (s *SummaryService) Metrics() *telemetry.MetricsCollector {
	return s.metrics
}

// Summarize handles one request. The returned response is always filled in
// with a request ID and a status; the error, when non-nil, is an
// errortypes.AppError describing why Status is "error".
func (s *SummaryService) Summarize(ctx context.Context, req tools.SummarizeRequest) (tools.SummarizeResponse, error) {
	requestID := s.newRequestID()
	log := s.logger.With("request_id", requestID)

	resp := tools.SummarizeResponse{
		Status:    tools.StatusSuccess,
		RequestID: requestID,
	}

	s.metrics.IncrementCounter(telemetry.MetricRequestsTotal, 1)
	s.metrics.RecordTimestamp(telemetry.MetricLastRequest)

	if err := ctx.Err(); err != nil {
		return s.reject(log, resp, errortypes.ValidationError(err, "request cancelled"))
	}

	method, engine, err := s.prepare(req)
	if err != nil {
		return s.reject(log, resp, err)
	}
	resp.Method = string(method)
	s.countMethod(method)

	log.Info("Processing summarize request",
		"method", method,
		"text_length", utf8.RuneCountInString(req.Text),
		"compression_ratio", engine.CompressionRatio())

	result, err := s.run(engine, req.Text, method)
	if err != nil {
		errortypes.LogError(log, err)
		s.metrics.IncrementCounter(telemetry.MetricRequestsFailed, 1)
		s.metrics.RecordTimestamp(telemetry.MetricLastFailure)
		resp.Status = tools.StatusError
		resp.Error = ErrSummaryUnavailable.Error()
		return resp, err
	}

	resp.ExtractiveSummary = result.ExtractiveSummary
	resp.AbstractiveSummary = result.AbstractiveSummary
	resp.ProcessingTime = result.ProcessingTime
	if result.ExtractiveSummary != "" {
		resp.ExtractiveReduction = summarizer.ReductionPercent(req.Text, result.ExtractiveSummary)
		s.metrics.SetGauge(telemetry.MetricReductionExtractive, float64(resp.ExtractiveReduction))
	}
	if result.AbstractiveSummary != "" {
		resp.AbstractiveReduction = summarizer.ReductionPercent(req.Text, result.AbstractiveSummary)
		s.metrics.SetGauge(telemetry.MetricReductionAbstractive, float64(resp.AbstractiveReduction))
	}

	s.metrics.IncrementCounter(telemetry.MetricRequestsSuccess, 1)
	s.metrics.RecordTimer(telemetry.MetricProcessingTime,
		time.Duration(result.ProcessingTime*float64(time.Second)))

	log.Info("Summarize request completed",
		"processing_time_seconds", result.ProcessingTime,
		"extractive_reduction", resp.ExtractiveReduction,
		"abstractive_reduction", resp.AbstractiveReduction)

	return resp, nil
}

// Stats builds the statistics report from the collected metrics.
func (s *SummaryService) Stats() (*StatsReport, error) {
	return CreateStatsReport(s.metrics)
}

// prepare resolves the method and the engine to use for req.
func (s *SummaryService) prepare(req tools.SummarizeRequest) (summarizer.Method, *summarizer.Engine, error) {
	length := utf8.RuneCountInString(strings.TrimSpace(req.Text))
	if length < s.minInputLength {
		return "", nil, errortypes.ValidationError(
			fmt.Errorf("text has %d characters, need at least %d", length, s.minInputLength),
			"text too short to summarize",
		).WithFields(map[string]interface{}{
			"text_length": length,
			"min_length":  s.minInputLength,
		})
	}

	method := s.defaultMethod
	if strings.TrimSpace(req.Method) != "" {
		parsed, err := summarizer.ParseMethod(req.Method)
		if err != nil {
			return "", nil, errortypes.ValidationError(err, "invalid method").
				WithField("method", req.Method)
		}
		method = parsed
	}

	engine := s.engine
	if ratio := req.CompressionRatio; ratio != 0 {
		if math.IsNaN(ratio) || ratio < 0 || ratio > 1 {
			return "", nil, errortypes.ValidationError(
				fmt.Errorf("compression ratio %v is outside (0, 1]", ratio),
				"invalid compression ratio",
			).WithField("compression_ratio", ratio)
		}
		engine = engine.WithCompressionRatio(ratio)
	}

	return method, engine, nil
}

// run invokes the engine and converts a panic into an internal error.
func (s *SummaryService) run(engine *summarizer.Engine, text string, method summarizer.Method) (result summarizer.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errortypes.InternalError(fmt.Errorf("engine panic: %v", r), ErrSummaryUnavailable.Error()).
				WithField("method", string(method))
		}
	}()

	return s.summarize(engine, text, method), nil
}

func (s *SummaryService) reject(log *slog.Logger, resp tools.SummarizeResponse, err error) (tools.SummarizeResponse, error) {
	log.Warn("Summarize request rejected", "error", err.Error())
	s.metrics.IncrementCounter(telemetry.MetricRequestsRejected, 1)

	resp.Status = tools.StatusError
	resp.Error = err.Error()
	return resp, err
}

func (s *SummaryService) countMethod(method summarizer.Method) {
	switch method {
	case summarizer.MethodExtractive:
		s.metrics.IncrementCounter(telemetry.MetricMethodExtractive, 1)
	case summarizer.MethodAbstractive:
		s.metrics.IncrementCounter(telemetry.MetricMethodAbstractive, 1)
	case summarizer.MethodBoth:
		s.metrics.IncrementCounter(telemetry.MetricMethodBoth, 1)
	}
}
