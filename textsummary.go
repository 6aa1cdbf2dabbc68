// Package textsummary produces extractive and abstractive summaries of
// plain-text documents and serves them over MCP or HTTP.
package textsummary

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/localrivet/textsummary/internal/config"
	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/server"
	"github.com/localrivet/textsummary/internal/summarizer"
	"github.com/localrivet/textsummary/internal/telemetry"
	"github.com/localrivet/textsummary/internal/tools"
)

// Config represents the configuration for the TextSummary service.
type Config = config.Config

// Method selects which summaries are produced.
type Method = summarizer.Method

// Summarization methods
const (
	MethodExtractive  = summarizer.MethodExtractive
	MethodAbstractive = summarizer.MethodAbstractive
	MethodBoth        = summarizer.MethodBoth
)

// Result holds the summaries of one Summarize call.
type Result = summarizer.Result

// SummarizeRequest and SummarizeResponse are the request and response
// bodies of the summarize tool and the HTTP API.
type (
	SummarizeRequest  = tools.SummarizeRequest
	SummarizeResponse = tools.SummarizeResponse
)

// StatsReport describes request counts, latency and health.
type StatsReport = server.StatsReport

// Summarize summarizes text with the default engine settings. It never
// fails; unwanted summaries are left empty.
func Summarize(text string, method Method) Result {
	return summarizer.Summarize(text, method)
}

// ParseMethod converts a method name to a Method.
func ParseMethod(name string) (Method, error) {
	return summarizer.ParseMethod(name)
}

// Server represents the TextSummary service.
type Server struct {
	config     *config.Config
	service    *server.SummaryService
	toolServer server.ToolServer
	logger     *slog.Logger
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Transport  string       // Overrides the configured transport when set ("stdio" or "http").
	HTTPAddr   string       // Overrides the configured HTTP address when set.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new TextSummary Server with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, DefaultConfig() will be used.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	switch {
	case opts.Config != nil:
		cfg = opts.Config
		logger.Info("Using provided Config object for server initialization")
	case opts.ConfigPath != "":
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
	default:
		logger.Warn("No Config object or ConfigPath provided, using default configuration")
		cfg = DefaultConfig()
	}

	if opts.Transport != "" {
		cfg.Server.Transport = strings.ToLower(opts.Transport)
	}
	if opts.HTTPAddr != "" {
		cfg.Server.HTTPAddr = opts.HTTPAddr
	}
	if err := cfg.Validate(); err != nil {
		errortypes.LogError(logger, err)
		return nil, err
	}

	service, err := CreateComponents(cfg, logger)
	if err != nil {
		return nil, err
	}

	var toolServer server.ToolServer
	switch strings.ToLower(cfg.Server.Transport) {
	case config.TransportHTTP:
		toolServer = server.NewHTTPServer(service, cfg.Server.HTTPAddr, cfg.ShutdownTimeout(), logger)
	default:
		toolServer = server.NewSummaryToolServer(service, logger)
	}

	if err := toolServer.Initialize(); err != nil {
		errortypes.LogError(logger, err)
		return nil, err
	}

	logger.Info("TextSummary server successfully initialized", "transport", cfg.Server.Transport)
	return &Server{
		config:     cfg,
		service:    service,
		toolServer: toolServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the TextSummary service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// SaveConfig returns the JSON content of the configuration and, when path is
// not empty, writes it to path.
func SaveConfig(cfg *Config, path string) ([]byte, error) {
	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, errortypes.ConfigError(err, "failed to marshal configuration")
	}

	if path != "" {
		if err := cfg.SaveToFile(path); err != nil {
			return nil, err
		}
	}

	return content, nil
}

// CreateComponents builds the summary service described by cfg without
// creating a transport. This is useful for embedding the summarizer in
// another server.
func CreateComponents(cfg *Config, logger *slog.Logger) (*server.SummaryService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	method, err := summarizer.ParseMethod(cfg.Summarizer.DefaultMethod)
	if err != nil {
		return nil, errortypes.ConfigError(err, "invalid default summarization method")
	}

	engine := summarizer.NewEngine(cfg.EngineOptions())
	logger.Info("Summarization engine initialized",
		"compression_ratio", engine.CompressionRatio(),
		"default_method", method)

	return server.NewSummaryService(server.ServiceOptions{
		Engine:         engine,
		Metrics:        telemetry.NewMetricsCollector(),
		Logger:         logger,
		DefaultMethod:  method,
		MinInputLength: cfg.Summarizer.MinInputLength,
	}), nil
}

// Start starts the TextSummary service and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("Starting TextSummary service", "transport", s.config.Server.Transport)
	return s.toolServer.Start()
}

// Stop stops the TextSummary service.
func (s *Server) Stop() error {
	s.logger.Info("Stopping TextSummary service")
	if err := s.toolServer.Stop(); err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}
	s.logger.Info("TextSummary service stopped")
	return nil
}

// Summarize handles a request the same way the summarize tool does.
func (s *Server) Summarize(ctx context.Context, req SummarizeRequest) (SummarizeResponse, error) {
	return s.service.Summarize(ctx, req)
}

// Stats returns the current statistics report.
func (s *Server) Stats() (*StatsReport, error) {
	return s.service.Stats()
}

// Config returns the configuration the server was built with.
func (s *Server) Config() *Config {
	return s.config
}
