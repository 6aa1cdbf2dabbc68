package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/tools"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// MCPName is the name the MCP server announces to clients.
const MCPName = "textsummary"

// SummaryToolServer implements the ToolServer interface for handling MCP
// tool calls that summarize text.
type SummaryToolServer struct {
	service   *SummaryService
	logger    *slog.Logger
	mcpServer server.Server
}

// NewSummaryToolServer creates a new SummaryToolServer instance.
func NewSummaryToolServer(service *SummaryService, logger *slog.Logger) *SummaryToolServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryToolServer{
		service: service,
		logger:  logger.With("component", "mcp"),
	}
}

// Initialize creates the MCP server and registers the tools.
func (s *SummaryToolServer) Initialize() error {
	s.logger.Info("Initializing MCP summary tool server")

	if s.service == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	srv := server.NewServer(MCPName)
	s.Register(srv)

	s.mcpServer = srv
	s.logger.Info("MCP summary tool server initialized", "tool_count", 2)
	return nil
}

// Register adds the summarization tools to an existing MCP server, so the
// tools can be embedded next to other tools.
func (s *SummaryToolServer) Register(srv server.Server) server.Server {
	srv = srv.Tool(tools.ToolSummarize,
		"Summarize text with extractive and/or abstractive heuristics",
		s.handleSummarize)

	srv = srv.Tool(tools.ToolStats,
		"Report request counts, processing times and health of the summarizer",
		s.handleStats)

	return srv
}

// Start serves the tools over stdio until stdin closes.
func (s *SummaryToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	s.logger.Info("Starting MCP summary tool server on stdio")
	return s.mcpServer.AsStdio().Run()
}

// Stop gracefully shuts down the MCP server.
func (s *SummaryToolServer) Stop() error {
	s.logger.Info("Stopping MCP summary tool server")
	// The server exits when stdin is closed
	return nil
}

// handleSummarize handles the summarize MCP tool call. Failures are reported
// in the response status, never as transport errors.
func (s *SummaryToolServer) handleSummarize(ctx *server.Context, req tools.SummarizeRequest) (tools.SummarizeResponse, error) {
	resp, _ := s.service.Summarize(context.Background(), req)
	return resp, nil
}

// handleStats handles the summarizer_stats MCP tool call.
func (s *SummaryToolServer) handleStats(ctx *server.Context, req tools.StatsRequest) (tools.StatsResponse, error) {
	response := tools.StatsResponse{
		Status: tools.StatusSuccess,
	}

	report, err := s.service.Stats()
	if err != nil {
		err = errortypes.InternalError(err, "failed to build statistics report")
		errortypes.LogError(s.logger, err)

		response.Status = tools.StatusError
		response.Error = err.Error()
		return response, nil
	}

	response.Report = FormatStatsReport(report) + "\n" + s.service.Metrics().GetReport()
	return response, nil
}
