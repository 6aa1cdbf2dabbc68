package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/tools"
)

// Default HTTP settings
const (
	DefaultShutdownTimeout = 5 * time.Second
	maxRequestBody         = "2M"
)

// HTTPServer implements the ToolServer interface for the JSON HTTP API.
type HTTPServer struct {
	service         *SummaryService
	addr            string
	shutdownTimeout time.Duration
	logger          *slog.Logger
	echo            *echo.Echo
}

// NewHTTPServer creates a new HTTPServer listening on addr.
func NewHTTPServer(service *SummaryService, addr string, shutdownTimeout time.Duration, logger *slog.Logger) *HTTPServer {
	if logger == nil {
		logger = slog.Default()
	}
	if shutdownTimeout <= 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &HTTPServer{
		service:         service,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With("component", "http"),
	}
}

// Initialize builds the echo instance and registers the routes.
func (s *HTTPServer) Initialize() error {
	if s.service == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newHTTPErrorHandler(s.logger)
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxRequestBody))

	e.GET("/healthz", s.handleHealth)
	s.Register(e.Group("/api"))

	s.echo = e
	s.logger.Info("HTTP API initialized", "addr", s.addr)
	return nil
}

// Register adds the API routes to a route group.
func (s *HTTPServer) Register(g *echo.Group) {
	g.POST("/summarize", s.handleSummarize)
	g.GET("/stats", s.handleStats)
}

// Handler returns the HTTP handler, for tests and for mounting the API in
// another server. Initialize must be called first.
func (s *HTTPServer) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured address until Stop is called.
func (s *HTTPServer) Start() error {
	if s.echo == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	s.logger.Info("Starting HTTP API", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errortypes.NetworkError(err, "http server failed").WithField("addr", s.addr)
	}
	return nil
}

// Stop gracefully shuts down the HTTP API.
func (s *HTTPServer) Stop() error {
	if s.echo == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP API")
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

func (s *HTTPServer) handleSummarize(c echo.Context) error {
	var req tools.SummarizeRequest
	if err := c.Bind(&req); err != nil {
		return NewErrorWithStatus(err, http.StatusBadRequest, StatusCodeValidationError, "request body must be a JSON object")
	}

	resp, err := s.service.Summarize(c.Request().Context(), req)
	if err != nil {
		if errortypes.IsValidationError(err) {
			return NewErrorWithStatus(err, http.StatusBadRequest, StatusCodeValidationError, err.Error()).
				WithRequestID(resp.RequestID)
		}
		return NewErrorWithStatus(err, http.StatusInternalServerError, StatusCodeInternalError, resp.Error).
			WithRequestID(resp.RequestID)
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) handleStats(c echo.Context) error {
	report, err := s.service.Stats()
	if err != nil {
		return errortypes.InternalError(err, "failed to build statistics report")
	}
	return c.JSON(http.StatusOK, report)
}

func (s *HTTPServer) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
