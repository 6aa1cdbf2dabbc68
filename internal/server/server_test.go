package server

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/textsummary/internal/errortypes"
	"github.com/localrivet/textsummary/internal/tools"
)

func newTestToolServer(t *testing.T) *SummaryToolServer {
	t.Helper()
	return NewSummaryToolServer(newTestService(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSummaryToolServer_Initialize(t *testing.T) {
	tests := []struct {
		name    string
		server  *SummaryToolServer
		wantErr bool
	}{
		{"with service", newTestToolServer(t), false},
		{"missing service", NewSummaryToolServer(nil, nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.server.Initialize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Initialize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errortypes.IsConfigError(err) || !errors.Is(err, ErrMissingDependencies) {
					t.Errorf("Initialize() error = %v, want config error wrapping ErrMissingDependencies", err)
				}
				return
			}
			if tt.server.mcpServer == nil {
				t.Error("mcpServer was not created")
			}
		})
	}
}

func TestSummaryToolServer_RegisterOnHostServer(t *testing.T) {
	host := server.NewServer("host").
		Tool("echo", "Echo the input", func(ctx *server.Context, req tools.StatsRequest) (tools.StatsRequest, error) {
			return req, nil
		})

	host = newTestToolServer(t).Register(host)

	registered := host.GetServer().GetTools()
	for _, name := range []string{"echo", tools.ToolSummarize, tools.ToolStats} {
		if _, ok := registered[name]; !ok {
			t.Errorf("tool %q not registered on host server", name)
		}
	}
}

func TestSummaryToolServer_StartBeforeInitialize(t *testing.T) {
	s := newTestToolServer(t)
	if err := s.Start(); !errors.Is(err, ErrServerNotInitialized) {
		t.Errorf("Start() error = %v, want ErrServerNotInitialized", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestSummaryToolServer_HandleSummarize(t *testing.T) {
	tests := []struct {
		name       string
		req        tools.SummarizeRequest
		wantStatus string
		wantError  string
	}{
		{
			name:       "success",
			req:        tools.SummarizeRequest{Text: sampleText, Method: "extractive"},
			wantStatus: tools.StatusSuccess,
		},
		{
			name:       "short text reported in band",
			req:        tools.SummarizeRequest{Text: "Too short."},
			wantStatus: tools.StatusError,
			wantError:  "text too short",
		},
		{
			name:       "bad method reported in band",
			req:        tools.SummarizeRequest{Text: sampleText, Method: "summary"},
			wantStatus: tools.StatusError,
			wantError:  "invalid method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestToolServer(t)
			resp, err := s.handleSummarize(nil, tt.req)
			if err != nil {
				t.Fatalf("handleSummarize() returned transport error %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", resp.Status, tt.wantStatus)
			}
			if !strings.Contains(resp.Error, tt.wantError) {
				t.Errorf("Error = %q, want it to contain %q", resp.Error, tt.wantError)
			}
			if resp.RequestID == "" {
				t.Error("response has no request id")
			}
		})
	}
}

func TestSummaryToolServer_HandleStats(t *testing.T) {
	s := newTestToolServer(t)
	if _, err := s.handleSummarize(nil, tools.SummarizeRequest{Text: sampleText}); err != nil {
		t.Fatalf("handleSummarize() error = %v", err)
	}

	resp, err := s.handleStats(nil, tools.StatsRequest{})
	if err != nil {
		t.Fatalf("handleStats() error = %v", err)
	}
	if resp.Status != tools.StatusSuccess {
		t.Errorf("Status = %q, want success", resp.Status)
	}
	for _, want := range []string{"Summarizer Status: healthy", "summarizer.requests.total: 1", "summarizer.method.both: 1"} {
		if !strings.Contains(resp.Report, want) {
			t.Errorf("report missing %q:\n%s", want, resp.Report)
		}
	}
}
