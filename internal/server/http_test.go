package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/localrivet/textsummary/internal/summarizer"
	"github.com/localrivet/textsummary/internal/tools"
)

func newTestHTTPServer(t *testing.T) (*HTTPServer, *SummaryService) {
	t.Helper()
	svc := newTestService(t)
	s := NewHTTPServer(svc, "127.0.0.1:0", 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := s.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	return s, svc
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHTTPServer_Summarize(t *testing.T) {
	s, _ := newTestHTTPServer(t)

	body, _ := json.Marshal(tools.SummarizeRequest{Text: sampleText, Method: "extractive"})
	rec := doRequest(t, s.Handler(), http.MethodPost, "/api/summarize", string(body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp tools.SummarizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if resp.ExtractiveSummary != "Cats chase mice every single day. Cats purr softly." {
		t.Errorf("ExtractiveSummary = %q", resp.ExtractiveSummary)
	}
	if resp.ExtractiveReduction != 62 || resp.AbstractiveSummary != "" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestHTTPServer_SummarizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		engineFail bool
		wantStatus int
		wantCode   string
	}{
		{"malformed json", `{"text":`, false, http.StatusBadRequest, StatusCodeValidationError},
		{"text too short", `{"text":"short"}`, false, http.StatusBadRequest, StatusCodeValidationError},
		{"bad ratio", `{"text":"` + sampleText + `","compression_ratio":3}`, false, http.StatusBadRequest, StatusCodeValidationError},
		{"engine failure", `{"text":"` + sampleText + `"}`, true, http.StatusInternalServerError, StatusCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, svc := newTestHTTPServer(t)
			if tt.engineFail {
				svc.summarize = func(*summarizer.Engine, string, summarizer.Method) summarizer.Result {
					panic("engine exploded")
				}
			}

			rec := doRequest(t, s.Handler(), http.MethodPost, "/api/summarize", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Failed to parse error response: %v", err)
			}
			if resp.Status != "error" || resp.Code != tt.wantCode {
				t.Errorf("error response = %+v, want code %s", resp, tt.wantCode)
			}
			if tt.engineFail {
				if resp.Message != ErrSummaryUnavailable.Error() {
					t.Errorf("Message = %q, want %q", resp.Message, ErrSummaryUnavailable)
				}
				if strings.Contains(rec.Body.String(), "exploded") {
					t.Error("internal failure cause leaked to the client")
				}
			}
		})
	}
}

func TestHTTPServer_StatsAndHealth(t *testing.T) {
	s, _ := newTestHTTPServer(t)

	body, _ := json.Marshal(tools.SummarizeRequest{Text: sampleText})
	doRequest(t, s.Handler(), http.MethodPost, "/api/summarize", string(body))

	rec := doRequest(t, s.Handler(), http.MethodGet, "/api/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var report StatsReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to parse stats: %v", err)
	}
	if report.Status != StatusHealthy || report.Requests.Total != 1 || report.Requests.Both != 1 {
		t.Errorf("unexpected report %+v", report)
	}

	rec = doRequest(t, s.Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("healthz = %d %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, s.Handler(), http.MethodGet, "/missing", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), StatusCodeNotFound) {
		t.Errorf("missing route = %d %s", rec.Code, rec.Body.String())
	}
}

func TestHTTPServer_Lifecycle(t *testing.T) {
	s := NewHTTPServer(nil, ":0", 0, nil)
	if err := s.Initialize(); !errors.Is(err, ErrMissingDependencies) {
		t.Errorf("Initialize() error = %v, want ErrMissingDependencies", err)
	}
	if err := s.Start(); !errors.Is(err, ErrServerNotInitialized) {
		t.Errorf("Start() error = %v, want ErrServerNotInitialized", err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("Stop() on an uninitialized server = %v", err)
	}
	if s.shutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("shutdownTimeout = %v, want %v", s.shutdownTimeout, DefaultShutdownTimeout)
	}
}
