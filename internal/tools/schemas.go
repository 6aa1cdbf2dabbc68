// Package tools defines the request and response schemas shared by the MCP
// tools and the HTTP API of the textsummary service.
package tools

const (
	// ToolSummarize is the name of the summarize MCP tool
	ToolSummarize = "summarize"

	// ToolStats is the name of the summarizer_stats MCP tool
	ToolStats = "summarizer_stats"

	// StatusSuccess and StatusError are the values of a response's Status field
	StatusSuccess = "success"
	StatusError   = "error"
)

// SummarizeRequest defines the input schema for the summarize tool
type SummarizeRequest struct {
	// Text is the document to summarize
	Text string `json:"text"`

	// Method selects the strategy ("extractive", "abstractive" or "both").
	// Empty means the configured default.
	Method string `json:"method,omitempty"`

	// CompressionRatio overrides the configured extractive ratio when
	// non-zero. It must lie in (0, 1].
	CompressionRatio float64 `json:"compression_ratio,omitempty"`
}

// SummarizeResponse defines the output schema for the summarize tool
type SummarizeResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// RequestID identifies the request in logs
	RequestID string `json:"request_id"`

	// Method is the strategy that was applied
	Method string `json:"method,omitempty"`

	// ExtractiveSummary is empty unless the extractive strategy ran
	ExtractiveSummary string `json:"extractive_summary"`

	// AbstractiveSummary is empty unless the abstractive strategy ran
	AbstractiveSummary string `json:"abstractive_summary"`

	// ProcessingTime is the engine's wall time in seconds
	ProcessingTime float64 `json:"processing_time"`

	// ExtractiveReduction is the size reduction of the extractive summary in percent
	ExtractiveReduction int `json:"extractive_reduction"`

	// AbstractiveReduction is the size reduction of the abstractive summary in percent
	AbstractiveReduction int `json:"abstractive_reduction"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// StatsRequest defines the input schema for the summarizer_stats tool.
// The tool takes no arguments.
type StatsRequest struct{}

// StatsResponse defines the output schema for the summarizer_stats tool
type StatsResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Report is the plain text metrics report
	Report string `json:"report"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}
