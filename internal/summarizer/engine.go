package summarizer

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Method selects which summaries the Engine produces.
type Method string

const (
	MethodExtractive  Method = "extractive"
	MethodAbstractive Method = "abstractive"
	MethodBoth        Method = "both"
)

// ParseMethod converts a method name to a Method. Matching ignores case and
// surrounding whitespace.
func ParseMethod(name string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(name))); m {
	case MethodExtractive, MethodAbstractive, MethodBoth:
		return m, nil
	default:
		return "", fmt.Errorf("unknown summarization method %q (want extractive, abstractive or both)", name)
	}
}

func (m Method) wantsExtractive() bool {
	return m == MethodExtractive || m == MethodBoth
}

func (m Method) wantsAbstractive() bool {
	return m == MethodAbstractive || m == MethodBoth
}

// Result holds the summaries of one Summarize call. Summaries that were not
// requested are empty.
type Result struct {
	ExtractiveSummary  string  `json:"extractive_summary"`
	AbstractiveSummary string  `json:"abstractive_summary"`
	ProcessingTime     float64 `json:"processing_time"` // seconds
}

// Options configures an Engine. Zero values select the package defaults.
type Options struct {
	CompressionRatio float64
	KeywordCount     int
	MaxKeySentences  int
}

// Engine dispatches a document to the requested strategies. It keeps no
// state between calls and is safe for concurrent use.
type Engine struct {
	extractive  *ExtractiveSummarizer
	abstractive *AbstractiveSummarizer
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{
		extractive:  NewExtractiveSummarizer(opts.CompressionRatio),
		abstractive: NewAbstractiveSummarizer(opts.KeywordCount, opts.MaxKeySentences),
	}
}

// CompressionRatio returns the ratio used by the extractive strategy.
func (e *Engine) CompressionRatio() float64 {
	return e.extractive.Ratio()
}

// WithCompressionRatio returns an Engine identical to e except for the
// extractive compression ratio.
func (e *Engine) WithCompressionRatio(ratio float64) *Engine {
	return &Engine{
		extractive:  NewExtractiveSummarizer(ratio),
		abstractive: e.abstractive,
	}
}

// Summarize runs the strategies selected by method and reports how long
// they took. An unrecognized method runs nothing.
func (e *Engine) Summarize(text string, method Method) Result {
	var result Result

	start := time.Now()
	if method.wantsExtractive() {
		result.ExtractiveSummary = e.extractive.Extract(text)
	}
	if method.wantsAbstractive() {
		result.AbstractiveSummary = e.abstractive.Compose(text)
	}
	result.ProcessingTime = time.Since(start).Seconds()

	return result
}

var defaultEngine = NewEngine(Options{})

// Summarize summarizes text with the default engine settings.
func Summarize(text string, method Method) Result {
	return defaultEngine.Summarize(text, method)
}

// ReductionPercent reports how much shorter summary is than original, as a
// rounded percentage of the original length in characters. It returns 0
// when either string is empty.
func ReductionPercent(original, summary string) int {
	if original == "" || summary == "" {
		return 0
	}
	origLen := float64(utf8.RuneCountInString(original))
	sumLen := float64(utf8.RuneCountInString(summary))
	// Halves round up, also for negative values.
	return int(math.Floor((origLen-sumLen)/origLen*100 + 0.5))
}
