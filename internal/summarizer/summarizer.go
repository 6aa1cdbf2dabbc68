// Package summarizer provides the extractive and abstractive summarization
// engine used by the textsummary service.
package summarizer

const (
	// DefaultCompressionRatio is the fraction of sentences kept by the
	// extractive strategy when the caller does not override it.
	DefaultCompressionRatio = 0.3

	// DefaultKeywordCount is the number of keywords the abstractive
	// strategy looks for.
	DefaultKeywordCount = 8

	// DefaultMaxKeySentences caps the keyword sentences placed between the
	// intro and the conclusion of an abstractive summary.
	DefaultMaxKeySentences = 3

	// MinSentenceLength is the shortest trimmed piece still treated as a
	// sentence. Pieces of this length or shorter are segmentation noise.
	MinSentenceLength = 10

	// shortDocumentSentences is the sentence count at or below which the
	// extractive strategy returns the input unchanged.
	shortDocumentSentences = 3
)

// Summarizer defines the interface for summarizing text content.
type Summarizer interface {
	// Summarize takes a text input and returns a condensed summary.
	Summarize(text string) (string, error)

	// Initialize sets up the summarizer with any required configuration.
	Initialize() error
}
