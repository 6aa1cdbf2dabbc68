package summarizer

import (
	"math"
	"sort"
	"strings"
)

// ratioTolerance absorbs binary floating point error in sentenceCount*ratio
// so that 10*0.3 selects 3 sentences rather than 4.
const ratioTolerance = 1e-9

// ExtractiveSummarizer selects the highest scoring sentences of a document
// and returns them in reading order.
type ExtractiveSummarizer struct {
	ratio float64
}

// NewExtractiveSummarizer creates an ExtractiveSummarizer keeping the given
// fraction of sentences. A non-positive ratio falls back to
// DefaultCompressionRatio; ratios above 1 keep every sentence.
func NewExtractiveSummarizer(ratio float64) *ExtractiveSummarizer {
	return &ExtractiveSummarizer{
		ratio: normalizeRatio(ratio),
	}
}

// Initialize sets up the summarizer with any required configuration.
func (s *ExtractiveSummarizer) Initialize() error {
	return nil // Nothing to prepare, all state is per call
}

// Summarize returns the extractive summary of text. It never fails.
func (s *ExtractiveSummarizer) Summarize(text string) (string, error) {
	return s.Extract(text), nil
}

// Ratio returns the compression ratio in use.
func (s *ExtractiveSummarizer) Ratio() float64 {
	return s.ratio
}

// scoredSentence is a sentence with its mean term frequency.
type scoredSentence struct {
	Sentence
	score float64
}

// Extract returns the top scoring sentences of text joined by single
// spaces. Documents with three sentences or fewer are returned unchanged.
func (s *ExtractiveSummarizer) Extract(text string) string {
	sentences := Segment(text)
	if len(sentences) <= shortDocumentSentences {
		return text
	}

	table := NewFrequencyModel(ExtractiveStopWords).Build(text)
	scored := scoreSentences(sentences, table)

	// Stable, so equal scores stay in reading order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	selected := scored[:SelectionSize(len(sentences), s.ratio)]
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Index < selected[j].Index
	})

	texts := make([]string, len(selected))
	for i, sel := range selected {
		texts[i] = sel.Text
	}
	return strings.Join(texts, " ")
}

// scoreSentences scores every sentence by the mean table count of its
// words. Stop words count as zero but still add to the word count.
func scoreSentences(sentences []Sentence, table FrequencyTable) []scoredSentence {
	scored := make([]scoredSentence, len(sentences))
	for i, sent := range sentences {
		words := Tokenize(sent.Text)
		total := 0
		for _, w := range words {
			total += table.Count(w)
		}
		scored[i] = scoredSentence{
			Sentence: sent,
			score:    float64(total) / float64(max(len(words), 1)),
		}
	}
	return scored
}

// SelectionSize returns how many of sentenceCount sentences an extractive
// summary keeps at the given ratio: ceil(sentenceCount*ratio), at least 1
// and at most sentenceCount.
func SelectionSize(sentenceCount int, ratio float64) int {
	if sentenceCount <= 0 {
		return 0
	}
	n := int(math.Ceil(float64(sentenceCount)*normalizeRatio(ratio) - ratioTolerance))
	return min(max(n, 1), sentenceCount)
}

func normalizeRatio(ratio float64) float64 {
	if math.IsNaN(ratio) || ratio <= 0 {
		return DefaultCompressionRatio
	}
	return min(ratio, 1)
}
