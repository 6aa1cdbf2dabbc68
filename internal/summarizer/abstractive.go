package summarizer

import (
	"regexp"
	"strings"
)

// paragraphBreak matches a blank line, including blank lines holding only
// whitespace.
var paragraphBreak = regexp.MustCompile(`\n[\s\v\p{Z}\x{FEFF}]*\n`)

// AbstractiveSummarizer builds a restructured summary from the opening
// sentence, a few keyword sentences and the closing sentence of a document.
type AbstractiveSummarizer struct {
	keywordCount    int
	maxKeySentences int
}

// NewAbstractiveSummarizer creates an AbstractiveSummarizer. Non-positive
// arguments fall back to DefaultKeywordCount and DefaultMaxKeySentences.
func NewAbstractiveSummarizer(keywordCount, maxKeySentences int) *AbstractiveSummarizer {
	if keywordCount <= 0 {
		keywordCount = DefaultKeywordCount
	}
	if maxKeySentences <= 0 {
		maxKeySentences = DefaultMaxKeySentences
	}
	return &AbstractiveSummarizer{
		keywordCount:    keywordCount,
		maxKeySentences: maxKeySentences,
	}
}

// Initialize sets up the summarizer with any required configuration.
func (s *AbstractiveSummarizer) Initialize() error {
	return nil
}

// Summarize returns the abstractive summary of text. It never fails.
func (s *AbstractiveSummarizer) Summarize(text string) (string, error) {
	return s.Compose(text), nil
}

// Keywords returns the most frequent non stop words of text.
func (s *AbstractiveSummarizer) Keywords(text string) []string {
	return NewFrequencyModel(AbstractiveStopWords).Build(text).Top(s.keywordCount)
}

// Compose assembles intro, keyword sentences and conclusion. The
// conclusion is left out when it repeats the intro.
func (s *AbstractiveSummarizer) Compose(text string) string {
	keywords := s.Keywords(text)
	keySentences := keywordSentences(Segment(text), keywords)
	if len(keySentences) > s.maxKeySentences {
		keySentences = keySentences[:s.maxKeySentences]
	}

	intro, conclusion := introAndConclusion(text)

	parts := make([]string, 0, len(keySentences)+2)
	if intro != "" {
		parts = append(parts, intro)
	}
	parts = append(parts, sentenceTexts(keySentences)...)
	if conclusion != "" && conclusion != intro {
		parts = append(parts, conclusion)
	}

	return trimSpace(strings.Join(parts, " "))
}

// keywordSentences keeps the sentences whose lowercased text contains any
// keyword. Matching is plain substring containment, so "solar" also hits
// "solaris".
func keywordSentences(sentences []Sentence, keywords []string) []Sentence {
	if len(keywords) == 0 {
		return nil
	}

	var matched []Sentence
	for _, sent := range sentences {
		lower := strings.ToLower(sent.Text)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matched = append(matched, sent)
				break
			}
		}
	}
	return matched
}

// introAndConclusion returns the first piece of the first paragraph and the
// last piece of the last paragraph. Pieces are not length filtered.
func introAndConclusion(text string) (intro, conclusion string) {
	paragraphs := paragraphBreak.Split(text, -1)
	if len(paragraphs) == 0 {
		return "", ""
	}

	first := splitPieces(trimSpace(paragraphs[0]))
	intro = first[0]

	last := splitPieces(trimSpace(paragraphs[len(paragraphs)-1]))
	conclusion = last[len(last)-1]

	return intro, conclusion
}
