package summarizer

import (
	"regexp"
	"sort"
	"strings"
)

// wordPattern matches maximal runs of word characters. Only ASCII letters,
// digits and '_' count, so accented letters split words.
var wordPattern = regexp.MustCompile(`[A-Za-z0-9_]+`)

// Tokenize returns the lowercased word tokens of text in order. Stop words
// are kept.
func Tokenize(text string) []string {
	tokens := wordPattern.FindAllString(text, -1)
	for i, tok := range tokens {
		tokens[i] = asciiLower(tok)
	}
	return tokens
}

// FrequencyModel counts the non stop word tokens of a document.
type FrequencyModel struct {
	variant        StopWordVariant
	stopWords      map[string]struct{}
	minTokenLength int
}

// NewFrequencyModel creates a FrequencyModel using the stop word rules of
// the given variant.
func NewFrequencyModel(variant StopWordVariant) *FrequencyModel {
	stopWords, minLen := stopWordRules(variant)
	return &FrequencyModel{
		variant:        variant,
		stopWords:      stopWords,
		minTokenLength: minLen,
	}
}

// Variant returns the stop word variant of the model.
func (m *FrequencyModel) Variant() StopWordVariant {
	return m.variant
}

// Counts reports whether a token takes part in frequency counting.
func (m *FrequencyModel) Counts(token string) bool {
	if _, stop := m.stopWords[token]; stop {
		return false
	}
	return len(token) >= m.minTokenLength
}

// Build returns the term frequency table of text.
func (m *FrequencyModel) Build(text string) FrequencyTable {
	table := FrequencyTable{counts: make(map[string]int)}
	for _, tok := range Tokenize(text) {
		if !m.Counts(tok) {
			continue
		}
		if _, seen := table.counts[tok]; !seen {
			table.order = append(table.order, tok)
		}
		table.counts[tok]++
	}
	return table
}

// FrequencyTable maps normalized words to their occurrence count in one
// document. It remembers the order in which words first appeared.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// Count returns the occurrences of word, or 0 when it was not counted.
func (t FrequencyTable) Count(word string) int {
	return t.counts[word]
}

// Len returns the number of distinct words in the table.
func (t FrequencyTable) Len() int {
	return len(t.order)
}

// Terms returns the distinct words in first occurrence order.
func (t FrequencyTable) Terms() []string {
	return append([]string(nil), t.order...)
}

// Top returns up to n words by descending count. Words with equal counts
// keep first occurrence order.
func (t FrequencyTable) Top(n int) []string {
	if n <= 0 {
		return nil
	}

	terms := t.Terms()
	sort.SliceStable(terms, func(i, j int) bool {
		return t.counts[terms[i]] > t.counts[terms[j]]
	})

	if n < len(terms) {
		terms = terms[:n]
	}
	return terms
}

// asciiLower folds ASCII letters only so results never depend on locale.
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}
