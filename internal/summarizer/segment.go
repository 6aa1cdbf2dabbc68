package summarizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentence is a trimmed piece of a document together with its position in
// the segmented sequence.
type Sentence struct {
	Text  string
	Index int
}

// sentenceBoundary matches terminal punctuation, optional whitespace and the
// uppercase letter that opens the next sentence.
var sentenceBoundary = regexp.MustCompile(`[.?!][\s\v\p{Z}\x{FEFF}]*[A-Z]`)

// Segment splits text into sentences. A boundary follows every '.', '?' or
// '!' that is followed by an uppercase ASCII letter, optionally after
// whitespace. Pieces no longer than MinSentenceLength are dropped.
//
// This is a heuristic: abbreviations ("Dr. Smith"), decimals and quoted
// speech are not special-cased.
func Segment(text string) []Sentence {
	pieces := splitPieces(text)
	sentences := make([]Sentence, 0, len(pieces))
	for _, piece := range pieces {
		if utf8.RuneCountInString(piece) <= MinSentenceLength {
			continue
		}
		sentences = append(sentences, Sentence{
			Text:  piece,
			Index: len(sentences),
		})
	}
	return sentences
}

// splitPieces cuts text at every sentence boundary and trims the pieces.
// Unlike Segment it keeps short and empty pieces, so it always returns at
// least one element.
func splitPieces(text string) []string {
	matches := sentenceBoundary.FindAllStringIndex(text, -1)
	pieces := make([]string, 0, len(matches)+1)

	start := 0
	for _, m := range matches {
		// m[0] is the punctuation mark, m[1]-1 the uppercase letter.
		pieces = append(pieces, trimSpace(text[start:m[0]+1]))
		start = m[1] - 1
	}
	pieces = append(pieces, trimSpace(text[start:]))

	return pieces
}

// sentenceTexts returns the text of each sentence.
func sentenceTexts(sentences []Sentence) []string {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}
	return texts
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
