package summarizer

// StopWordVariant selects the stop word rules of a FrequencyModel.
type StopWordVariant int

const (
	// ExtractiveStopWords is the base stop word set with no token length
	// filter. Sentence scoring uses it.
	ExtractiveStopWords StopWordVariant = iota

	// AbstractiveStopWords extends the base set with personal pronouns and
	// drops tokens of two characters or fewer. Keyword extraction uses it.
	AbstractiveStopWords
)

// String returns the variant name.
func (v StopWordVariant) String() string {
	switch v {
	case ExtractiveStopWords:
		return "extractive"
	case AbstractiveStopWords:
		return "abstractive"
	default:
		return "unknown"
	}
}

var baseStopWords = []string{
	"a", "an", "the", "and", "or", "but", "is", "are", "was", "were",
	"be", "have", "has", "had", "do", "does", "did", "in", "on", "at",
	"to", "for", "with", "by", "about", "as", "of", "this", "that",
}

var pronounStopWords = []string{
	"it", "its", "they", "them", "their", "we", "our", "you", "your",
}

// stopWordRules returns the stop word set and minimum token length for a
// variant. Every call builds a fresh set.
func stopWordRules(v StopWordVariant) (map[string]struct{}, int) {
	words := make(map[string]struct{}, len(baseStopWords)+len(pronounStopWords))
	for _, w := range baseStopWords {
		words[w] = struct{}{}
	}

	if v != AbstractiveStopWords {
		return words, 0
	}

	for _, w := range pronounStopWords {
		words[w] = struct{}{}
	}
	return words, 3
}
