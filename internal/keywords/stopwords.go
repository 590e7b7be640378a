package keywords

import "strings"

// StopWords is a set of lower-cased function words excluded from extraction.
type StopWords map[string]struct{}

// NewStopWords builds a set from words, lower-casing and trimming each entry.
func NewStopWords(words ...string) StopWords {
	set := make(StopWords, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}

// Contains reports whether word is a stop-word.
func (s StopWords) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// DefaultStopWords covers common English and Korean function words.
var DefaultStopWords = NewStopWords(
	"the", "be", "to", "of", "and", "a", "in", "that", "have",
	"i", "it", "for", "not", "on", "with", "he", "as", "you",
	"do", "at", "this", "but", "his", "by", "from", "is", "was",
	"은", "는", "이", "가", "을", "를", "의", "에", "에서", "으로",
	"와", "과", "도", "만", "하고", "하는", "하다", "있다", "되다",
)
