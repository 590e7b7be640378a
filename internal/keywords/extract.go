// Package keywords tokenizes titles into candidate keywords and classifies
// keywords into display categories.
package keywords

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MinTokenRunes is the shortest token kept by the extractor.
const MinTokenRunes = 3

var (
	noisePattern = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s]+`)
	spacePattern = regexp.MustCompile(`\s+`)
	lower        = cases.Lower(language.Und)
)

// Extractor turns free text into normalized keyword tokens.
type Extractor struct {
	stopWords StopWords
}

// NewExtractor returns an extractor using stopWords. A nil set falls back to
// DefaultStopWords.
func NewExtractor(stopWords StopWords) *Extractor {
	if stopWords == nil {
		stopWords = DefaultStopWords
	}
	return &Extractor{stopWords: stopWords}
}

// Extract returns the surviving tokens of text in order of appearance.
// Duplicates are kept; callers aggregate by value.
func (e *Extractor) Extract(text string) []string {
	cleaned := Normalize(text)
	if cleaned == "" {
		return nil
	}

	var out []string
	for _, word := range strings.Split(cleaned, " ") {
		if utf8.RuneCountInString(word) < MinTokenRunes {
			continue
		}
		if e.stopWords.Contains(word) || isNumeric(word) {
			continue
		}
		out = append(out, word)
	}
	return out
}

// Normalize lower-cases text, replaces punctuation with spaces and collapses
// whitespace.
func Normalize(text string) string {
	s := norm.NFKC.String(text)
	s = lower.String(s)
	s = noisePattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeTag lower-cases and trims a tag without tokenizing it.
func NormalizeTag(tag string) string {
	return strings.TrimSpace(lower.String(tag))
}

func isNumeric(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return word != ""
}
