package pitch

import (
	"strings"
	"unicode"
)

// MaxKeyTerms caps the number of terms ExtractKeyTerms returns.
const MaxKeyTerms = 5

var stopwords = map[string]struct{}{
	"that": {}, "with": {}, "this": {}, "they": {}, "them": {}, "have": {},
	"will": {}, "from": {}, "into": {}, "your": {}, "their": {}, "more": {},
	"than": {}, "been": {}, "were": {}, "said": {}, "each": {}, "which": {},
	"what": {}, "where": {}, "when": {}, "would": {}, "could": {}, "should": {},
	"about": {}, "also": {}, "just": {}, "like": {}, "very": {}, "some": {},
	"we're": {}, "it's": {}, "there": {}, "these": {}, "those": {}, "while": {},
}

// ExtractKeyTerms returns up to MaxKeyTerms lowercase words longer than three
// characters, skipping stopwords and duplicates, in order of first occurrence.
func ExtractKeyTerms(text string) []string {
	terms := make([]string, 0, MaxKeyTerms)
	seen := make(map[string]struct{}, MaxKeyTerms)

	for _, field := range strings.Fields(strings.ToLower(text)) {
		word := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(word)) <= 3 {
			continue
		}
		if _, skip := stopwords[word]; skip {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		terms = append(terms, word)
		if len(terms) == MaxKeyTerms {
			break
		}
	}

	return terms
}

// termAt returns the i-th key term or fallback when absent.
func termAt(terms []string, i int, fallback string) string {
	if i < len(terms) && terms[i] != "" {
		return terms[i]
	}
	return fallback
}

// titleWord upper-cases the first letter and drops characters that cannot
// appear in a brand name.
func titleWord(word string) string {
	var b strings.Builder
	first := true
	for _, r := range word {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		if first {
			r = unicode.ToUpper(r)
			first = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
