package skills

import (
	"regexp"
	"sort"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// DefaultFuzzyCutoff is the minimum token-sort-ratio score (0-100) for a
// fuzzy token match to count as a vocabulary hit.
const DefaultFuzzyCutoff = 75

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// tokenRe matches contiguous runs of letters plus the punctuation that
	// occurs inside skill names (c++, c#, node.js, scikit-learn).
	tokenRe = regexp.MustCompile(`[a-zA-Z+#.\-]+`)
)

// Extractor finds vocabulary skills in free text using an exact substring
// pass and a fuzzy token pass.
type Extractor struct {
	vocabulary Vocabulary
	cutoff     int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFuzzyCutoff overrides the fuzzy match acceptance threshold.
func WithFuzzyCutoff(cutoff int) Option {
	return func(e *Extractor) {
		e.cutoff = cutoff
	}
}

// NewExtractor creates an Extractor over the given vocabulary.
func NewExtractor(vocabulary Vocabulary, opts ...Option) *Extractor {
	e := &Extractor{
		vocabulary: vocabulary,
		cutoff:     DefaultFuzzyCutoff,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalize collapses whitespace runs to single spaces and lowercases the text.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.ToLower(text), " "))
}

// Extract returns the unique vocabulary skills found in text, sorted
// lexicographically. Empty text yields an empty result.
func (e *Extractor) Extract(text string) []string {
	normalized := Normalize(text)

	found := make(map[string]bool)

	// Exact pass: a skill counts as found when it appears verbatim as a
	// substring of the normalized text.
	for _, skill := range e.vocabulary {
		if strings.Contains(normalized, skill) {
			found[skill] = true
		}
	}

	// Fuzzy pass: match each unique token against the vocabulary with a
	// token-order-insensitive scorer. The scorer handles tokens shorter than
	// any vocabulary entry, so no length special-casing is needed.
	for _, token := range uniqueTokens(normalized) {
		if match, score := e.bestMatch(token); score >= e.cutoff {
			found[match] = true
		}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// bestMatch returns the single best vocabulary entry for a token and its
// token-sort-ratio score.
func (e *Extractor) bestMatch(token string) (string, int) {
	best := ""
	bestScore := -1
	for _, skill := range e.vocabulary {
		// Full processing is disabled: punctuation is significant in the
		// vocabulary (c++, c#, node.js) and must not be stripped before scoring.
		if score := fuzzy.TokenSortRatio(token, skill, true, false); score > bestScore {
			best = skill
			bestScore = score
		}
	}
	return best, bestScore
}

// uniqueTokens tokenizes normalized text and deduplicates the tokens,
// preserving first-seen order.
func uniqueTokens(normalized string) []string {
	seen := make(map[string]bool)
	tokens := make([]string, 0)
	for _, token := range tokenRe.FindAllString(normalized, -1) {
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}
