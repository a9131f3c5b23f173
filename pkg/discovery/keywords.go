package discovery

import (
	"regexp"
	"sort"
	"strings"
)

// keywordLimit bounds the keyword set taken per file.
const keywordLimit = 50

var nonWordChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// significantKeywords extracts the top keywords of a file by frequency.
// Tokens of length <= 4 and purely numeric tokens are discarded; the rest
// are lowercased and counted, and the 50 most frequent are kept. Frequency
// ties break on the token itself so the set is deterministic.
func significantKeywords(content string) map[string]struct{} {
	counts := make(map[string]int)
	for _, tok := range strings.Fields(nonWordChars.ReplaceAllString(content, " ")) {
		if len(tok) <= 4 || isNumeric(tok) {
			continue
		}
		counts[strings.ToLower(tok)]++
	}

	tokens := make([]string, 0, len(counts))
	for tok := range counts {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > keywordLimit {
		tokens = tokens[:keywordLimit]
	}

	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// sharedKeywordCount returns the size of the intersection of two keyword sets.
func sharedKeywordCount(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			n++
		}
	}
	return n
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
