package search

import "strings"

// stopWords holds common low-information English terms that are excluded from
// tokenized queries so they cannot contribute to relevance or trigger spurious
// matches in short queries.
var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		// articles
		"a", "an", "the",
		// conjunctions
		"and", "or", "but", "nor", "for", "so", "yet",
		// prepositions
		"at", "by", "from", "in", "of", "on", "to", "with",
		// pronouns
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		// auxiliary verbs
		"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
		"do", "does", "did", "will", "would", "could", "should", "may", "might",
		"must", "can", "shall",
		// question words
		"what", "which", "who", "whom", "whose", "when", "where", "why", "how",
		// quantifiers and fillers
		"all", "any", "both", "each", "few", "more", "most", "other", "some",
		"such", "no", "not", "only", "own", "same", "than", "too",
		"very", "just", "now",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the token is a stop word. Case-insensitive.
func IsStopWord(token string) bool {
	_, ok := stopWords[strings.ToLower(strings.TrimSpace(token))]
	return ok
}
