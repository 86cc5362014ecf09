package models

import "time"

// Announcement is one school announcement as fetched from the record source.
// Records are treated as an immutable snapshot; the API never mutates them.
type Announcement struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Sender    string    `json:"sender"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchQuery carries the search text plus optional filters.
type SearchQuery struct {
	Text         string `json:"text"`
	SenderFilter string `json:"sender_filter,omitempty"`
	DateFilter   string `json:"date_filter,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

// ScoredResult pairs an announcement with its relevance score. Result lists
// are ordered by score descending, then CreatedAt descending.
type ScoredResult struct {
	Announcement Announcement `json:"announcement"`
	Score        int          `json:"score"`
	MatchedTerms []string     `json:"matched_terms"`
}
