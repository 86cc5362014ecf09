package search

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/schoolconnect/schoolconnect-api/internal/dates"
	"github.com/schoolconnect/schoolconnect-api/internal/models"
	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

const (
	// DefaultLimit applies when a query does not specify one.
	DefaultLimit = 15
	// MaxLimit caps the result count regardless of the requested limit.
	MaxLimit = 50
)

// Weights configures the relevance scoring policy. A whole-word title match
// outranks a title substring, which outranks a whole-word body match, which
// outranks a body substring. Every weight must stay positive and the ordering
// must hold for ranking to behave as documented.
type Weights struct {
	TitleWord      int
	TitleSubstring int
	BodyWord       int
	BodySubstring  int
}

// DefaultWeights returns the standard scoring policy.
func DefaultWeights() Weights {
	return Weights{
		TitleWord:      10,
		TitleSubstring: 5,
		BodyWord:       3,
		BodySubstring:  1,
	}
}

// Engine ranks announcement snapshots against free-text queries. It holds no
// mutable state, so a single Engine is safe for concurrent use.
type Engine struct {
	weights  Weights
	resolver *dates.Resolver
	now      func() time.Time
}

// NewEngine constructs an engine. The resolver handles natural-language date
// filters; pass nil only if date filters are never used.
func NewEngine(weights Weights, resolver *dates.Resolver) *Engine {
	return &Engine{weights: weights, resolver: resolver, now: time.Now}
}

// WithNow overrides the anchor clock. Test hook.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	clone := *e
	clone.now = now
	return &clone
}

// Search scores the records against the query and returns them ordered by
// score descending, ties broken by CreatedAt descending. Records that match
// no token are absent from the output; an empty result is not an error.
func (e *Engine) Search(records []models.Announcement, q models.SearchQuery) ([]models.ScoredResult, error) {
	tokens := Tokenize(q.Text)
	if len(tokens) == 0 {
		return nil, appErrors.Clone(appErrors.ErrEmptyQuery, "")
	}

	var dateRange *dates.Range
	if q.DateFilter != "" {
		rng, err := e.resolver.Resolve(q.DateFilter, e.now())
		if err != nil {
			return nil, err
		}
		dateRange = &rng
	}

	sender := strings.ToLower(strings.TrimSpace(q.SenderFilter))

	results := make([]models.ScoredResult, 0, len(records))
	for _, rec := range records {
		if dateRange != nil && !dateRange.Contains(rec.CreatedAt) {
			continue
		}
		if sender != "" && !strings.Contains(strings.ToLower(rec.Sender), sender) {
			continue
		}

		score, matched := e.score(rec, tokens)
		if score == 0 {
			continue
		}
		results = append(results, models.ScoredResult{
			Announcement: rec,
			Score:        score,
			MatchedTerms: matched,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Announcement.CreatedAt.After(results[j].Announcement.CreatedAt)
	})

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// score sums the per-token contributions: the best title match weight plus
// the best body match weight. Tokens matching nowhere contribute zero.
func (e *Engine) score(rec models.Announcement, tokens []string) (int, []string) {
	titleLower := strings.ToLower(rec.Title)
	bodyLower := strings.ToLower(rec.Body)
	titleWords := wordSet(titleLower)
	bodyWords := wordSet(bodyLower)

	total := 0
	var matched []string
	for _, token := range tokens {
		contribution := 0
		if _, ok := titleWords[token]; ok {
			contribution += e.weights.TitleWord
		} else if strings.Contains(titleLower, token) {
			contribution += e.weights.TitleSubstring
		}
		if _, ok := bodyWords[token]; ok {
			contribution += e.weights.BodyWord
		} else if strings.Contains(bodyLower, token) {
			contribution += e.weights.BodySubstring
		}
		if contribution > 0 {
			total += contribution
			matched = append(matched, token)
		}
	}
	return total, matched
}

// Tokenize splits text on non-alphanumeric boundaries, lowercases the pieces
// and drops stop words and empties. The result may be empty.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func wordSet(lower string) map[string]struct{} {
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
