package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/schoolconnect/schoolconnect-api/pkg/errors"
)

// Range is a closed interval of calendar dates. Start and End are civil dates
// at UTC midnight and Start never falls after End.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether the given date falls inside the range.
func (r Range) Contains(t time.Time) bool {
	d := midnight(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Resolver turns natural-language date phrases into date ranges. Each phrase
// family has its own handler; handlers run in a fixed priority order and the
// first one that recognizes the phrase wins.
type Resolver struct {
	weekStart time.Weekday
	handlers  []handler
}

type handler func(phrase string, anchor time.Time) (Range, bool)

// NewResolver builds a resolver with the given week start day. Monday is the
// conventional choice; pass time.Sunday for US-style weeks.
func NewResolver(weekStart time.Weekday) *Resolver {
	r := &Resolver{weekStart: weekStart}
	r.handlers = []handler{
		r.relativeDay,
		r.relativePeriod,
		r.lastNDays,
		r.explicitDate,
		r.monthName,
	}
	return r
}

// Resolve maps a phrase to a date range anchored at the given date. Anchoring
// only matters for relative phrases; explicit dates ignore it. Unrecognized
// phrases fail with a DATE_PARSE_ERROR naming the phrase.
func (r *Resolver) Resolve(phrase string, anchor time.Time) (Range, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	if normalized == "" {
		return Range{}, appErrors.Clone(appErrors.ErrDateParse, "empty date expression")
	}

	anchor = midnight(anchor)
	for _, h := range r.handlers {
		if rng, ok := h(normalized, anchor); ok {
			return rng, nil
		}
	}

	return Range{}, appErrors.Clone(appErrors.ErrDateParse,
		fmt.Sprintf("could not understand date expression %q", phrase))
}

func (r *Resolver) relativeDay(phrase string, anchor time.Time) (Range, bool) {
	switch {
	case strings.Contains(phrase, "today"):
		return singleDay(anchor), true
	case strings.Contains(phrase, "yesterday"):
		return singleDay(anchor.AddDate(0, 0, -1)), true
	case strings.Contains(phrase, "tomorrow"):
		return singleDay(anchor.AddDate(0, 0, 1)), true
	}
	return Range{}, false
}

func (r *Resolver) relativePeriod(phrase string, anchor time.Time) (Range, bool) {
	switch {
	case strings.Contains(phrase, "this week"):
		start := r.startOfWeek(anchor)
		return Range{Start: start, End: start.AddDate(0, 0, 6)}, true
	case strings.Contains(phrase, "last week"):
		start := r.startOfWeek(anchor).AddDate(0, 0, -7)
		return Range{Start: start, End: start.AddDate(0, 0, 6)}, true
	case strings.Contains(phrase, "this month"):
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Range{Start: start, End: start.AddDate(0, 1, -1)}, true
	case strings.Contains(phrase, "last month"):
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return Range{Start: start, End: start.AddDate(0, 1, -1)}, true
	}
	return Range{}, false
}

var lastNDaysPattern = regexp.MustCompile(`(?:last|past)\s+(\d+)\s+days?`)

func (r *Resolver) lastNDays(phrase string, anchor time.Time) (Range, bool) {
	m := lastNDaysPattern.FindStringSubmatch(phrase)
	if m == nil {
		return Range{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 0 {
		return Range{}, false
	}
	return Range{Start: anchor.AddDate(0, 0, -n), End: anchor}, true
}

var months = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "oct": time.October,
	"nov": time.November, "dec": time.December,
}

var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

func (r *Resolver) monthName(phrase string, anchor time.Time) (Range, bool) {
	// Month names are matched as whole words so that "may 2025" resolves but
	// a stray substring ("dismay") does not.
	var month time.Month
	found := false
	for _, word := range strings.FieldsFunc(phrase, isNotLetterOrDigit) {
		if m, ok := months[word]; ok {
			month = m
			found = true
			break
		}
	}
	if !found {
		return Range{}, false
	}

	year := anchor.Year()
	if m := yearPattern.FindStringSubmatch(phrase); m != nil {
		year, _ = strconv.Atoi(m[1])
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, -1)}, true
}

var explicitLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"01/02/2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

func (r *Resolver) explicitDate(phrase string, anchor time.Time) (Range, bool) {
	for _, layout := range explicitLayouts {
		if parsed, err := time.Parse(layout, titleCase(phrase)); err == nil {
			return singleDay(midnight(parsed)), true
		}
	}
	return Range{}, false
}

func (r *Resolver) startOfWeek(anchor time.Time) time.Time {
	offset := (int(anchor.Weekday()) - int(r.weekStart) + 7) % 7
	return anchor.AddDate(0, 0, -offset)
}

func singleDay(d time.Time) Range {
	return Range{Start: d, End: d}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isNotLetterOrDigit(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}

// titleCase restores the capitalization time.Parse expects for month layouts,
// since phrases are normalized to lowercase before handlers run.
func titleCase(phrase string) string {
	var b strings.Builder
	upper := true
	for _, r := range phrase {
		if upper && r >= 'a' && r <= 'z' {
			b.WriteRune(r - 32)
		} else {
			b.WriteRune(r)
		}
		upper = r == ' ' || r == '/'
	}
	return b.String()
}
