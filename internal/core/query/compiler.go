package query

import (
	"strings"
	"time"

	"taskboard/internal/core/domain"
)

const DateLayout = "2006-01-02"

// Compile translates criteria into a Filter. It has no side effects and never
// fails: date bounds that do not parse are dropped.
func Compile(criteria domain.FilterCriteria) Filter {
	b := NewBuilder().
		TitleContains(strings.TrimSpace(criteria.TitleQuery)).
		StatusIs(criteria.StatusValue()).
		PriorityIs(criteria.PriorityValue()).
		TagsMatchWord(strings.TrimSpace(criteria.TagQuery))

	if from, ok := ParseDate(criteria.FromDate); ok {
		b.DueOnOrAfter(from)
	}
	if to, ok := ParseDate(criteria.ToDate); ok {
		b.DueOnOrBefore(to)
	}
	return b.Build()
}

// ParseDate accepts an ISO date or an RFC 3339 timestamp. Dates resolve to
// midnight UTC, which is how due dates are stored.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
