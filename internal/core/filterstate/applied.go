package filterstate

import (
	"fmt"
	"strings"

	"taskboard/internal/core/domain"
)

const (
	ChipStatus     = "status"
	ChipPriority   = "priority"
	ChipDueDate    = "dueDate"
	ChipTaggedWith = "taggedWith"
)

// AppliedFilter summarises one active criterion group.
type AppliedFilter struct {
	Key    string
	Label  string
	Remove func()
}

// AppliedFilters derives the chips for the current state. It is recomputed on
// every call.
func (s *Synchronizer) AppliedFilters() []AppliedFilter {
	criteria := s.Criteria()

	var chips []AppliedFilter
	if len(criteria.Status) > 0 {
		chips = append(chips, AppliedFilter{
			Key:    ChipStatus,
			Label:  "Status: " + strings.Join(criteria.Status, ", "),
			Remove: func() { s.ClearField(domain.FieldStatus) },
		})
	}
	if len(criteria.Priority) > 0 {
		chips = append(chips, AppliedFilter{
			Key:    ChipPriority,
			Label:  "Priority: " + strings.Join(criteria.Priority, ", "),
			Remove: func() { s.ClearField(domain.FieldPriority) },
		})
	}
	if criteria.FromDate != "" || criteria.ToDate != "" {
		chips = append(chips, AppliedFilter{
			Key:   ChipDueDate,
			Label: fmt.Sprintf("Due Date: %s → %s", orEllipsis(criteria.FromDate), orEllipsis(criteria.ToDate)),
			Remove: func() {
				s.update(func(c domain.FilterCriteria) domain.FilterCriteria {
					return c.Without(domain.FieldFromDate).Without(domain.FieldToDate)
				})
			},
		})
	}
	if criteria.TagQuery != "" {
		chips = append(chips, AppliedFilter{
			Key:    ChipTaggedWith,
			Label:  "Tagged with: " + criteria.TagQuery,
			Remove: func() { s.ClearField(domain.FieldTags) },
		})
	}
	return chips
}

// RemoveApplied runs the removal action of the chip with the given key.
func (s *Synchronizer) RemoveApplied(key string) bool {
	for _, chip := range s.AppliedFilters() {
		if chip.Key == key {
			chip.Remove()
			return true
		}
	}
	return false
}

func orEllipsis(value string) string {
	if value == "" {
		return "..."
	}
	return value
}
