package query

import (
	"regexp"

	"taskboard/internal/core/domain"
)

// Matches evaluates the filter against a task in memory with the same
// semantics the document store applies.
func (f Filter) Matches(task domain.Task) bool {
	if f.title != nil && !f.title.match(task.Title) {
		return false
	}
	if f.status != "" && string(task.Status) != f.status {
		return false
	}
	if f.priority != "" && string(task.Priority) != f.priority {
		return false
	}
	if f.dueFrom != nil || f.dueTo != nil {
		if task.DueDate == nil {
			return false
		}
		if f.dueFrom != nil && task.DueDate.Before(*f.dueFrom) {
			return false
		}
		if f.dueTo != nil && task.DueDate.After(*f.dueTo) {
			return false
		}
	}
	if f.tags != nil && !f.tags.match(task.Tags) {
		return false
	}
	return true
}

// match reports whether value matches p. Patterns that do not compile match nothing.
func (p Pattern) match(value string) bool {
	re, err := regexp.Compile("(?i)" + p.Expr)
	if err != nil {
		return false
	}
	return re.MatchString(value)
}
