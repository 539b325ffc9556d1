// Package query compiles task list filter criteria into document-store filters.
package query

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pattern is a case-insensitive regular expression clause.
type Pattern struct {
	Expr string
}

func (p Pattern) regex() primitive.Regex {
	return primitive.Regex{Pattern: p.Expr, Options: "i"}
}

// Filter is an immutable set of clauses combined with AND. The zero value
// matches every task.
type Filter struct {
	title    *Pattern
	status   string
	priority string
	dueFrom  *time.Time
	dueTo    *time.Time
	tags     *Pattern
}

func (f Filter) Title() (Pattern, bool) {
	if f.title == nil {
		return Pattern{}, false
	}
	return *f.title, true
}

func (f Filter) Tags() (Pattern, bool) {
	if f.tags == nil {
		return Pattern{}, false
	}
	return *f.tags, true
}

func (f Filter) Status() string {
	return f.status
}

func (f Filter) Priority() string {
	return f.priority
}

func (f Filter) DueFrom() (time.Time, bool) {
	if f.dueFrom == nil {
		return time.Time{}, false
	}
	return *f.dueFrom, true
}

func (f Filter) DueTo() (time.Time, bool) {
	if f.dueTo == nil {
		return time.Time{}, false
	}
	return *f.dueTo, true
}

func (f Filter) IsEmpty() bool {
	return f.title == nil && f.status == "" && f.priority == "" &&
		f.dueFrom == nil && f.dueTo == nil && f.tags == nil
}

// BSON renders the filter for a MongoDB find.
func (f Filter) BSON() bson.D {
	doc := bson.D{}
	if f.title != nil {
		doc = append(doc, bson.E{Key: "title", Value: f.title.regex()})
	}
	if f.status != "" {
		doc = append(doc, bson.E{Key: "status", Value: f.status})
	}
	if f.priority != "" {
		doc = append(doc, bson.E{Key: "priority", Value: f.priority})
	}
	if f.dueFrom != nil || f.dueTo != nil {
		due := bson.D{}
		if f.dueFrom != nil {
			due = append(due, bson.E{Key: "$gte", Value: *f.dueFrom})
		}
		if f.dueTo != nil {
			due = append(due, bson.E{Key: "$lte", Value: *f.dueTo})
		}
		doc = append(doc, bson.E{Key: "dueDate", Value: due})
	}
	if f.tags != nil {
		doc = append(doc, bson.E{Key: "tags", Value: f.tags.regex()})
	}
	return doc
}
