package query

import (
	"regexp"
	"time"
)

// Builder accumulates optional clauses. Empty arguments add nothing.
type Builder struct {
	filter Filter
}

func NewBuilder() *Builder {
	return &Builder{}
}

// TitleContains matches q anywhere in the title, ignoring case. Unlike
// TagsMatchWord, q is escaped and matches literally.
func (b *Builder) TitleContains(q string) *Builder {
	if q != "" {
		b.filter.title = &Pattern{Expr: regexp.QuoteMeta(q)}
	}
	return b
}

// TagsMatchWord matches q as a whole word of the raw tag string, ignoring case.
// q is embedded without escaping, so regex metacharacters in it are live.
func (b *Builder) TagsMatchWord(q string) *Builder {
	if q != "" {
		b.filter.tags = &Pattern{Expr: `\b` + q + `\b`}
	}
	return b
}

func (b *Builder) StatusIs(value string) *Builder {
	b.filter.status = value
	return b
}

func (b *Builder) PriorityIs(value string) *Builder {
	b.filter.priority = value
	return b
}

// DueOnOrAfter sets the inclusive lower due-date bound.
func (b *Builder) DueOnOrAfter(t time.Time) *Builder {
	b.filter.dueFrom = &t
	return b
}

// DueOnOrBefore sets the inclusive upper due-date bound.
func (b *Builder) DueOnOrBefore(t time.Time) *Builder {
	b.filter.dueTo = &t
	return b
}

// Build returns a snapshot that later builder calls do not affect.
func (b *Builder) Build() Filter {
	f := b.filter
	if f.title != nil {
		title := *f.title
		f.title = &title
	}
	if f.tags != nil {
		tags := *f.tags
		f.tags = &tags
	}
	if f.dueFrom != nil {
		from := *f.dueFrom
		f.dueFrom = &from
	}
	if f.dueTo != nil {
		to := *f.dueTo
		f.dueTo = &to
	}
	return f
}
