package filterstate

import (
	"net/url"
	"strings"

	"taskboard/internal/core/domain"
)

// EncodeParams renders criteria as query-string parameters. Empty criteria are
// omitted and list criteria contribute only their first value.
func EncodeParams(criteria domain.FilterCriteria) url.Values {
	values := url.Values{}
	for field, value := range paramValues(criteria) {
		if value != "" {
			values.Set(string(field), value)
		}
	}
	return values
}

// DecodeParams reads criteria from query-string parameters. Missing
// parameters decode to empty criteria.
func DecodeParams(values url.Values) domain.FilterCriteria {
	criteria := domain.FilterCriteria{
		TitleQuery: values.Get(string(domain.FieldTitle)),
		TagQuery:   values.Get(string(domain.FieldTags)),
		FromDate:   values.Get(string(domain.FieldFromDate)),
		ToDate:     values.Get(string(domain.FieldToDate)),
	}
	if status := values.Get(string(domain.FieldStatus)); status != "" {
		criteria.Status = []string{status}
	}
	if priority := values.Get(string(domain.FieldPriority)); priority != "" {
		criteria.Priority = []string{priority}
	}
	return criteria
}

// paramValues maps every field to the value it should have in the query string.
func paramValues(criteria domain.FilterCriteria) map[domain.Field]string {
	return map[domain.Field]string{
		domain.FieldTitle:    strings.TrimSpace(criteria.TitleQuery),
		domain.FieldTags:     strings.TrimSpace(criteria.TagQuery),
		domain.FieldFromDate: criteria.FromDate,
		domain.FieldToDate:   criteria.ToDate,
		domain.FieldStatus:   criteria.StatusValue(),
		domain.FieldPriority: criteria.PriorityValue(),
	}
}

// diff computes the parameter writes needed to bring current in line with criteria.
func diff(criteria domain.FilterCriteria, current url.Values) (map[string]string, []string) {
	want := paramValues(criteria)
	set := map[string]string{}
	var remove []string
	for _, field := range domain.Fields {
		key := string(field)
		value := want[field]
		_, present := current[key]
		switch {
		case value != "" && value != current.Get(key):
			set[key] = value
		case value == "" && present:
			remove = append(remove, key)
		}
	}
	return set, remove
}
