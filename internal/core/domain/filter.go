package domain

// Field names one criterion of FilterCriteria. The string value doubles as the
// query-string parameter name.
type Field string

const (
	FieldTitle    Field = "title"
	FieldTags     Field = "tags"
	FieldStatus   Field = "status"
	FieldPriority Field = "priority"
	FieldFromDate Field = "fromDate"
	FieldToDate   Field = "toDate"
)

// Fields lists every criterion in query-string write order.
var Fields = []Field{FieldTitle, FieldTags, FieldFromDate, FieldToDate, FieldStatus, FieldPriority}

func ParseField(value string) (Field, error) {
	for _, field := range Fields {
		if string(field) == value {
			return field, nil
		}
	}
	return "", ErrUnknownFilterField
}

// FilterCriteria is the editable state of the task list filters. Empty values
// impose no constraint. Status and Priority are list-shaped but only the first
// element is ever compiled or persisted.
type FilterCriteria struct {
	TitleQuery string
	TagQuery   string
	Status     []string
	Priority   []string
	FromDate   string
	ToDate     string
}

func (c FilterCriteria) StatusValue() string {
	return first(c.Status)
}

func (c FilterCriteria) PriorityValue() string {
	return first(c.Priority)
}

func (c FilterCriteria) IsEmpty() bool {
	return c.TitleQuery == "" &&
		c.TagQuery == "" &&
		len(c.Status) == 0 &&
		len(c.Priority) == 0 &&
		c.FromDate == "" &&
		c.ToDate == ""
}

// With returns a copy of c where field holds values. Scalar fields take the
// first value; list fields keep all non-empty ones.
func (c FilterCriteria) With(field Field, values ...string) FilterCriteria {
	next := c.clone()
	switch field {
	case FieldTitle:
		next.TitleQuery = first(values)
	case FieldTags:
		next.TagQuery = first(values)
	case FieldFromDate:
		next.FromDate = first(values)
	case FieldToDate:
		next.ToDate = first(values)
	case FieldStatus:
		next.Status = compact(values)
	case FieldPriority:
		next.Priority = compact(values)
	}
	return next
}

// Without returns a copy of c with field reset to its empty value.
func (c FilterCriteria) Without(field Field) FilterCriteria {
	return c.With(field)
}

func (c FilterCriteria) clone() FilterCriteria {
	next := c
	if c.Status != nil {
		next.Status = append([]string(nil), c.Status...)
	}
	if c.Priority != nil {
		next.Priority = append([]string(nil), c.Priority...)
	}
	return next
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func compact(values []string) []string {
	var out []string
	for _, value := range values {
		if value != "" {
			out = append(out, value)
		}
	}
	return out
}
