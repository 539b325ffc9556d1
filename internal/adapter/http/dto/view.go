package dto

type FilterCriteria struct {
	Title    string   `json:"title"`
	Tags     string   `json:"tags"`
	Status   []string `json:"status"`
	Priority []string `json:"priority"`
	FromDate string   `json:"fromDate"`
	ToDate   string   `json:"toDate"`
}

type AppliedFilter struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type ViewState struct {
	ID             string          `json:"id"`
	Criteria       FilterCriteria  `json:"criteria"`
	AppliedFilters []AppliedFilter `json:"appliedFilters"`
	Loading        bool            `json:"loading"`
	Query          string          `json:"query"`
}

type SetFilterRequest struct {
	Values []string `json:"values"`
}
