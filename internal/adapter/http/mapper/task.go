package mapper

import (
	"net/url"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/filterstate"
	"taskboard/internal/core/query"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Tags:        task.Tags,
		TagList:     task.TagList(),
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}

	if task.DueDate != nil {
		item.DueDate = task.DueDate.Format(query.DateLayout)
	}

	return item
}

func ToTaskDefaults(fields domain.TaskFields) dto.TaskDefaults {
	defaults := dto.TaskDefaults{
		Title:       fields.Title,
		Description: fields.Description,
		Priority:    string(fields.Priority),
		Status:      string(fields.Status),
		Tags:        fields.Tags,
	}
	if fields.DueDate != nil {
		defaults.DueDate = fields.DueDate.Format(query.DateLayout)
	}
	return defaults
}

func ToViewState(id string, s *filterstate.Synchronizer, params url.Values) dto.ViewState {
	criteria := s.Criteria()
	state := dto.ViewState{
		ID: id,
		Criteria: dto.FilterCriteria{
			Title:    criteria.TitleQuery,
			Tags:     criteria.TagQuery,
			Status:   nonNil(criteria.Status),
			Priority: nonNil(criteria.Priority),
			FromDate: criteria.FromDate,
			ToDate:   criteria.ToDate,
		},
		AppliedFilters: []dto.AppliedFilter{},
		Loading:        s.Loading(),
		Query:          params.Encode(),
	}
	for _, chip := range s.AppliedFilters() {
		state.AppliedFilters = append(state.AppliedFilters, dto.AppliedFilter{Key: chip.Key, Label: chip.Label})
	}
	return state
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
