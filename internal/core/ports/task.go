package ports

import (
	"context"
	"net/url"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/query"
)

type TaskRepository interface {
	Find(ctx context.Context, filter query.Filter) ([]domain.Task, error)
	FindByID(ctx context.Context, id string) (domain.Task, error)
	Create(ctx context.Context, fields domain.TaskFields) (domain.Task, error)
	UpdateByID(ctx context.Context, id string, fields domain.TaskFields) (domain.Task, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

type TaskService interface {
	ListTasks(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	CreateTask(ctx context.Context, fields domain.TaskFields) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, fields domain.TaskFields) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
	DeleteTasks(ctx context.Context, ids []string) error
}

// ParamStore holds the query-string form of one view's filter state.
type ParamStore interface {
	Values(ctx context.Context) (url.Values, error)
	// Apply sets and removes individual parameters, leaving the rest untouched.
	Apply(ctx context.Context, set map[string]string, remove []string) error
	// Touch marks the parameters as in use so stores with expiry keep them.
	Touch(ctx context.Context) error
	Drop(ctx context.Context) error
}

// ParamStoreFactory creates the store backing a newly opened view, seeded with initial.
type ParamStoreFactory func(ctx context.Context, viewID string, initial url.Values) (ParamStore, error)
