package service

import (
	"context"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/query"
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

func (s *TaskService) ListTasks(ctx context.Context, criteria domain.FilterCriteria) ([]domain.Task, error) {
	filter := query.Compile(criteria)
	zap.L().Debug("listing tasks", zap.Any("filter", filter.BSON()))
	return s.taskRepository.Find(ctx, filter)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return s.taskRepository.FindByID(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, fields domain.TaskFields) (domain.Task, error) {
	return s.taskRepository.Create(ctx, fields)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, fields domain.TaskFields) (domain.Task, error) {
	return s.taskRepository.UpdateByID(ctx, id, fields)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	return s.taskRepository.DeleteByID(ctx, id)
}

func (s *TaskService) DeleteTasks(ctx context.Context, ids []string) error {
	return s.taskRepository.DeleteByIDs(ctx, ids)
}

var _ ports.TaskService = (*TaskService)(nil)
