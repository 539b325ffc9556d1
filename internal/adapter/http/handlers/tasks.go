package handlers

import (
	"errors"
	"net/http"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/filterstate"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks filters with the query string. A failing lookup degrades to an
// empty list so the page still renders.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	criteria := filterstate.DecodeParams(c.Request.URL.Query())
	tasks, err := h.taskService.ListTasks(c.Request.Context(), criteria)
	if err != nil {
		zap.L().Error("failed to load tasks", zap.String("query", c.Request.URL.RawQuery), zap.Error(err))
		c.JSON(http.StatusOK, []dto.TaskItem{})
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) GetTaskDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, mapper.ToTaskDefaults(domain.DefaultTaskFields()))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		if h.respondTaskLookupError(c, err, lang) {
			return
		}

		zap.L().Error("failed to get task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailGetTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)

	fields, ok := bindTaskForm(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), fields)
	if err != nil {
		zap.L().Error("failed to create task", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	fields, ok := bindTaskForm(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, fields)
	if err != nil {
		if h.respondTaskLookupError(c, err, lang) {
			return
		}

		zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailUpdateTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID := c.Param("id")

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		if h.respondTaskLookupError(c, err, lang) {
			return
		}

		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTask, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteTasks removes a batch of tasks. Unknown ids are ignored.
func (h *TaskHandler) DeleteTasks(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	if err := h.taskService.DeleteTasks(c.Request.Context(), req.IDs); err != nil {
		if errors.Is(err, domain.ErrInvalidTaskID) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
			)
			return
		}

		zap.L().Error("failed to delete tasks", zap.Int("count", len(req.IDs)), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDeleteTasks, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) respondTaskLookupError(c *gin.Context, err error, lang string) bool {
	switch {
	case errors.Is(err, domain.ErrInvalidTaskID):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return true
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
		return true
	}
	return false
}

func bindTaskForm(c *gin.Context, lang string) (domain.TaskFields, bool) {
	var req dto.TaskFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return domain.TaskFields{}, false
	}

	fields, fieldErrs := validation.BuildTaskFields(req)
	if !fieldErrs.Empty() {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateFieldsError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, fieldErrs, lang),
		)
		return domain.TaskFields{}, false
	}

	return fields, true
}
