package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/filterstate"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ViewService is the part of the view registry the HTTP layer depends on.
type ViewService interface {
	Open(ctx context.Context, initial url.Values) (string, *filterstate.Synchronizer, error)
	Get(ctx context.Context, id string) (*filterstate.Synchronizer, error)
	Params(ctx context.Context, id string) (url.Values, error)
	ListTasks(ctx context.Context, id string) ([]domain.Task, error)
	Close(ctx context.Context, id string) error
}

type ViewHandler struct {
	viewService ViewService
}

func NewViewHandler(viewService ViewService) *ViewHandler {
	return &ViewHandler{viewService: viewService}
}

// OpenView starts a filter view seeded from the request query string.
func (h *ViewHandler) OpenView(c *gin.Context) {
	lang := middleware.GetLang(c)

	id, synchronizer, err := h.viewService.Open(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		zap.L().Error("failed to open view", zap.String("query", c.Request.URL.RawQuery), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailOpenView, lang),
		)
		return
	}

	h.respondState(c, http.StatusCreated, id, synchronizer)
}

func (h *ViewHandler) GetView(c *gin.Context) {
	synchronizer, ok := h.lookup(c)
	if !ok {
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), synchronizer)
}

func (h *ViewHandler) SetFilter(c *gin.Context) {
	lang := middleware.GetLang(c)

	field, ok := parseFilterField(c, lang)
	if !ok {
		return
	}

	var req dto.SetFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidFilterField, lang),
		)
		return
	}

	synchronizer, ok := h.lookup(c)
	if !ok {
		return
	}

	synchronizer.SetField(field, req.Values...)
	h.respondState(c, http.StatusOK, c.Param("id"), synchronizer)
}

func (h *ViewHandler) ClearFilter(c *gin.Context) {
	lang := middleware.GetLang(c)

	field, ok := parseFilterField(c, lang)
	if !ok {
		return
	}

	synchronizer, ok := h.lookup(c)
	if !ok {
		return
	}

	synchronizer.ClearField(field)
	h.respondState(c, http.StatusOK, c.Param("id"), synchronizer)
}

func (h *ViewHandler) ClearFilters(c *gin.Context) {
	synchronizer, ok := h.lookup(c)
	if !ok {
		return
	}

	synchronizer.ClearAll()
	h.respondState(c, http.StatusOK, c.Param("id"), synchronizer)
}

// RemoveApplied drops the criteria behind one applied-filter chip.
func (h *ViewHandler) RemoveApplied(c *gin.Context) {
	lang := middleware.GetLang(c)

	synchronizer, ok := h.lookup(c)
	if !ok {
		return
	}

	if !synchronizer.RemoveApplied(c.Param("key")) {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidFilterField, lang),
		)
		return
	}
	h.respondState(c, http.StatusOK, c.Param("id"), synchronizer)
}

// ListViewTasks lists tasks with the view's in-memory criteria. Like the plain
// list endpoint, a failing lookup degrades to an empty list.
func (h *ViewHandler) ListViewTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	viewID := c.Param("id")

	tasks, err := h.viewService.ListTasks(c.Request.Context(), viewID)
	if err != nil {
		if errors.Is(err, domain.ErrViewSessionNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgViewNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to load view tasks", zap.String("view_id", viewID), zap.Error(err))
		c.JSON(http.StatusOK, []dto.TaskItem{})
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *ViewHandler) CloseView(c *gin.Context) {
	lang := middleware.GetLang(c)
	viewID := c.Param("id")

	if err := h.viewService.Close(c.Request.Context(), viewID); err != nil {
		if errors.Is(err, domain.ErrViewSessionNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgViewNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to close view", zap.String("view_id", viewID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCloseView, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ViewHandler) lookup(c *gin.Context) (*filterstate.Synchronizer, bool) {
	synchronizer, err := h.viewService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgViewNotFound, middleware.GetLang(c)),
		)
		return nil, false
	}
	return synchronizer, true
}

// respondState renders the view. Query is the persisted form, which lags the
// criteria while Loading is true.
func (h *ViewHandler) respondState(c *gin.Context, status int, id string, synchronizer *filterstate.Synchronizer) {
	params, err := h.viewService.Params(c.Request.Context(), id)
	if err != nil {
		zap.L().Warn("failed to read view params", zap.String("view_id", id), zap.Error(err))
		params = url.Values{}
	}
	c.JSON(status, mapper.ToViewState(id, synchronizer, params))
}

func parseFilterField(c *gin.Context, lang string) (domain.Field, bool) {
	field, err := domain.ParseField(c.Param("field"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidFilterField, lang),
		)
		return "", false
	}
	return field, true
}
