//go:build integration
// +build integration

package tests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	dbadapter "taskboard/internal/adapter/db"
	httpadapter "taskboard/internal/adapter/http"
	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/paramstore"
	appservice "taskboard/internal/app/service"
	"taskboard/internal/core/filterstate"
	"taskboard/internal/metrics"
	"taskboard/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type TasksIntegrationSuite struct {
	IntegrationSuiteBase
	router *gin.Engine
	views  *appservice.ViewService
}

func TestTasksIntegrationSuite(t *testing.T) {
	suite.Run(t, new(TasksIntegrationSuite))
}

func (s *TasksIntegrationSuite) SetupTest() {
	s.ResetDatabase()

	taskRepository := dbadapter.NewTaskRepository(s.Collection)
	taskService := appservice.NewTaskService(taskRepository)
	s.views = appservice.NewViewService(taskService, paramstore.NewMemoryFactory(),
		filterstate.WithDebounce(20*time.Millisecond),
	)

	router := gin.New()
	httpadapter.RegisterRoutes(router,
		handlers.NewHealthHandler(s.Client, nil),
		handlers.NewTaskHandler(taskService),
		handlers.NewViewHandler(s.views),
		metrics.New().Handler(),
	)
	s.router = router
}

func (s *TasksIntegrationSuite) TearDownTest() {
	s.views.CloseAll(context.Background())
}

func (s *TasksIntegrationSuite) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *TasksIntegrationSuite) createTask(title, dueDate, priority, status, tags string) dto.TaskItem {
	rec := s.serve(http.MethodPost, "/api/tasks", fmt.Sprintf(
		`{"title":%q,"dueDate":%q,"priority":%q,"status":%q,"tags":%q}`,
		title, dueDate, priority, status, tags,
	))
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func (s *TasksIntegrationSuite) listTasks(rawQuery string) []dto.TaskItem {
	rec := s.serve(http.MethodGet, "/api/tasks?"+rawQuery, "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func titles(items []dto.TaskItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func (s *TasksIntegrationSuite) seed() {
	s.createTask("Send invoice", "2024-01-10", "High", "Not Started", "billing, urgent")
	s.createTask("Pay rent", "2024-01-31", "Medium", "Completed", "home")
	s.createTask("Invoice review (Q1)", "2024-02-15", "Low", "In Progress", "billing")
}

func (s *TasksIntegrationSuite) TestHealth_ReportsMongoUp() {
	rec := s.serve(http.MethodGet, "/api/health/report", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var got handlers.HealthAdvanced
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal(handlers.StatusOk, got.Status.Mongo)
	s.Require().Equal(handlers.StatusDisabled, got.Status.Redis)
}

func (s *TasksIntegrationSuite) TestGetTasks_NewestFirst() {
	s.seed()

	s.Require().Equal([]string{"Invoice review (Q1)", "Pay rent", "Send invoice"}, titles(s.listTasks("")))
}

func (s *TasksIntegrationSuite) TestGetTasks_Filters() {
	s.seed()

	tests := []struct {
		name     string
		query    url.Values
		expected []string
	}{
		{name: "title case-insensitive", query: url.Values{"title": {"INVOICE"}}, expected: []string{"Invoice review (Q1)", "Send invoice"}},
		{name: "title metachars are literal", query: url.Values{"title": {"(Q1)"}}, expected: []string{"Invoice review (Q1)"}},
		{name: "status exact", query: url.Values{"status": {"Completed"}}, expected: []string{"Pay rent"}},
		{name: "priority exact", query: url.Values{"priority": {"High"}}, expected: []string{"Send invoice"}},
		{name: "tag whole word", query: url.Values{"tags": {"bill"}}, expected: []string{}},
		{name: "tag match", query: url.Values{"tags": {"billing"}}, expected: []string{"Invoice review (Q1)", "Send invoice"}},
		{name: "inclusive date range", query: url.Values{"fromDate": {"2024-01-10"}, "toDate": {"2024-01-31"}}, expected: []string{"Pay rent", "Send invoice"}},
		{name: "lower bound only", query: url.Values{"fromDate": {"2024-02-01"}}, expected: []string{"Invoice review (Q1)"}},
		{name: "invalid date ignored", query: url.Values{"toDate": {"soon"}}, expected: []string{"Invoice review (Q1)", "Pay rent", "Send invoice"}},
		{name: "combined", query: url.Values{"tags": {"billing"}, "status": {"Not Started"}}, expected: []string{"Send invoice"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Require().Equal(tt.expected, titles(s.listTasks(tt.query.Encode())))
		})
	}
}

func (s *TasksIntegrationSuite) TestGetTask_Errors() {
	rec := s.serve(http.MethodGet, "/api/tasks/abc", "")
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.serve(http.MethodGet, "/api/tasks/65a000000000000000000000", "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("Task not found", got.ErrDetails.Message)
}

func (s *TasksIntegrationSuite) TestPutTask_UpdatesAndClearsNothingElse() {
	created := s.createTask("Send invoice", "2024-01-10", "High", "Not Started", "billing")

	rec := s.serve(http.MethodPut, "/api/tasks/"+created.ID,
		`{"title":"Send invoice","dueDate":"2024-01-12","priority":"High","status":"Completed","tags":"billing"}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.serve(http.MethodGet, "/api/tasks/"+created.ID, "")
	var got dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("Completed", got.Status)
	s.Require().Equal("2024-01-12", got.DueDate)
	s.Require().Equal(created.CreatedAt, got.CreatedAt)
}

func (s *TasksIntegrationSuite) TestPostTasks_ReturnsBadRequestWhenPayloadIsInvalid() {
	rec := s.serve(http.MethodPost, "/api/tasks", `{}`)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var got apierrors.JsonErr
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Equal("Invalid task payload", got.ErrDetails.Message)
	s.Require().Contains(got.ErrDetails.Fields, "title")
	s.Require().Contains(got.ErrDetails.Fields, "dueDate")
}

func (s *TasksIntegrationSuite) TestDeleteTasks() {
	first := s.createTask("a", "2024-01-01", "Low", "Not Started", "")
	second := s.createTask("b", "2024-01-01", "Low", "Not Started", "")
	third := s.createTask("c", "2024-01-01", "Low", "Not Started", "")

	rec := s.serve(http.MethodDelete, "/api/tasks/"+first.ID, "")
	s.Require().Equal(http.StatusNoContent, rec.Code)
	rec = s.serve(http.MethodDelete, "/api/tasks/"+first.ID, "")
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.serve(http.MethodPost, "/api/tasks/bulk-delete", fmt.Sprintf(`{"ids":[%q,%q]}`, second.ID, first.ID))
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.serve(http.MethodPost, "/api/tasks/bulk-delete", fmt.Sprintf(`{"ids":[%q,"nope"]}`, third.ID))
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	s.Require().Equal([]string{"c"}, titles(s.listTasks("")))
}

func (s *TasksIntegrationSuite) TestViews_FilterEditsReachQueryAndTasks() {
	s.seed()

	rec := s.serve(http.MethodPost, "/api/views?shop=demo&status=Completed", "")
	s.Require().Equal(http.StatusCreated, rec.Code)
	var state dto.ViewState
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &state))

	rec = s.serve(http.MethodGet, "/api/views/"+state.ID+"/tasks", "")
	var items []dto.TaskItem
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	s.Require().Equal([]string{"Pay rent"}, titles(items))

	rec = s.serve(http.MethodDelete, "/api/views/"+state.ID+"/filters/status", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.serve(http.MethodPut, "/api/views/"+state.ID+"/filters/tags", `{"values":["billing"]}`)
	s.Require().Equal(http.StatusOK, rec.Code)

	s.Require().Eventually(func() bool {
		rec := s.serve(http.MethodGet, "/api/views/"+state.ID, "")
		var got dto.ViewState
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			return false
		}
		query, err := url.ParseQuery(got.Query)
		return err == nil && !got.Loading &&
			query.Get("tags") == "billing" && query.Get("status") == "" && query.Get("shop") == "demo"
	}, 2*time.Second, 10*time.Millisecond)

	rec = s.serve(http.MethodGet, "/api/views/"+state.ID+"/tasks", "")
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &items))
	s.Require().Equal([]string{"Invoice review (Q1)", "Send invoice"}, titles(items))

	rec = s.serve(http.MethodDelete, "/api/views/"+state.ID, "")
	s.Require().Equal(http.StatusNoContent, rec.Code)
}

func (s *TasksIntegrationSuite) TestMetrics_Exposed() {
	rec := s.serve(http.MethodGet, "/metrics", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Contains(rec.Body.String(), "go_goroutines")
}
