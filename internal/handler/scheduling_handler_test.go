package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finki-scheduling/exam-scheduling-api/internal/dto"
	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
	"github.com/finki-scheduling/exam-scheduling-api/internal/service"
	appErrors "github.com/finki-scheduling/exam-scheduling-api/pkg/errors"
)

type schedulingServiceMock struct {
	captured    dto.GenerateScheduleRequest
	saveErr     error
	deleteErr   error
	publishResp *models.ExamSessionSchedule
	publishErr  error
}

func (m *schedulingServiceMock) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	m.captured = req
	return &dto.GenerateScheduleResponse{
		ProposalID: "proposal-1",
		Result:     models.SchedulingResult{Success: true},
	}, nil
}

func (m *schedulingServiceMock) Save(ctx context.Context, req dto.SaveScheduleRequest) (*models.ExamSessionSchedule, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return &models.ExamSessionSchedule{ID: "sched-1", Version: 1, Status: models.ScheduleStatusDraft}, nil
}

func (m *schedulingServiceMock) List(ctx context.Context, query dto.ScheduleQuery) ([]dto.ScheduleSummary, *models.Pagination, error) {
	return []dto.ScheduleSummary{{ID: "sched-1"}}, &models.Pagination{Page: 1, PerPage: 20, Total: 1, TotalPages: 1}, nil
}

func (m *schedulingServiceMock) Get(ctx context.Context, scheduleID string) (*dto.ScheduleDetail, error) {
	if scheduleID != "sched-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	}
	return &dto.ScheduleDetail{Schedule: models.ExamSessionSchedule{ID: scheduleID}}, nil
}

func (m *schedulingServiceMock) Publish(ctx context.Context, scheduleID string) (*models.ExamSessionSchedule, error) {
	return m.publishResp, m.publishErr
}

func (m *schedulingServiceMock) Delete(ctx context.Context, scheduleID string) error {
	return m.deleteErr
}

type exporterMock struct {
	result *service.ExportResult
	err    error
}

func (m *exporterMock) Export(ctx context.Context, scheduleID, format string) (*service.ExportResult, error) {
	return m.result, m.err
}

func validGeneratePayload() []byte {
	payload := map[string]any{
		"examPeriod": map[string]any{
			"examSessionPeriodId": "2025-JUNE",
			"academicYear":        "2024/2025",
			"examSession":         "JUNE",
			"startDate":           "2025-06-02",
			"endDate":             "2025-06-06",
		},
		"courses": []map[string]any{
			{
				"courseId":          "cs101",
				"courseName":        "Intro to Programming",
				"studentCount":      120,
				"professorIds":      []string{"prof-1"},
				"mandatoryStatus":   "MANDATORY",
				"estimatedDuration": 120,
			},
		},
		"availableRooms": []map[string]any{
			{"roomId": "amph-1", "roomName": "Amphitheatre 1", "capacity": 200},
		},
		"institutionalConstraints": map[string]any{
			"workingHours":      map[string]any{"startTime": "08:00", "endTime": "20:00"},
			"minimumGapMinutes": 30,
		},
	}
	raw, _ := json.Marshal(payload)
	return raw
}

func postJSON(t *testing.T, handlerFunc gin.HandlerFunc, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handlerFunc(c)
	return w
}

func TestSchedulingHandlerGenerate(t *testing.T) {
	mockSvc := &schedulingServiceMock{}
	handler := NewSchedulingHandler(mockSvc, &exporterMock{})

	w := postJSON(t, handler.Generate, "/api/v1/scheduling/generate", validGeneratePayload())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-JUNE", mockSvc.captured.ExamPeriod.ExamSessionPeriodID)
	require.Len(t, mockSvc.captured.Courses, 1)
	assert.Equal(t, models.TimeOfDay(8*60), mockSvc.captured.InstitutionalConstraints.WorkingHours.StartTime)
	assert.Contains(t, w.Body.String(), "proposal-1")
}

func TestSchedulingHandlerGenerateMalformedBody(t *testing.T) {
	handler := NewSchedulingHandler(&schedulingServiceMock{}, &exporterMock{})

	w := postJSON(t, handler.Generate, "/api/v1/scheduling/generate", []byte(`{"examPeriod":`))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSchedulingHandlerSave(t *testing.T) {
	handler := NewSchedulingHandler(&schedulingServiceMock{}, &exporterMock{})

	w := postJSON(t, handler.Save, "/api/v1/scheduling/schedules", []byte(`{"proposalId":"proposal-1"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "sched-1")
}

func TestSchedulingHandlerSaveExpiredProposal(t *testing.T) {
	handler := NewSchedulingHandler(&schedulingServiceMock{
		saveErr: appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired"),
	}, &exporterMock{})

	w := postJSON(t, handler.Save, "/api/v1/scheduling/schedules", []byte(`{"proposalId":"stale"}`))

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulingHandlerListAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSchedulingHandler(&schedulingServiceMock{}, &exporterMock{})
	router := gin.New()
	router.GET("/schedules", handler.List)
	router.GET("/schedules/:id", handler.Get)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/schedules?status=DRAFT", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pagination"`)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/schedules/sched-1", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/schedules/missing", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestSchedulingHandlerPublishConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSchedulingHandler(&schedulingServiceMock{
		publishErr: appErrors.Clone(appErrors.ErrConflict, "only draft schedules can be published"),
	}, &exporterMock{})
	router := gin.New()
	router.PUT("/schedules/:id/publish", handler.Publish)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/schedules/sched-1/publish", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestSchedulingHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSchedulingHandler(&schedulingServiceMock{}, &exporterMock{})
	router := gin.New()
	router.DELETE("/schedules/:id", handler.Delete)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/schedules/sched-1", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestSchedulingHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSchedulingHandler(&schedulingServiceMock{}, &exporterMock{
		result: &service.ExportResult{Filename: "exam-schedule-2025-JUNE-v1.csv", ContentType: "text/csv", Data: []byte("course_id\n")},
	})
	router := gin.New()
	router.GET("/schedules/:id/export", handler.Export)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/schedules/sched-1/export?format=csv", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "exam-schedule-2025-JUNE-v1.csv")

	// Missing format query.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/schedules/sched-1/export", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
