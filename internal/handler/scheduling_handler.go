package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finki-scheduling/exam-scheduling-api/internal/dto"
	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
	"github.com/finki-scheduling/exam-scheduling-api/internal/service"
	appErrors "github.com/finki-scheduling/exam-scheduling-api/pkg/errors"
	"github.com/finki-scheduling/exam-scheduling-api/pkg/response"
)

const maxCoursesPerRequest = 1024

type schedulingService interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Save(ctx context.Context, req dto.SaveScheduleRequest) (*models.ExamSessionSchedule, error)
	List(ctx context.Context, query dto.ScheduleQuery) ([]dto.ScheduleSummary, *models.Pagination, error)
	Get(ctx context.Context, scheduleID string) (*dto.ScheduleDetail, error)
	Publish(ctx context.Context, scheduleID string) (*models.ExamSessionSchedule, error)
	Delete(ctx context.Context, scheduleID string) error
}

type scheduleExporter interface {
	Export(ctx context.Context, scheduleID, format string) (*service.ExportResult, error)
}

// SchedulingHandler exposes scheduling endpoints.
type SchedulingHandler struct {
	service  schedulingService
	exporter scheduleExporter
}

// NewSchedulingHandler constructs the handler.
func NewSchedulingHandler(svc schedulingService, exporter scheduleExporter) *SchedulingHandler {
	return &SchedulingHandler{service: svc, exporter: exporter}
}

// Generate godoc
// @Summary Generate an exam schedule proposal
// @Description Runs the greedy engine against the posted instance. The run outcome, including infeasibility, is reported in the body.
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Scheduling instance"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /scheduling/generate [post]
func (h *SchedulingHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	if len(req.Courses) > maxCoursesPerRequest {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courses exceeds supported limit"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Save godoc
// @Summary Persist a generated proposal as a draft schedule
// @Tags Scheduling
// @Accept json
// @Produce json
// @Param payload body dto.SaveScheduleRequest true "Save schedule payload"
// @Success 201 {object} response.Envelope
// @Router /scheduling/schedules [post]
func (h *SchedulingHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	record, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// List godoc
// @Summary List stored schedules
// @Tags Scheduling
// @Produce json
// @Param examSessionPeriodId query string false "Exam session period"
// @Param academicYear query string false "Academic year"
// @Param examSession query string false "Exam session"
// @Param status query string false "Status filter" Enums(DRAFT, PUBLISHED, ARCHIVED)
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /scheduling/schedules [get]
func (h *SchedulingHandler) List(c *gin.Context) {
	var query dto.ScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule query"))
		return
	}
	summaries, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries, pagination)
}

// Get godoc
// @Summary Get one stored schedule with its exams
// @Tags Scheduling
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /scheduling/schedules/{id} [get]
func (h *SchedulingHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// Publish godoc
// @Summary Publish a draft schedule
// @Description Promotes the draft and archives any previously published version of the same session.
// @Tags Scheduling
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /scheduling/schedules/{id}/publish [put]
func (h *SchedulingHandler) Publish(c *gin.Context) {
	record, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete a draft schedule
// @Tags Scheduling
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /scheduling/schedules/{id} [delete]
func (h *SchedulingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a stored schedule
// @Tags Scheduling
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Schedule ID"
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} file
// @Router /scheduling/schedules/{id}/export [get]
func (h *SchedulingHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	if query.Format == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format query parameter is required"))
		return
	}
	result, err := h.exporter.Export(c.Request.Context(), c.Param("id"), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
