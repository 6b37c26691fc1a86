package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/finki-scheduling/exam-scheduling-api/internal/dto"
	"github.com/finki-scheduling/exam-scheduling-api/pkg/export"
	appErrors "github.com/finki-scheduling/exam-scheduling-api/pkg/errors"
)

type scheduleDetailProvider interface {
	Get(ctx context.Context, scheduleID string) (*dto.ScheduleDetail, error)
}

type csvRenderer interface {
	Render(rows interface{}) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportResult is one rendered export file.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// examExportRow is the flat CSV projection of one scheduled exam.
type examExportRow struct {
	CourseID     string `csv:"course_id"`
	CourseName   string `csv:"course_name"`
	ExamDate     string `csv:"exam_date"`
	StartTime    string `csv:"start_time"`
	EndTime      string `csv:"end_time"`
	RoomID       string `csv:"room_id"`
	RoomName     string `csv:"room_name"`
	StudentCount int    `csv:"student_count"`
	Mandatory    string `csv:"mandatory_status"`
	Professors   string `csv:"professor_ids"`
}

// ExportService renders persisted schedules as CSV or PDF.
type ExportService struct {
	schedules scheduleDetailProvider
	csv       csvRenderer
	pdf       pdfRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(schedules scheduleDetailProvider, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{schedules: schedules, csv: csv, pdf: pdf, logger: logger}
}

// Export renders the schedule in the requested format.
func (s *ExportService) Export(ctx context.Context, scheduleID, format string) (*ExportResult, error) {
	detail, err := s.schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("exam-schedule-%s-v%d", detail.Schedule.ExamSessionPeriodID, detail.Schedule.Version)
	switch format {
	case "csv":
		rows := make([]examExportRow, 0, len(detail.Exams))
		for _, exam := range detail.Exams {
			rows = append(rows, examExportRow{
				CourseID:     exam.CourseID,
				CourseName:   exam.CourseName,
				ExamDate:     exam.ExamDate.Format("2006-01-02"),
				StartTime:    exam.StartTime,
				EndTime:      exam.EndTime,
				RoomID:       exam.RoomID,
				RoomName:     exam.RoomName,
				StudentCount: exam.StudentCount,
				Mandatory:    exam.MandatoryStatus,
				Professors:   exam.ProfessorIDs,
			})
		}
		payload, err := s.csv.Render(&rows)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Filename: base + ".csv", ContentType: "text/csv", Data: payload}, nil

	case "pdf":
		dataset := export.Dataset{
			Headers: []string{"Course", "Date", "Start", "End", "Room", "Students"},
		}
		for _, exam := range detail.Exams {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Course":   exam.CourseName,
				"Date":     exam.ExamDate.Format("2006-01-02"),
				"Start":    exam.StartTime,
				"End":      exam.EndTime,
				"Room":     exam.RoomName,
				"Students": fmt.Sprintf("%d", exam.StudentCount),
			})
		}
		title := fmt.Sprintf("%s exam session %s", detail.Schedule.ExamSession, detail.Schedule.AcademicYear)
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Filename: base + ".pdf", ContentType: "application/pdf", Data: payload}, nil

	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
