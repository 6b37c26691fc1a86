package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleStatus represents lifecycle phases for persisted exam schedules.
type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "DRAFT"
	ScheduleStatusPublished ScheduleStatus = "PUBLISHED"
	ScheduleStatusArchived  ScheduleStatus = "ARCHIVED"
)

// ExamSessionSchedule is one stored, versioned timetable for an exam session.
// Meta carries the run's metrics and quality score as JSON.
type ExamSessionSchedule struct {
	ID                  string         `db:"id" json:"id"`
	ExamSessionPeriodID string         `db:"exam_session_period_id" json:"examSessionPeriodId"`
	AcademicYear        string         `db:"academic_year" json:"academicYear"`
	ExamSession         string         `db:"exam_session" json:"examSession"`
	StartDate           time.Time      `db:"start_date" json:"startDate"`
	EndDate             time.Time      `db:"end_date" json:"endDate"`
	Version             int            `db:"version" json:"version"`
	Status              ScheduleStatus `db:"status" json:"status"`
	QualityScore        float64        `db:"quality_score" json:"qualityScore"`
	Meta                types.JSONText `db:"meta" json:"meta"`
	CreatedAt           time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updatedAt"`
}

// ScheduledExamRecord is the stored form of one placed exam.
type ScheduledExamRecord struct {
	ID              string    `db:"id" json:"id"`
	ScheduleID      string    `db:"schedule_id" json:"scheduleId"`
	ScheduledExamID string    `db:"scheduled_exam_id" json:"scheduledExamId"`
	CourseID        string    `db:"course_id" json:"courseId"`
	CourseName      string    `db:"course_name" json:"courseName"`
	ExamDate        time.Time `db:"exam_date" json:"examDate"`
	StartTime       string    `db:"start_time" json:"startTime"`
	EndTime         string    `db:"end_time" json:"endTime"`
	RoomID          string    `db:"room_id" json:"roomId"`
	RoomName        string    `db:"room_name" json:"roomName"`
	RoomCapacity    int       `db:"room_capacity" json:"roomCapacity"`
	StudentCount    int       `db:"student_count" json:"studentCount"`
	MandatoryStatus string    `db:"mandatory_status" json:"mandatoryStatus"`
	ProfessorIDs    string    `db:"professor_ids" json:"professorIds"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// Pagination carries list paging metadata in response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
