package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

// ScheduledExamRepository persists the exams belonging to a stored schedule.
type ScheduledExamRepository struct {
	db *sqlx.DB
}

// NewScheduledExamRepository constructs repository.
func NewScheduledExamRepository(db *sqlx.DB) *ScheduledExamRepository {
	return &ScheduledExamRepository{db: db}
}

func (r *ScheduledExamRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// InsertBatch stores all exams of one schedule.
func (r *ScheduledExamRepository) InsertBatch(ctx context.Context, exec sqlx.ExtContext, exams []models.ScheduledExamRecord) error {
	if len(exams) == 0 {
		return nil
	}
	now := time.Now().UTC()
	for i := range exams {
		if exams[i].ID == "" {
			exams[i].ID = uuid.NewString()
		}
		if exams[i].ScheduleID == "" {
			return fmt.Errorf("schedule_id is required for scheduled exam %s", exams[i].ScheduledExamID)
		}
		if exams[i].CreatedAt.IsZero() {
			exams[i].CreatedAt = now
		}
	}

	target := r.exec(exec)
	const query = `
INSERT INTO scheduled_exams (id, schedule_id, scheduled_exam_id, course_id, course_name, exam_date, start_time, end_time, room_id, room_name, room_capacity, student_count, mandatory_status, professor_ids, created_at)
VALUES (:id, :schedule_id, :scheduled_exam_id, :course_id, :course_name, :exam_date, :start_time, :end_time, :room_id, :room_name, :room_capacity, :student_count, :mandatory_status, :professor_ids, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, target, query, exams); err != nil {
		return fmt.Errorf("insert scheduled exams: %w", err)
	}
	return nil
}

// ListBySchedule returns the exams of a schedule in chronological order.
func (r *ScheduledExamRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduledExamRecord, error) {
	const query = `SELECT id, schedule_id, scheduled_exam_id, course_id, course_name, exam_date, start_time, end_time, room_id, room_name, room_capacity, student_count, mandatory_status, professor_ids, created_at
FROM scheduled_exams WHERE schedule_id = $1 ORDER BY exam_date, start_time, room_id`
	var exams []models.ScheduledExamRecord
	if err := r.db.SelectContext(ctx, &exams, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list scheduled exams: %w", err)
	}
	return exams, nil
}
