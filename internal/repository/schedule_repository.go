package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/finki-scheduling/exam-scheduling-api/internal/dto"
	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

// ScheduleRepository persists versioned exam session schedules.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateVersioned inserts a schedule assigning the next version for its exam
// session period.
func (r *ScheduleRepository) CreateVersioned(ctx context.Context, exec sqlx.ExtContext, schedule *models.ExamSessionSchedule) error {
	if schedule == nil {
		return fmt.Errorf("schedule payload is nil")
	}
	if schedule.ExamSessionPeriodID == "" {
		return fmt.Errorf("exam_session_period_id is required")
	}
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.Status == "" {
		schedule.Status = models.ScheduleStatusDraft
	}
	if len(schedule.Meta) == 0 {
		schedule.Meta = types.JSONText(`{}`)
	}
	now := time.Now().UTC()
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = now
	}
	schedule.UpdatedAt = now

	target := r.exec(exec)

	const nextVersionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM exam_session_schedules WHERE exam_session_period_id = $1`
	if err := sqlx.GetContext(ctx, target, &schedule.Version, nextVersionQuery, schedule.ExamSessionPeriodID); err != nil {
		return fmt.Errorf("compute next schedule version: %w", err)
	}

	const insertQuery = `
INSERT INTO exam_session_schedules (id, exam_session_period_id, academic_year, exam_session, start_date, end_date, version, status, quality_score, meta, created_at, updated_at)
VALUES (:id, :exam_session_period_id, :academic_year, :exam_session, :start_date, :end_date, :version, :status, :quality_score, :meta, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, target, insertQuery, schedule); err != nil {
		return fmt.Errorf("insert exam session schedule: %w", err)
	}
	return nil
}

const scheduleColumns = `id, exam_session_period_id, academic_year, exam_session, start_date, end_date, version, status, quality_score, meta, created_at, updated_at`

// List returns schedules matching the query, newest version first, with the
// total row count for pagination.
func (r *ScheduleRepository) List(ctx context.Context, query dto.ScheduleQuery) ([]models.ExamSessionSchedule, int, error) {
	conditions := []string{}
	args := []interface{}{}
	if query.ExamSessionPeriodID != "" {
		args = append(args, query.ExamSessionPeriodID)
		conditions = append(conditions, fmt.Sprintf("exam_session_period_id = $%d", len(args)))
	}
	if query.AcademicYear != "" {
		args = append(args, query.AcademicYear)
		conditions = append(conditions, fmt.Sprintf("academic_year = $%d", len(args)))
	}
	if query.ExamSession != "" {
		args = append(args, query.ExamSession)
		conditions = append(conditions, fmt.Sprintf("exam_session = $%d", len(args)))
	}
	if query.Status != "" {
		args = append(args, query.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM exam_session_schedules" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count exam session schedules: %w", err)
	}

	limit := query.PageSize
	if limit <= 0 {
		limit = 20
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)
	listQuery := fmt.Sprintf("SELECT %s FROM exam_session_schedules%s ORDER BY created_at DESC, version DESC LIMIT $%d OFFSET $%d",
		scheduleColumns, where, len(args)-1, len(args))

	var schedules []models.ExamSessionSchedule
	if err := r.db.SelectContext(ctx, &schedules, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list exam session schedules: %w", err)
	}
	return schedules, total, nil
}

// FindByID loads a schedule by its identifier.
func (r *ScheduleRepository) FindByID(ctx context.Context, id string) (*models.ExamSessionSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM exam_session_schedules WHERE id = $1", scheduleColumns)
	var schedule models.ExamSessionSchedule
	if err := r.db.GetContext(ctx, &schedule, query, id); err != nil {
		return nil, err
	}
	return &schedule, nil
}

// Delete removes a stored schedule version and its exams.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM exam_session_schedules WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete exam session schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("exam session schedule rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus updates the lifecycle status of a schedule.
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleStatus) error {
	target := r.exec(exec)
	const query = `UPDATE exam_session_schedules SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := target.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule status rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ArchivePublished demotes any published schedule of the exam session period
// except the given one.
func (r *ScheduleRepository) ArchivePublished(ctx context.Context, exec sqlx.ExtContext, examSessionPeriodID, exceptID string) error {
	target := r.exec(exec)
	const query = `UPDATE exam_session_schedules SET status = $1, updated_at = $2 WHERE exam_session_period_id = $3 AND status = $4 AND id <> $5`
	if _, err := target.ExecContext(ctx, query, models.ScheduleStatusArchived, time.Now().UTC(), examSessionPeriodID, models.ScheduleStatusPublished, exceptID); err != nil {
		return fmt.Errorf("archive published schedules: %w", err)
	}
	return nil
}

// CountExams returns the number of stored exams per schedule.
func (r *ScheduleRepository) CountExams(ctx context.Context, scheduleIDs []string) (map[string]int, error) {
	if len(scheduleIDs) == 0 {
		return map[string]int{}, nil
	}
	query, args, err := sqlx.In(`SELECT schedule_id, COUNT(*) AS exam_count FROM scheduled_exams WHERE schedule_id IN (?) GROUP BY schedule_id`, scheduleIDs)
	if err != nil {
		return nil, fmt.Errorf("build exam count query: %w", err)
	}
	query = r.db.Rebind(query)

	rows := []struct {
		ScheduleID string `db:"schedule_id"`
		ExamCount  int    `db:"exam_count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count scheduled exams: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.ScheduleID] = row.ExamCount
	}
	return counts, nil
}
