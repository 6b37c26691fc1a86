package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finki-scheduling/exam-scheduling-api/internal/dto"
	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

func newScheduleRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func scheduleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "exam_session_period_id", "academic_year", "exam_session", "start_date", "end_date", "version", "status", "quality_score", "meta", "created_at", "updated_at"})
}

func TestScheduleRepositoryCreateVersioned(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM exam_session_schedules WHERE exam_session_period_id = $1")).
		WithArgs("2025-JUNE").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO exam_session_schedules")).
		WithArgs(sqlmock.AnyArg(), "2025-JUNE", "2024/2025", "JUNE", sqlmock.AnyArg(), sqlmock.AnyArg(), 3, string(models.ScheduleStatusDraft), 0.92, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	payload := &models.ExamSessionSchedule{
		ExamSessionPeriodID: "2025-JUNE",
		AcademicYear:        "2024/2025",
		ExamSession:         "JUNE",
		StartDate:           time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC),
		EndDate:             time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC),
		QualityScore:        0.92,
		Meta:                types.JSONText(`{"metrics":{}}`),
	}
	err := repo.CreateVersioned(context.Background(), nil, payload)
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Version)
	assert.NotEmpty(t, payload.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCreateVersionedRequiresPeriod(t *testing.T) {
	db, _, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	err := repo.CreateVersioned(context.Background(), nil, &models.ExamSessionSchedule{})
	require.Error(t, err)
}

func TestScheduleRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM exam_session_schedules WHERE academic_year = $1 AND status = $2")).
		WithArgs("2024/2025", "DRAFT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := scheduleRows().
		AddRow("sched-1", "2025-JUNE", "2024/2025", "JUNE", time.Now(), time.Now(), 1, string(models.ScheduleStatusDraft), 0.9, types.JSONText(`{}`), time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, version DESC LIMIT $3 OFFSET $4")).
		WithArgs("2024/2025", "DRAFT", 20, 0).
		WillReturnRows(rows)

	list, total, err := repo.List(context.Background(), dto.ScheduleQuery{AcademicYear: "2024/2025", Status: "DRAFT"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "sched-1", list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM exam_session_schedules WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_session_schedules WHERE id = $1")).
		WithArgs("sched-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "sched-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM exam_session_schedules WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestScheduleRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE exam_session_schedules SET status = $1, updated_at = $2 WHERE id = $3")).
		WithArgs(string(models.ScheduleStatusPublished), sqlmock.AnyArg(), "sched-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), nil, "sched-1", models.ScheduleStatusPublished))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryArchivePublished(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("AND id <> $5")).
		WithArgs(string(models.ScheduleStatusArchived), sqlmock.AnyArg(), "2025-JUNE", string(models.ScheduleStatusPublished), "sched-2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ArchivePublished(context.Background(), nil, "2025-JUNE", "sched-2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCountExams(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"schedule_id", "exam_count"}).
		AddRow("sched-1", 12).
		AddRow("sched-2", 7)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY schedule_id")).
		WithArgs("sched-1", "sched-2").
		WillReturnRows(rows)

	counts, err := repo.CountExams(context.Background(), []string{"sched-1", "sched-2"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sched-1": 12, "sched-2": 7}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryCountExamsEmpty(t *testing.T) {
	db, _, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	counts, err := repo.CountExams(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, counts)
}
