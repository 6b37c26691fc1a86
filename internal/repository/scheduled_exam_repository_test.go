package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

func TestScheduledExamRepositoryInsertBatch(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduledExamRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scheduled_exams")).
		WillReturnResult(sqlmock.NewResult(2, 2))

	exams := []models.ScheduledExamRecord{
		{ScheduleID: "sched-1", ScheduledExamID: "cs101_20250602_0800", CourseID: "cs101", ExamDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), StartTime: "08:00", EndTime: "10:00", RoomID: "amph-1"},
		{ScheduleID: "sched-1", ScheduledExamID: "cs201_20250602_1030", CourseID: "cs201", ExamDate: time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), StartTime: "10:30", EndTime: "12:30", RoomID: "amph-1"},
	}
	err := repo.InsertBatch(context.Background(), nil, exams)
	require.NoError(t, err)
	assert.NotEmpty(t, exams[0].ID)
	assert.False(t, exams[0].CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledExamRepositoryInsertBatchEmpty(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduledExamRepository(db)

	require.NoError(t, repo.InsertBatch(context.Background(), nil, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduledExamRepositoryInsertBatchRequiresScheduleID(t *testing.T) {
	db, _, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduledExamRepository(db)

	err := repo.InsertBatch(context.Background(), nil, []models.ScheduledExamRecord{{ScheduledExamID: "cs101_20250602_0800"}})
	require.Error(t, err)
}

func TestScheduledExamRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newScheduleRepoMock(t)
	defer cleanup()
	repo := NewScheduledExamRepository(db)

	rows := sqlmock.NewRows([]string{"id", "schedule_id", "scheduled_exam_id", "course_id", "course_name", "exam_date", "start_time", "end_time", "room_id", "room_name", "room_capacity", "student_count", "mandatory_status", "professor_ids", "created_at"}).
		AddRow("row-1", "sched-1", "cs101_20250602_0800", "cs101", "Intro to Programming", time.Now(), "08:00", "10:00", "amph-1", "Amphitheatre 1", 200, 120, "MANDATORY", "prof-1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM scheduled_exams WHERE schedule_id = $1 ORDER BY exam_date, start_time, room_id")).
		WithArgs("sched-1").
		WillReturnRows(rows)

	exams, err := repo.ListBySchedule(context.Background(), "sched-1")
	require.NoError(t, err)
	require.Len(t, exams, 1)
	assert.Equal(t, "cs101", exams[0].CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
