package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

// Monday 2025-06-02 through Friday 2025-06-06.
func weekPeriod() models.ExamPeriod {
	return models.ExamPeriod{
		StartDate: models.NewDate(2025, time.June, 2),
		EndDate:   models.NewDate(2025, time.June, 6),
	}
}

func defaultConstraints() models.InstitutionalConstraints {
	return models.InstitutionalConstraints{
		WorkingHours: models.WorkingHours{
			StartTime: 8 * 60,
			EndTime:   18 * 60,
		},
		MinimumGapMinutes: 30,
		AllowWeekendExams: false,
	}
}

func TestFindSlotFirstFit(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 120, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}

	slot, ok := FindSlot(course, room, weekPeriod(), defaultConstraints(), NewConflictIndex())
	require.True(t, ok)
	assert.Equal(t, models.NewDate(2025, time.June, 2), slot.Date)
	assert.Equal(t, models.TimeOfDay(8*60), slot.Start)
	assert.Equal(t, models.TimeOfDay(10*60), slot.End)
}

func TestFindSlotStepsPastConflicts(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 120, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	index := NewConflictIndex()
	// Occupy 08:00-10:00; with a 30 minute step the scan lands on 10:00.
	index.Reserve(reservedExam("room-1", []string{"prof-9"}, models.NewDate(2025, time.June, 2), 8*60, 10*60))

	slot, ok := FindSlot(course, room, weekPeriod(), defaultConstraints(), index)
	require.True(t, ok)
	assert.Equal(t, models.NewDate(2025, time.June, 2), slot.Date)
	assert.Equal(t, models.TimeOfDay(10*60), slot.Start)
}

func TestFindSlotProfessorConflictMovesSlot(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 60, ProfessorIDs: []string{"prof-1", "prof-2"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	index := NewConflictIndex()
	// prof-2 is examining in another room 08:00-09:00.
	index.Reserve(reservedExam("room-2", []string{"prof-2"}, models.NewDate(2025, time.June, 2), 8*60, 9*60))

	slot, ok := FindSlot(course, room, weekPeriod(), defaultConstraints(), index)
	require.True(t, ok)
	assert.Equal(t, models.TimeOfDay(9*60), slot.Start, "any professor of the course blocks the window")
}

func TestFindSlotRollsToNextDay(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 600, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	index := NewConflictIndex()
	// Monday has a morning reservation; a 10h exam only fits a day that is
	// completely free.
	index.Reserve(reservedExam("room-1", []string{"prof-9"}, models.NewDate(2025, time.June, 2), 8*60, 9*60))

	slot, ok := FindSlot(course, room, weekPeriod(), defaultConstraints(), index)
	require.True(t, ok)
	assert.Equal(t, models.NewDate(2025, time.June, 3), slot.Date)
}

func TestFindSlotDurationExceedsWorkingHours(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 300, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	constraints := defaultConstraints()
	constraints.WorkingHours = models.WorkingHours{StartTime: 9 * 60, EndTime: 11 * 60}

	_, ok := FindSlot(course, room, weekPeriod(), constraints, NewConflictIndex())
	assert.False(t, ok)
}

func TestFindSlotSkipsWeekends(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 60, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	// Saturday and Sunday only.
	period := models.ExamPeriod{
		StartDate: models.NewDate(2025, time.June, 7),
		EndDate:   models.NewDate(2025, time.June, 8),
	}

	constraints := defaultConstraints()
	_, ok := FindSlot(course, room, period, constraints, NewConflictIndex())
	assert.False(t, ok)

	constraints.AllowWeekendExams = true
	slot, ok := FindSlot(course, room, period, constraints, NewConflictIndex())
	require.True(t, ok)
	assert.Equal(t, models.NewDate(2025, time.June, 7), slot.Date)
}

func TestFindSlotZeroGapCoercedToFloor(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 60, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	constraints := defaultConstraints()
	constraints.MinimumGapMinutes = 0
	index := NewConflictIndex()
	index.Reserve(reservedExam("room-1", []string{"prof-9"}, models.NewDate(2025, time.June, 2), 8*60, 9*60))

	slot, ok := FindSlot(course, room, weekPeriod(), constraints, index)
	require.True(t, ok, "a zero gap must still terminate")
	assert.Equal(t, models.TimeOfDay(9*60), slot.Start)
}

func TestFindSlotSingleDayPeriod(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 60, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	day := models.NewDate(2025, time.June, 4)
	period := models.ExamPeriod{StartDate: day, EndDate: day}

	slot, ok := FindSlot(course, room, period, defaultConstraints(), NewConflictIndex())
	require.True(t, ok)
	assert.Equal(t, day, slot.Date)
}

func TestFindSlotExamMayEndExactlyAtClose(t *testing.T) {
	course := models.Course{CourseID: "cs101", EstimatedDuration: 120, ProfessorIDs: []string{"prof-1"}}
	room := models.Room{RoomID: "room-1", Capacity: 50}
	constraints := defaultConstraints()
	constraints.WorkingHours = models.WorkingHours{StartTime: 9 * 60, EndTime: 11 * 60}

	slot, ok := FindSlot(course, room, weekPeriod(), constraints, NewConflictIndex())
	require.True(t, ok)
	assert.Equal(t, constraints.WorkingHours.EndTime, slot.End)
}
