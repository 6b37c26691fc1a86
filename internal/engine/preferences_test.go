package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

func placedExam() models.ScheduledExam {
	return models.ScheduledExam{
		CourseID:  "cs101",
		ExamDate:  models.NewDate(2025, time.June, 3),
		StartTime: 9 * 60,
		EndTime:   11 * 60,
		RoomID:    "room-1",
	}
}

func TestPreferenceSatisfiedVacuouslyTrue(t *testing.T) {
	assert.True(t, IsPreferenceSatisfied(placedExam(), nil))
	assert.True(t, IsPreferenceSatisfied(placedExam(), []models.ProfessorPreference{}))
}

func TestPreferenceSatisfiedByDate(t *testing.T) {
	prefs := []models.ProfessorPreference{{
		ProfessorID:    "prof-1",
		CourseID:       "cs101",
		PreferredDates: []models.Date{models.NewDate(2025, time.June, 3)},
	}}
	assert.True(t, IsPreferenceSatisfied(placedExam(), prefs))

	prefs[0].PreferredDates = []models.Date{models.NewDate(2025, time.June, 5)}
	assert.False(t, IsPreferenceSatisfied(placedExam(), prefs))
}

func TestPreferenceSatisfiedByTimeWindow(t *testing.T) {
	prefs := []models.ProfessorPreference{{
		ProfessorID:        "prof-1",
		CourseID:           "cs101",
		PreferredTimeSlots: []models.TimeWindow{{StartTime: 8 * 60, EndTime: 12 * 60}},
	}}
	assert.True(t, IsPreferenceSatisfied(placedExam(), prefs), "exam window inside preferred window")

	prefs[0].PreferredTimeSlots = []models.TimeWindow{{StartTime: 10 * 60, EndTime: 12 * 60}}
	assert.False(t, IsPreferenceSatisfied(placedExam(), prefs), "partial containment is not a match")
}

func TestPreferenceSatisfiedByRoom(t *testing.T) {
	prefs := []models.ProfessorPreference{{
		ProfessorID:    "prof-1",
		CourseID:       "cs101",
		PreferredRooms: []string{"room-9", "room-1"},
	}}
	assert.True(t, IsPreferenceSatisfied(placedExam(), prefs))
}

func TestPreferenceAnyOfManyMatches(t *testing.T) {
	prefs := []models.ProfessorPreference{
		{
			ProfessorID:    "prof-1",
			CourseID:       "cs101",
			PreferredDates: []models.Date{models.NewDate(2025, time.June, 6)},
		},
		{
			ProfessorID:    "prof-2",
			CourseID:       "cs101",
			PreferredRooms: []string{"room-1"},
		},
	}
	assert.True(t, IsPreferenceSatisfied(placedExam(), prefs), "one matching preference of several is enough")
}

func TestPreferenceUnavailableFieldsIgnored(t *testing.T) {
	// The reference solver never consults unavailable dates or windows; the
	// check must not start treating them as blockers.
	prefs := []models.ProfessorPreference{{
		ProfessorID:          "prof-1",
		CourseID:             "cs101",
		PreferredRooms:       []string{"room-1"},
		UnavailableDates:     []models.Date{models.NewDate(2025, time.June, 3)},
		UnavailableTimeSlots: []models.TimeWindow{{StartTime: 9 * 60, EndTime: 11 * 60}},
	}}
	assert.True(t, IsPreferenceSatisfied(placedExam(), prefs))
}
