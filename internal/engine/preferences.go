package engine

import (
	"github.com/samber/lo"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

// IsPreferenceSatisfied judges whether a placed exam honours at least one of
// the preferences declared for its course. An empty preference list counts as
// satisfied. A single preference matches when the exam date is one of its
// preferred dates, the exam window lies fully inside one of its preferred
// time slots, or the assigned room is one of its preferred rooms. Unavailable
// dates and windows on a preference are not consulted here.
func IsPreferenceSatisfied(exam models.ScheduledExam, preferences []models.ProfessorPreference) bool {
	if len(preferences) == 0 {
		return true
	}
	return lo.SomeBy(preferences, func(pref models.ProfessorPreference) bool {
		return matchesPreference(exam, pref)
	})
}

func matchesPreference(exam models.ScheduledExam, pref models.ProfessorPreference) bool {
	if lo.Contains(pref.PreferredDates, exam.ExamDate) {
		return true
	}
	if lo.SomeBy(pref.PreferredTimeSlots, func(window models.TimeWindow) bool {
		return window.Contains(exam.StartTime, exam.EndTime)
	}) {
		return true
	}
	return lo.Contains(pref.PreferredRooms, exam.RoomID)
}
