package engine

import (
	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

// minimumGapFloor guards the inner time-stepping loop: a non-positive step
// would never advance the candidate start and the scan would not terminate.
const minimumGapFloor = 1

// Slot is a concrete date and half-open time window for one exam.
type Slot struct {
	Date  models.Date
	Start models.TimeOfDay
	End   models.TimeOfDay
}

// FindSlot scans the exam period in day-major, time-minor order and returns
// the first window where the room and every professor of the course are free.
// The scan is deterministic: identical input yields the identical slot.
func FindSlot(course models.Course, room models.Room, period models.ExamPeriod, constraints models.InstitutionalConstraints, index *ConflictIndex) (Slot, bool) {
	duration := course.EstimatedDuration
	hours := constraints.WorkingHours
	step := constraints.MinimumGapMinutes
	if step < minimumGapFloor {
		step = minimumGapFloor
	}

	for date := period.StartDate; !date.After(period.EndDate); date = date.AddDays(1) {
		if !constraints.AllowWeekendExams && date.IsWeekend() {
			continue
		}

		for start := hours.StartTime; ; start = start.AddMinutes(step) {
			end := start.AddMinutes(duration)
			if end > hours.EndTime {
				break
			}
			if index.RoomConflict(room.RoomID, date, start, end) {
				continue
			}
			if professorBusy(course.ProfessorIDs, date, start, end, index) {
				continue
			}
			return Slot{Date: date, Start: start, End: end}, true
		}
	}

	return Slot{}, false
}

func professorBusy(professorIDs []string, date models.Date, start, end models.TimeOfDay, index *ConflictIndex) bool {
	for _, professorID := range professorIDs {
		if index.ProfessorConflict(professorID, date, start, end) {
			return true
		}
	}
	return false
}
