package engine

import (
	"github.com/samber/lo"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

// SelectRoom picks a feasible room for the course: enough capacity, required
// equipment present, accessible when the course demands it. Among survivors
// the smallest sufficient capacity wins, ties resolved by input order. Room
// choice is independent of slot availability; a room selected here may still
// fail every slot check later and the engine does not retry with another.
func SelectRoom(course models.Course, rooms []models.Room) (models.Room, bool) {
	candidates := lo.Filter(rooms, func(room models.Room, _ int) bool {
		return room.Capacity >= course.StudentCount
	})
	if len(candidates) == 0 {
		return models.Room{}, false
	}

	if len(course.RequiredEquipment) > 0 {
		candidates = lo.Filter(candidates, func(room models.Room, _ int) bool {
			return lo.Every(room.Equipment, course.RequiredEquipment)
		})
	}
	if course.AccessibilityRequired {
		candidates = lo.Filter(candidates, func(room models.Room, _ int) bool {
			return room.Accessibility
		})
	}
	if len(candidates) == 0 {
		return models.Room{}, false
	}

	tightest := lo.MinBy(candidates, func(a, b models.Room) bool {
		return a.Capacity < b.Capacity
	})
	return tightest, true
}
