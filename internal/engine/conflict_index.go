package engine

import (
	"sort"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

// interval is a half-open [start, end) slice of a day, in minutes.
type interval struct {
	start models.TimeOfDay
	end   models.TimeOfDay
}

// overlaps reports whether two half-open intervals intersect.
func (iv interval) overlaps(other interval) bool {
	return iv.start < other.end && other.start < iv.end
}

// ConflictIndex tracks reserved intervals per room and per professor for the
// duration of one scheduling run. It is built fresh for every run and must
// not be shared across runs.
type ConflictIndex struct {
	rooms      map[string]map[models.Date][]interval
	professors map[string]map[models.Date][]interval
}

// NewConflictIndex returns an empty index.
func NewConflictIndex() *ConflictIndex {
	return &ConflictIndex{
		rooms:      make(map[string]map[models.Date][]interval),
		professors: make(map[string]map[models.Date][]interval),
	}
}

// Reserve records a placed exam on both resource axes. It must be called
// exactly once per placed exam, before the next course is considered.
func (c *ConflictIndex) Reserve(exam models.ScheduledExam) {
	iv := interval{start: exam.StartTime, end: exam.EndTime}
	c.rooms[exam.RoomID] = reserveOn(c.rooms[exam.RoomID], exam.ExamDate, iv)
	for _, professorID := range exam.ProfessorIDs {
		c.professors[professorID] = reserveOn(c.professors[professorID], exam.ExamDate, iv)
	}
}

// RoomConflict reports whether [start, end) on the given date intersects any
// reserved interval for the room.
func (c *ConflictIndex) RoomConflict(roomID string, date models.Date, start, end models.TimeOfDay) bool {
	return hasOverlap(c.rooms[roomID], date, interval{start: start, end: end})
}

// ProfessorConflict reports whether [start, end) on the given date intersects
// any reserved interval for the professor.
func (c *ConflictIndex) ProfessorConflict(professorID string, date models.Date, start, end models.TimeOfDay) bool {
	return hasOverlap(c.professors[professorID], date, interval{start: start, end: end})
}

func reserveOn(byDate map[models.Date][]interval, date models.Date, iv interval) map[models.Date][]interval {
	if byDate == nil {
		byDate = make(map[models.Date][]interval)
	}
	day := byDate[date]
	at := sort.Search(len(day), func(i int) bool { return day[i].start >= iv.start })
	day = append(day, interval{})
	copy(day[at+1:], day[at:])
	day[at] = iv
	byDate[date] = day
	return byDate
}

func hasOverlap(byDate map[models.Date][]interval, date models.Date, iv interval) bool {
	if byDate == nil {
		return false
	}
	for _, reserved := range byDate[date] {
		if reserved.start >= iv.end {
			break
		}
		if reserved.overlaps(iv) {
			return true
		}
	}
	return false
}
