// Package engine implements the exam allocation core: course ordering, room
// selection, first-fit slot search with conflict detection, preference
// evaluation and quality scoring.
//
// The engine is greedy and never backtracks: room choice and slot choice are
// made independently and are irrevocable, so an early elective can starve a
// later mandatory course out of the only fitting slot. That behaviour is
// intentional and matched by the tests; the engine produces one feasible or
// partial schedule per call, not an optimal one.
package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

const algorithmName = "Greedy Constraint Satisfaction"

// Scheduler runs the allocation pipeline. It holds no state across runs;
// every call builds its own conflict index, so one Scheduler may serve
// concurrent callers.
type Scheduler struct {
	logger *zap.Logger
}

// NewScheduler constructs a Scheduler.
func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{logger: logger}
}

// Schedule places every course of the instance that it can, collecting one
// CRITICAL violation per course it cannot. A structurally invalid instance
// yields success=false with empty collections and zeroed metrics, never a
// partially populated success result.
func (s *Scheduler) Schedule(instance models.SchedulingInstance) models.SchedulingResult {
	startedAt := time.Now()

	if err := validateInstance(instance); err != nil {
		s.logger.Error("scheduling instance rejected", zap.Error(err))
		return models.SchedulingResult{
			Success:        false,
			ErrorMessage:   err.Error(),
			ScheduledExams: []models.ScheduledExam{},
			Violations:     []models.ConstraintViolation{},
			Metrics: models.SchedulingMetrics{
				ProcessingTimeMs: time.Since(startedAt).Milliseconds(),
			},
		}
	}

	run := &schedulingRun{
		instance: instance,
		index:    NewConflictIndex(),
		placed:   []models.ScheduledExam{},
		failed:   []models.ConstraintViolation{},
	}

	ordered := orderCourses(instance.Courses)
	s.logger.Info("schedule generation started",
		zap.Int("courses", len(ordered)),
		zap.Int("rooms", len(instance.AvailableRooms)),
		zap.Int("preferences", len(instance.ProfessorPreferences)),
	)

	for _, course := range ordered {
		run.placeCourse(course)
	}

	processingTime := time.Since(startedAt).Milliseconds()
	metrics := computeMetrics(run.placed, run.failed, instance.ExamPeriod, run.stats, processingTime)
	quality := computeQualityScore(len(run.placed), len(instance.Courses), len(run.failed), run.stats)

	s.logger.Info("schedule generation complete",
		zap.Int("scheduled", len(run.placed)),
		zap.Int("violations", len(run.failed)),
		zap.Float64("qualityScore", quality),
		zap.Int64("processingTimeMs", processingTime),
	)

	return models.SchedulingResult{
		Success:        true,
		ScheduledExams: run.placed,
		Violations:     run.failed,
		Metrics:        metrics,
		QualityScore:   quality,
		AlgorithmUsed:  algorithmName,
	}
}

// schedulingRun is the per-call mutable working set. Nothing in it survives
// the run or is visible to concurrent runs.
type schedulingRun struct {
	instance models.SchedulingInstance
	index    *ConflictIndex
	placed   []models.ScheduledExam
	failed   []models.ConstraintViolation
	stats    runStats
}

func (r *schedulingRun) placeCourse(course models.Course) {
	preferences := lo.Filter(r.instance.ProfessorPreferences, func(pref models.ProfessorPreference, _ int) bool {
		return pref.CourseID == course.CourseID
	})
	r.stats.preferencesConsidered += len(preferences)

	room, ok := SelectRoom(course, r.instance.AvailableRooms)
	if !ok {
		r.failed = append(r.failed, models.ConstraintViolation{
			ViolationType:       models.ViolationNoSuitableRoom,
			Severity:            models.SeverityCritical,
			Description:         fmt.Sprintf("No suitable room found for course %s with %d students", course.CourseID, course.StudentCount),
			AffectedExamIDs:     []string{course.CourseID},
			AffectedStudents:    course.StudentCount,
			SuggestedResolution: "Add more rooms or reduce class size",
		})
		return
	}

	slot, ok := FindSlot(course, room, r.instance.ExamPeriod, r.instance.InstitutionalConstraints, r.index)
	if !ok {
		r.failed = append(r.failed, models.ConstraintViolation{
			ViolationType:       models.ViolationNoSuitableTimeSlot,
			Severity:            models.SeverityCritical,
			Description:         fmt.Sprintf("No suitable time slot found for course %s", course.CourseID),
			AffectedExamIDs:     []string{course.CourseID},
			AffectedStudents:    course.StudentCount,
			SuggestedResolution: "Extend exam period or reduce constraints",
		})
		return
	}

	exam := models.ScheduledExam{
		ScheduledExamID: fmt.Sprintf("%s_%s_%02d%02d", course.CourseID, slot.Date.Compact(), int(slot.Start)/60, int(slot.Start)%60),
		CourseID:        course.CourseID,
		CourseName:      course.CourseName,
		ExamDate:        slot.Date,
		StartTime:       slot.Start,
		EndTime:         slot.End,
		RoomID:          room.RoomID,
		RoomName:        room.RoomName,
		RoomCapacity:    room.Capacity,
		StudentCount:    course.StudentCount,
		MandatoryStatus: course.MandatoryStatus,
		ProfessorIDs:    course.ProfessorIDs,
	}

	r.placed = append(r.placed, exam)
	r.index.Reserve(exam)

	if IsPreferenceSatisfied(exam, preferences) {
		r.stats.preferencesSatisfied++
	}
}

// orderCourses returns the placement order: mandatory before elective, larger
// enrolments first within a tier, input order on ties. The sort must stay
// stable so that repeated runs produce identical output.
func orderCourses(courses []models.Course) []models.Course {
	ordered := make([]models.Course, len(courses))
	copy(ordered, courses)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].MandatoryStatus != ordered[j].MandatoryStatus {
			return ordered[i].MandatoryStatus == models.MandatoryStatusMandatory
		}
		return ordered[i].StudentCount > ordered[j].StudentCount
	})
	return ordered
}

func validateInstance(instance models.SchedulingInstance) error {
	period := instance.ExamPeriod
	if period.StartDate.IsZero() || period.EndDate.IsZero() {
		return fmt.Errorf("exam period start and end dates are required")
	}
	if period.StartDate.After(period.EndDate) {
		return fmt.Errorf("exam period start date %s is after end date %s", period.StartDate, period.EndDate)
	}
	for _, course := range instance.Courses {
		if course.CourseID == "" {
			return fmt.Errorf("course with empty id in instance")
		}
		if course.StudentCount <= 0 {
			return fmt.Errorf("course %s has non-positive student count %d", course.CourseID, course.StudentCount)
		}
		if len(course.ProfessorIDs) == 0 {
			return fmt.Errorf("course %s has no professors", course.CourseID)
		}
		if course.EstimatedDuration <= 0 {
			return fmt.Errorf("course %s has non-positive duration %d", course.CourseID, course.EstimatedDuration)
		}
		if course.MandatoryStatus != models.MandatoryStatusMandatory && course.MandatoryStatus != models.MandatoryStatusElective {
			return fmt.Errorf("course %s has unknown mandatory status %q", course.CourseID, course.MandatoryStatus)
		}
	}
	for _, room := range instance.AvailableRooms {
		if room.RoomID == "" {
			return fmt.Errorf("room with empty id in instance")
		}
		if room.Capacity <= 0 {
			return fmt.Errorf("room %s has non-positive capacity %d", room.RoomID, room.Capacity)
		}
	}
	return nil
}
