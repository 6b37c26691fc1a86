package engine

import (
	"github.com/samber/lo"

	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
)

const (
	preferenceBonusWeight  = 0.3
	violationPenaltyWeight = 0.1
	qualityScoreLowerBound = 0.0
	qualityScoreUpperBound = 1.0
)

// runStats accumulates per-run counters owned by the orchestrator.
type runStats struct {
	preferencesConsidered int
	preferencesSatisfied  int
}

// computeMetrics derives the run summary. The preference satisfaction rate
// keeps the reference solver's accounting: the denominator counts preference
// records examined while the numerator counts placed courses judged
// satisfied, and a course without preferences still counts as satisfied.
func computeMetrics(placed []models.ScheduledExam, violations []models.ConstraintViolation, period models.ExamPeriod, stats runStats, processingTimeMs int64) models.SchedulingMetrics {
	var satisfactionRate float64
	if stats.preferencesConsidered > 0 {
		satisfactionRate = float64(stats.preferencesSatisfied) / float64(stats.preferencesConsidered)
	}

	var utilization float64
	if len(placed) > 0 {
		totalCapacity := lo.SumBy(placed, func(exam models.ScheduledExam) int { return exam.RoomCapacity })
		totalStudents := lo.SumBy(placed, func(exam models.ScheduledExam) int { return exam.StudentCount })
		if totalCapacity > 0 {
			utilization = float64(totalStudents) / float64(totalCapacity)
		}
	}

	return models.SchedulingMetrics{
		TotalCoursesScheduled:               len(placed),
		TotalProfessorPreferencesConsidered: stats.preferencesConsidered,
		PreferencesSatisfied:                stats.preferencesSatisfied,
		PreferenceSatisfactionRate:          satisfactionRate,
		TotalConflicts:                      len(violations),
		ResolvedConflicts:                   0,
		RoomUtilizationRate:                 utilization,
		AverageStudentExamsPerDay:           float64(len(placed)) / float64(period.TotalDays()),
		ProcessingTimeMs:                    processingTimeMs,
	}
}

// computeQualityScore combines placement completeness, preference
// satisfaction and violation count into a single [0, 1] score. An empty
// result short-circuits to zero, which also covers instances with no courses.
func computeQualityScore(placedCount, totalCourses, violationCount int, stats runStats) float64 {
	if placedCount == 0 {
		return 0.0
	}

	baseScore := float64(placedCount) / float64(totalCourses)

	var preferenceBonus float64
	if stats.preferencesConsidered > 0 {
		preferenceBonus = float64(stats.preferencesSatisfied) / float64(stats.preferencesConsidered) * preferenceBonusWeight
	}

	penalty := float64(violationCount) * violationPenaltyWeight

	score := baseScore + preferenceBonus - penalty
	if score < qualityScoreLowerBound {
		return qualityScoreLowerBound
	}
	if score > qualityScoreUpperBound {
		return qualityScoreUpperBound
	}
	return score
}
