package dto

import "github.com/finki-scheduling/exam-scheduling-api/internal/models"

// ExamPeriodPayload is the inclusive session window of a generation request.
type ExamPeriodPayload struct {
	ExamSessionPeriodID string      `json:"examSessionPeriodId" validate:"required"`
	AcademicYear        string      `json:"academicYear" validate:"required"`
	ExamSession         string      `json:"examSession" validate:"required"`
	StartDate           models.Date `json:"startDate" validate:"required"`
	EndDate             models.Date `json:"endDate" validate:"required"`
}

// CoursePayload is one course to place.
type CoursePayload struct {
	CourseID              string                 `json:"courseId" validate:"required"`
	CourseName            string                 `json:"courseName"`
	StudentCount          int                    `json:"studentCount" validate:"required,min=1"`
	ProfessorIDs          []string               `json:"professorIds" validate:"required,min=1,dive,required"`
	MandatoryStatus       models.MandatoryStatus `json:"mandatoryStatus" validate:"required,oneof=MANDATORY ELECTIVE"`
	EstimatedDuration     int                    `json:"estimatedDuration" validate:"required,min=1"`
	RequiredEquipment     []string               `json:"requiredEquipment"`
	AccessibilityRequired bool                   `json:"accessibilityRequired"`
	SpecialRequirements   string                 `json:"specialRequirements"`
}

// RoomPayload is one candidate room.
type RoomPayload struct {
	RoomID        string   `json:"roomId" validate:"required"`
	RoomName      string   `json:"roomName"`
	Capacity      int      `json:"capacity" validate:"required,min=1"`
	Equipment     []string `json:"equipment"`
	Location      string   `json:"location"`
	Accessibility bool     `json:"accessibility"`
}

// TimeWindowPayload is a half-open wall-clock interval.
type TimeWindowPayload struct {
	StartTime models.TimeOfDay `json:"startTime"`
	EndTime   models.TimeOfDay `json:"endTime" validate:"gtfield=StartTime"`
}

// PreferencePayload carries one professor's soft constraints for a course.
type PreferencePayload struct {
	PreferenceID         string              `json:"preferenceId"`
	ProfessorID          string              `json:"professorId" validate:"required"`
	CourseID             string              `json:"courseId" validate:"required"`
	PreferredDates       []models.Date       `json:"preferredDates"`
	PreferredTimeSlots   []TimeWindowPayload `json:"preferredTimeSlots" validate:"omitempty,dive"`
	UnavailableDates     []models.Date       `json:"unavailableDates"`
	UnavailableTimeSlots []TimeWindowPayload `json:"unavailableTimeSlots" validate:"omitempty,dive"`
	PreferredRooms       []string            `json:"preferredRooms"`
	SpecialRequirements  string              `json:"specialRequirements"`
	Priority             int                 `json:"priority" validate:"omitempty,min=1,max=10"`
}

// ConstraintsPayload carries the institution-wide rules for the run.
type ConstraintsPayload struct {
	WorkingHours        TimeWindowPayload `json:"workingHours" validate:"required"`
	MinimumExamDuration int               `json:"minimumExamDuration" validate:"omitempty,min=1"`
	MinimumGapMinutes   int               `json:"minimumGapMinutes" validate:"required,min=1"`
	MaxExamsPerDay      int               `json:"maxExamsPerDay" validate:"omitempty,min=1"`
	MaxExamsPerRoom     int               `json:"maxExamsPerRoom" validate:"omitempty,min=1"`
	AllowWeekendExams   bool              `json:"allowWeekendExams"`
}

// GenerateScheduleRequest is one complete problem instance as posted by the
// caller. Validation here covers shape only; the engine re-checks semantic
// consistency and reports faults in the result body.
type GenerateScheduleRequest struct {
	ExamPeriod               ExamPeriodPayload   `json:"examPeriod" validate:"required"`
	Courses                  []CoursePayload     `json:"courses" validate:"required,min=1,dive"`
	AvailableRooms           []RoomPayload       `json:"availableRooms" validate:"required,min=1,dive"`
	ProfessorPreferences     []PreferencePayload `json:"professorPreferences" validate:"omitempty,dive"`
	InstitutionalConstraints ConstraintsPayload  `json:"institutionalConstraints" validate:"required"`
}

// ToInstance converts the validated request into the engine's input form.
func (r GenerateScheduleRequest) ToInstance() models.SchedulingInstance {
	instance := models.SchedulingInstance{
		ExamPeriod: models.ExamPeriod{
			ExamSessionPeriodID: r.ExamPeriod.ExamSessionPeriodID,
			AcademicYear:        r.ExamPeriod.AcademicYear,
			ExamSession:         r.ExamPeriod.ExamSession,
			StartDate:           r.ExamPeriod.StartDate,
			EndDate:             r.ExamPeriod.EndDate,
		},
		InstitutionalConstraints: models.InstitutionalConstraints{
			WorkingHours: models.WorkingHours{
				StartTime: r.InstitutionalConstraints.WorkingHours.StartTime,
				EndTime:   r.InstitutionalConstraints.WorkingHours.EndTime,
			},
			MinimumExamDuration: r.InstitutionalConstraints.MinimumExamDuration,
			MinimumGapMinutes:   r.InstitutionalConstraints.MinimumGapMinutes,
			MaxExamsPerDay:      r.InstitutionalConstraints.MaxExamsPerDay,
			MaxExamsPerRoom:     r.InstitutionalConstraints.MaxExamsPerRoom,
			AllowWeekendExams:   r.InstitutionalConstraints.AllowWeekendExams,
		},
	}

	for _, c := range r.Courses {
		instance.Courses = append(instance.Courses, models.Course{
			CourseID:              c.CourseID,
			CourseName:            c.CourseName,
			StudentCount:          c.StudentCount,
			ProfessorIDs:          c.ProfessorIDs,
			MandatoryStatus:       c.MandatoryStatus,
			EstimatedDuration:     c.EstimatedDuration,
			RequiredEquipment:     c.RequiredEquipment,
			AccessibilityRequired: c.AccessibilityRequired,
			SpecialRequirements:   c.SpecialRequirements,
		})
	}
	for _, room := range r.AvailableRooms {
		instance.AvailableRooms = append(instance.AvailableRooms, models.Room{
			RoomID:        room.RoomID,
			RoomName:      room.RoomName,
			Capacity:      room.Capacity,
			Equipment:     room.Equipment,
			Location:      room.Location,
			Accessibility: room.Accessibility,
		})
	}
	for _, pref := range r.ProfessorPreferences {
		instance.ProfessorPreferences = append(instance.ProfessorPreferences, models.ProfessorPreference{
			PreferenceID:         pref.PreferenceID,
			ProfessorID:          pref.ProfessorID,
			CourseID:             pref.CourseID,
			PreferredDates:       pref.PreferredDates,
			PreferredTimeSlots:   toTimeWindows(pref.PreferredTimeSlots),
			UnavailableDates:     pref.UnavailableDates,
			UnavailableTimeSlots: toTimeWindows(pref.UnavailableTimeSlots),
			PreferredRooms:       pref.PreferredRooms,
			SpecialRequirements:  pref.SpecialRequirements,
			Priority:             pref.Priority,
		})
	}
	return instance
}

func toTimeWindows(payloads []TimeWindowPayload) []models.TimeWindow {
	if len(payloads) == 0 {
		return nil
	}
	windows := make([]models.TimeWindow, 0, len(payloads))
	for _, w := range payloads {
		windows = append(windows, models.TimeWindow{StartTime: w.StartTime, EndTime: w.EndTime})
	}
	return windows
}

// GenerateScheduleResponse returns the engine run plus a proposal handle the
// caller can later persist.
type GenerateScheduleResponse struct {
	ProposalID string                  `json:"proposalId"`
	Result     models.SchedulingResult `json:"result"`
}

// SaveScheduleRequest persists a previously generated proposal.
type SaveScheduleRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
}

// ScheduleQuery filters persisted schedules.
type ScheduleQuery struct {
	ExamSessionPeriodID string `form:"examSessionPeriodId" json:"examSessionPeriodId"`

	AcademicYear string `form:"academicYear" json:"academicYear"`
	ExamSession  string `form:"examSession" json:"examSession"`
	Status       string `form:"status" json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Page         int    `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize     int    `form:"pageSize" json:"pageSize" validate:"omitempty,min=1,max=200"`
}

// ExportQuery selects the export format for a persisted schedule.
type ExportQuery struct {
	Format string `form:"format" json:"format" validate:"required,oneof=csv pdf"`
}

// ScheduleSummary is the list-view projection of a persisted schedule.
type ScheduleSummary struct {
	ID                  string  `json:"id"`
	ExamSessionPeriodID string  `json:"examSessionPeriodId"`
	AcademicYear        string  `json:"academicYear"`
	ExamSession         string  `json:"examSession"`
	StartDate           string  `json:"startDate"`
	EndDate             string  `json:"endDate"`
	Version             int     `json:"version"`
	Status              string  `json:"status"`
	QualityScore        float64 `json:"qualityScore"`
	ExamCount           int     `json:"examCount"`
	CreatedAt           string  `json:"createdAt"`
}

// ScheduleDetail is the full projection of one persisted schedule.
type ScheduleDetail struct {
	Schedule models.ExamSessionSchedule   `json:"schedule"`
	Exams    []models.ScheduledExamRecord `json:"exams"`
}
