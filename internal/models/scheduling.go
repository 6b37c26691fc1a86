package models

// MandatoryStatus classifies a course for ordering purposes.
type MandatoryStatus string

const (
	MandatoryStatusMandatory MandatoryStatus = "MANDATORY"
	MandatoryStatusElective  MandatoryStatus = "ELECTIVE"
)

// ViolationType identifies why a course could not be placed.
type ViolationType string

const (
	ViolationNoSuitableRoom     ViolationType = "NO_SUITABLE_ROOM"
	ViolationNoSuitableTimeSlot ViolationType = "NO_SUITABLE_TIME_SLOT"
)

// ViolationSeverity grades a constraint violation.
type ViolationSeverity string

const (
	SeverityCritical ViolationSeverity = "CRITICAL"
	SeverityHigh     ViolationSeverity = "HIGH"
	SeverityMedium   ViolationSeverity = "MEDIUM"
	SeverityLow      ViolationSeverity = "LOW"
)

// ExamPeriod is the inclusive date range of an exam session.
type ExamPeriod struct {
	ExamSessionPeriodID string `json:"examSessionPeriodId"`
	AcademicYear        string `json:"academicYear"`
	ExamSession         string `json:"examSession"`
	StartDate           Date   `json:"startDate"`
	EndDate             Date   `json:"endDate"`
}

// TotalDays returns the inclusive length of the period, never less than one.
func (p ExamPeriod) TotalDays() int {
	days := p.StartDate.DaysUntil(p.EndDate) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Course describes one examination to place. Engine input, never mutated.
type Course struct {
	CourseID              string          `json:"courseId"`
	CourseName            string          `json:"courseName"`
	StudentCount          int             `json:"studentCount"`
	ProfessorIDs          []string        `json:"professorIds"`
	MandatoryStatus       MandatoryStatus `json:"mandatoryStatus"`
	EstimatedDuration     int             `json:"estimatedDuration"`
	RequiredEquipment     []string        `json:"requiredEquipment"`
	AccessibilityRequired bool            `json:"accessibilityRequired"`
	SpecialRequirements   string          `json:"specialRequirements,omitempty"`
}

// Room describes a candidate exam room. Engine input, never mutated.
type Room struct {
	RoomID        string   `json:"roomId"`
	RoomName      string   `json:"roomName"`
	Capacity      int      `json:"capacity"`
	Equipment     []string `json:"equipment"`
	Location      string   `json:"location,omitempty"`
	Accessibility bool     `json:"accessibility"`
}

// TimeWindow is a half-open [start, end) wall-clock interval.
type TimeWindow struct {
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
}

// Contains reports whether [start, end) lies fully inside the window.
func (w TimeWindow) Contains(start, end TimeOfDay) bool {
	return start >= w.StartTime && end <= w.EndTime
}

// ProfessorPreference records soft constraints one professor declared for a
// course. The unavailable fields are accepted and stored but are not consulted
// by placement or satisfaction scoring; the solver this engine reproduces
// never read them.
type ProfessorPreference struct {
	PreferenceID         string       `json:"preferenceId,omitempty"`
	ProfessorID          string       `json:"professorId"`
	CourseID             string       `json:"courseId"`
	PreferredDates       []Date       `json:"preferredDates"`
	PreferredTimeSlots   []TimeWindow `json:"preferredTimeSlots"`
	UnavailableDates     []Date       `json:"unavailableDates"`
	UnavailableTimeSlots []TimeWindow `json:"unavailableTimeSlots"`
	PreferredRooms       []string     `json:"preferredRooms"`
	SpecialRequirements  string       `json:"specialRequirements,omitempty"`
	Priority             int          `json:"priority"`
}

// WorkingHours bounds candidate exam start and end times within a day.
type WorkingHours struct {
	StartTime TimeOfDay `json:"startTime"`
	EndTime   TimeOfDay `json:"endTime"`
}

// InstitutionalConstraints carries institution-wide scheduling rules.
// MinimumExamDuration, MaxExamsPerDay and MaxExamsPerRoom are declared inputs
// the placement algorithm does not enforce.
type InstitutionalConstraints struct {
	WorkingHours        WorkingHours `json:"workingHours"`
	MinimumExamDuration int          `json:"minimumExamDuration"`
	MinimumGapMinutes   int          `json:"minimumGapMinutes"`
	MaxExamsPerDay      int          `json:"maxExamsPerDay"`
	MaxExamsPerRoom     int          `json:"maxExamsPerRoom"`
	AllowWeekendExams   bool         `json:"allowWeekendExams"`
}

// SchedulingInstance is one complete problem instance.
type SchedulingInstance struct {
	ExamPeriod               ExamPeriod               `json:"examPeriod"`
	Courses                  []Course                 `json:"courses"`
	AvailableRooms           []Room                   `json:"availableRooms"`
	ProfessorPreferences     []ProfessorPreference    `json:"professorPreferences"`
	InstitutionalConstraints InstitutionalConstraints `json:"institutionalConstraints"`
}

// ScheduledExam is one placed examination. Created once per successfully
// placed course and never mutated afterwards.
type ScheduledExam struct {
	ScheduledExamID string          `json:"scheduledExamId"`
	CourseID        string          `json:"courseId"`
	CourseName      string          `json:"courseName"`
	ExamDate        Date            `json:"examDate"`
	StartTime       TimeOfDay       `json:"startTime"`
	EndTime         TimeOfDay       `json:"endTime"`
	RoomID          string          `json:"roomId"`
	RoomName        string          `json:"roomName"`
	RoomCapacity    int             `json:"roomCapacity"`
	StudentCount    int             `json:"studentCount"`
	MandatoryStatus MandatoryStatus `json:"mandatoryStatus"`
	ProfessorIDs    []string        `json:"professorIds"`
}

// ConstraintViolation records a course the engine could not place.
type ConstraintViolation struct {
	ViolationType       ViolationType     `json:"violationType"`
	Severity            ViolationSeverity `json:"severity"`
	Description         string            `json:"description"`
	AffectedExamIDs     []string          `json:"affectedExamIds"`
	AffectedStudents    int               `json:"affectedStudents"`
	SuggestedResolution string            `json:"suggestedResolution,omitempty"`
}

// SchedulingMetrics summarises one engine run.
type SchedulingMetrics struct {
	TotalCoursesScheduled               int     `json:"totalCoursesScheduled"`
	TotalProfessorPreferencesConsidered int     `json:"totalProfessorPreferencesConsidered"`
	PreferencesSatisfied                int     `json:"preferencesSatisfied"`
	PreferenceSatisfactionRate          float64 `json:"preferenceSatisfactionRate"`
	TotalConflicts                      int     `json:"totalConflicts"`
	ResolvedConflicts                   int     `json:"resolvedConflicts"`
	RoomUtilizationRate                 float64 `json:"roomUtilizationRate"`
	AverageStudentExamsPerDay           float64 `json:"averageStudentExamsPerDay"`
	ProcessingTimeMs                    int64   `json:"processingTimeMs"`
}

// SchedulingResult is the engine's complete answer for one instance.
type SchedulingResult struct {
	Success        bool                  `json:"success"`
	ErrorMessage   string                `json:"errorMessage,omitempty"`
	ScheduledExams []ScheduledExam       `json:"scheduledExams"`
	Violations     []ConstraintViolation `json:"violations"`
	Metrics        SchedulingMetrics     `json:"metrics"`
	QualityScore   float64               `json:"qualityScore"`
	AlgorithmUsed  string                `json:"algorithmUsed,omitempty"`
}
