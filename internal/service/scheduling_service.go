package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/finki-scheduling/exam-scheduling-api/internal/dto"
	"github.com/finki-scheduling/exam-scheduling-api/internal/models"
	appErrors "github.com/finki-scheduling/exam-scheduling-api/pkg/errors"
)

type examScheduler interface {
	Schedule(instance models.SchedulingInstance) models.SchedulingResult
}

type scheduleRepository interface {
	CreateVersioned(ctx context.Context, exec sqlx.ExtContext, schedule *models.ExamSessionSchedule) error
	List(ctx context.Context, query dto.ScheduleQuery) ([]models.ExamSessionSchedule, int, error)
	FindByID(ctx context.Context, id string) (*models.ExamSessionSchedule, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleStatus) error
	ArchivePublished(ctx context.Context, exec sqlx.ExtContext, examSessionPeriodID, exceptID string) error
	CountExams(ctx context.Context, scheduleIDs []string) (map[string]int, error)
}

type scheduledExamRepository interface {
	InsertBatch(ctx context.Context, exec sqlx.ExtContext, exams []models.ScheduledExamRecord) error
	ListBySchedule(ctx context.Context, scheduleID string) ([]models.ScheduledExamRecord, error)
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type scheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, pattern string) error
}

type runRecorder interface {
	RecordSchedulingRun(success bool, placed, violations int, quality float64, duration time.Duration)
}

// SchedulingService runs the engine for preview, keeps generated proposals in
// an in-memory TTL store, and persists accepted proposals as versioned
// schedules.
type SchedulingService struct {
	engine    examScheduler
	schedules scheduleRepository
	exams     scheduledExamRepository
	tx        txProvider
	cache     scheduleCache
	metrics   runRecorder
	validator *validator.Validate
	logger    *zap.Logger
	store     *proposalStore
}

// SchedulingConfig governs proposal retention.
type SchedulingConfig struct {
	ProposalTTL time.Duration
}

// NewSchedulingService wires scheduling dependencies.
func NewSchedulingService(
	engine examScheduler,
	schedules scheduleRepository,
	exams scheduledExamRepository,
	tx txProvider,
	cache scheduleCache,
	metrics runRecorder,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg SchedulingConfig,
) *SchedulingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	return &SchedulingService{
		engine:    engine,
		schedules: schedules,
		exams:     exams,
		tx:        tx,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		store:     newProposalStore(cfg.ProposalTTL),
	}
}

// Generate runs the engine against the posted instance and caches the outcome
// as a proposal. An infeasible or faulted run is still a successful HTTP
// operation; the result body carries the verdict.
func (s *SchedulingService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	instance := req.ToInstance()
	started := time.Now()
	result := s.engine.Schedule(instance)

	if s.metrics != nil {
		s.metrics.RecordSchedulingRun(result.Success, len(result.ScheduledExams), len(result.Violations), result.QualityScore, time.Since(started))
	}

	s.logger.Info("scheduling run finished",
		zap.String("examSessionPeriodId", instance.ExamPeriod.ExamSessionPeriodID),
		zap.Bool("success", result.Success),
		zap.Int("placed", len(result.ScheduledExams)),
		zap.Int("violations", len(result.Violations)),
		zap.Float64("qualityScore", result.QualityScore),
	)

	proposal := scheduleProposal{
		ProposalID:  uuid.NewString(),
		Instance:    instance,
		Result:      result,
		RequestedAt: time.Now().UTC(),
	}
	s.store.Save(proposal)

	return &dto.GenerateScheduleResponse{ProposalID: proposal.ProposalID, Result: result}, nil
}

// Save persists a previously generated proposal as the next draft version for
// its exam session.
func (s *SchedulingService) Save(ctx context.Context, req dto.SaveScheduleRequest) (*models.ExamSessionSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save schedule payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	if !proposal.Result.Success {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "cannot persist a failed scheduling run")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	metaPayload := map[string]any{
		"metrics":    proposal.Result.Metrics,
		"violations": proposal.Result.Violations,
		"algorithm":  proposal.Result.AlgorithmUsed,
		"generated":  proposal.RequestedAt,
	}
	metaBytes, marshalErr := json.Marshal(metaPayload)
	if marshalErr != nil {
		err = appErrors.Wrap(marshalErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode schedule metadata")
		return nil, err
	}

	period := proposal.Instance.ExamPeriod
	record := &models.ExamSessionSchedule{
		ExamSessionPeriodID: period.ExamSessionPeriodID,
		AcademicYear:        period.AcademicYear,
		ExamSession:         period.ExamSession,
		StartDate:           period.StartDate.Time(),
		EndDate:             period.EndDate.Time(),
		Status:              models.ScheduleStatusDraft,
		QualityScore:        proposal.Result.QualityScore,
		Meta:                types.JSONText(metaBytes),
	}

	if err = s.schedules.CreateVersioned(ctx, tx, record); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exam session schedule")
		return nil, err
	}

	records := make([]models.ScheduledExamRecord, 0, len(proposal.Result.ScheduledExams))
	for _, exam := range proposal.Result.ScheduledExams {
		records = append(records, models.ScheduledExamRecord{
			ScheduleID:      record.ID,
			ScheduledExamID: exam.ScheduledExamID,
			CourseID:        exam.CourseID,
			CourseName:      exam.CourseName,
			ExamDate:        exam.ExamDate.Time(),
			StartTime:       exam.StartTime.String(),
			EndTime:         exam.EndTime.String(),
			RoomID:          exam.RoomID,
			RoomName:        exam.RoomName,
			RoomCapacity:    exam.RoomCapacity,
			StudentCount:    exam.StudentCount,
			MandatoryStatus: string(exam.MandatoryStatus),
			ProfessorIDs:    strings.Join(exam.ProfessorIDs, ","),
		})
	}
	if err = s.exams.InsertBatch(ctx, tx, records); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist scheduled exams")
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
		return nil, err
	}

	s.store.Delete(req.ProposalID)
	s.invalidateListCache(ctx)
	return record, nil
}

// List returns schedule summaries matching the query.
func (s *SchedulingService) List(ctx context.Context, query dto.ScheduleQuery) ([]dto.ScheduleSummary, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule query")
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}

	list, total, err := s.schedules.List(ctx, query)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}

	ids := make([]string, 0, len(list))
	for _, item := range list {
		ids = append(ids, item.ID)
	}
	counts := map[string]int{}
	if len(ids) > 0 {
		counts, err = s.schedules.CountExams(ctx, ids)
		if err != nil {
			return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count scheduled exams")
		}
	}

	summaries := make([]dto.ScheduleSummary, 0, len(list))
	for _, item := range list {
		summaries = append(summaries, dto.ScheduleSummary{
			ID:                  item.ID,
			ExamSessionPeriodID: item.ExamSessionPeriodID,
			AcademicYear:        item.AcademicYear,
			ExamSession:         item.ExamSession,
			StartDate:           item.StartDate.Format("2006-01-02"),
			EndDate:             item.EndDate.Format("2006-01-02"),
			Version:             item.Version,
			Status:              string(item.Status),
			QualityScore:        item.QualityScore,
			ExamCount:           counts[item.ID],
			CreatedAt:           item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	totalPages := (total + query.PageSize - 1) / query.PageSize
	pagination := &models.Pagination{Page: query.Page, PerPage: query.PageSize, Total: total, TotalPages: totalPages}
	return summaries, pagination, nil
}

// Get returns one schedule with its exams, served from cache when possible.
func (s *SchedulingService) Get(ctx context.Context, scheduleID string) (*dto.ScheduleDetail, error) {
	if scheduleID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule id is required")
	}

	cacheKey := scheduleDetailCacheKey(scheduleID)
	if s.cache != nil {
		var cached dto.ScheduleDetail
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	record, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	exams, err := s.exams.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list scheduled exams")
	}

	detail := &dto.ScheduleDetail{Schedule: *record, Exams: exams}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, detail, 0)
	}
	return detail, nil
}

// Publish promotes a draft schedule and archives any previously published
// version of the same exam session.
func (s *SchedulingService) Publish(ctx context.Context, scheduleID string) (*models.ExamSessionSchedule, error) {
	record, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if record.Status != models.ScheduleStatusDraft {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only draft schedules can be published")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.schedules.ArchivePublished(ctx, tx, record.ExamSessionPeriodID, record.ID); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive previous versions")
		return nil, err
	}
	if err = s.schedules.UpdateStatus(ctx, tx, record.ID, models.ScheduleStatusPublished); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish schedule")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit publish transaction")
		return nil, err
	}

	record.Status = models.ScheduleStatusPublished
	s.invalidateListCache(ctx)
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, scheduleDetailCacheKey(scheduleID))
	}
	return record, nil
}

// Delete removes a draft schedule version.
func (s *SchedulingService) Delete(ctx context.Context, scheduleID string) error {
	record, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	if record.Status != models.ScheduleStatusDraft {
		return appErrors.Clone(appErrors.ErrConflict, "only draft schedules can be deleted")
	}
	if err := s.schedules.Delete(ctx, scheduleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	s.invalidateListCache(ctx)
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, scheduleDetailCacheKey(scheduleID))
	}
	return nil
}

func (s *SchedulingService) invalidateListCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "schedules:*")
	}
}

func scheduleDetailCacheKey(scheduleID string) string {
	return fmt.Sprintf("schedules:detail:%s", scheduleID)
}

// --- Proposal cache ---

type scheduleProposal struct {
	ProposalID  string
	Instance    models.SchedulingInstance
	Result      models.SchedulingResult
	RequestedAt time.Time
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]scheduleProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]scheduleProposal),
	}
}

func (s *proposalStore) Save(proposal scheduleProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (scheduleProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return scheduleProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return scheduleProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
