package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edusuite/exam-seating-api/internal/allocator"
	"github.com/edusuite/exam-seating-api/internal/dto"
	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

type planStore interface {
	Save(ctx context.Context, plan *models.SeatingPlan) error
	List(ctx context.Context, institutionID string, limit, offset int) ([]models.PlanSummary, error)
	Count(ctx context.Context, institutionID string) (int, error)
	GetByID(ctx context.Context, id string) (*models.SeatingPlan, error)
	Delete(ctx context.Context, id string) error
}

type rosterResolver interface {
	ClassStudents(ctx context.Context, institutionID, classLabel string) ([]models.Student, error)
	Invigilator(ctx context.Context, institutionID, teacherID string) (*models.Invigilator, error)
}

type draftStorage interface {
	Put(draft allocator.Draft)
	Get(id string) (allocator.Draft, bool)
	Delete(id string)
}

type seatingMetrics interface {
	ObserveAllocation(mode string, duration time.Duration)
	IncPlansCommitted()
}

// SeatingServiceConfig holds allocation defaults.
type SeatingServiceConfig struct {
	DefaultStartRoll int
}

// SeatingService orchestrates draft allocation, invigilation and plan
// persistence. Drafts live in the draft store; only Commit touches the
// database.
type SeatingService struct {
	plans    planStore
	roster   rosterResolver
	drafts   draftStorage
	metrics  seatingMetrics
	validate *validator.Validate
	logger   *zap.Logger
	cfg      SeatingServiceConfig
}

// NewSeatingService constructs the service.
func NewSeatingService(plans planStore, roster rosterResolver, drafts draftStorage, metrics seatingMetrics, validate *validator.Validate, logger *zap.Logger, cfg SeatingServiceConfig) *SeatingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultStartRoll <= 0 {
		cfg.DefaultStartRoll = 1
	}
	return &SeatingService{
		plans:    plans,
		roster:   roster,
		drafts:   drafts,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
		cfg:      cfg,
	}
}

// GenerateAutomatic runs the automatic allocator and stores the result as a
// draft. A fixed seed reproduces the same arrangement, otherwise each run is
// freshly shuffled.
func (s *SeatingService) GenerateAutomatic(ctx context.Context, req dto.GeneratePlanRequest) (allocator.Draft, error) {
	if err := s.validate.Struct(req); err != nil {
		return allocator.Draft{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation request")
	}
	if len(req.Rooms) == 0 && (req.RoomsCount <= 0 || req.SeatsPerRoom <= 0) {
		return allocator.Draft{}, appErrors.Clone(appErrors.ErrValidation, "either rooms or roomsCount and seatsPerRoom are required")
	}

	roster, err := s.resolveRoster(ctx, req)
	if err != nil {
		return allocator.Draft{}, err
	}
	if len(roster) == 0 && req.TotalStudents <= 0 {
		return allocator.Draft{}, appErrors.Clone(appErrors.ErrValidation, "totalStudents or classLabels are required")
	}

	startRoll := req.StartRollNo
	if startRoll <= 0 {
		startRoll = s.cfg.DefaultStartRoll
	}

	layouts := make([]models.RoomLayout, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		layouts = append(layouts, models.RoomLayout{
			RoomNo:        room.RoomNo,
			Name:          room.Name,
			Rows:          room.Rows,
			Columns:       room.Columns,
			ExcludedSeats: room.ExcludedSeats,
		})
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	started := time.Now()
	draft, err := allocator.Allocate(uuid.NewString(), allocator.AutomaticRequest{
		ExamName:      req.ExamName,
		ExamDate:      req.ExamDate,
		InstitutionID: req.InstitutionID,
		TotalStudents: req.TotalStudents,
		StartRoll:     startRoll,
		Roster:        roster,
		Layouts:       layouts,
		RoomsCount:    req.RoomsCount,
		SeatsPerRoom:  req.SeatsPerRoom,
	}, rng)
	if err != nil {
		return allocator.Draft{}, err
	}
	s.observeAllocation(string(allocator.ModeAutomatic), time.Since(started))

	s.drafts.Put(draft)
	s.logger.Sugar().Infow("automatic draft generated",
		"draft_id", draft.ID, "students", draft.TotalStudents, "rooms", len(draft.Rooms))
	return draft, nil
}

// CreateManualDraft opens an empty bench-mode draft.
func (s *SeatingService) CreateManualDraft(ctx context.Context, req dto.CreateDraftRequest) (allocator.Draft, error) {
	if err := s.validate.Struct(req); err != nil {
		return allocator.Draft{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid draft request")
	}

	rooms := make([]models.RoomLayout, 0, len(req.Rooms))
	for _, room := range req.Rooms {
		rooms = append(rooms, models.RoomLayout{
			RoomNo:     room.RoomNo,
			Name:       room.Name,
			BenchCount: room.BenchCount,
		})
	}

	draft, err := allocator.NewManualDraft(uuid.NewString(), req.ExamName, req.ExamDate, req.InstitutionID, rooms)
	if err != nil {
		return allocator.Draft{}, err
	}
	s.drafts.Put(draft)
	s.logger.Sugar().Infow("manual draft created", "draft_id", draft.ID, "rooms", len(draft.Rooms))
	return draft, nil
}

// GetDraft loads a live draft.
func (s *SeatingService) GetDraft(id string) (allocator.Draft, error) {
	draft, ok := s.drafts.Get(id)
	if !ok {
		return allocator.Draft{}, appErrors.ErrDraftNotFound
	}
	return draft, nil
}

// Availability reports which sides of a bench room are still free.
func (s *SeatingService) Availability(draftID string, roomNo int) (allocator.SideAvailability, error) {
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return allocator.SideAvailability{}, err
	}
	return draft.Availability(roomNo)
}

// AssignClass seats one class on a bench side, resolving the roster and the
// supervising teacher, and persists the new draft state.
func (s *SeatingService) AssignClass(ctx context.Context, draftID string, req dto.AssignClassRequest) (allocator.Draft, allocator.ClassAssignment, error) {
	if err := s.validate.Struct(req); err != nil {
		return allocator.Draft{}, allocator.ClassAssignment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment request")
	}
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return allocator.Draft{}, allocator.ClassAssignment{}, err
	}

	students, err := s.roster.ClassStudents(ctx, draft.InstitutionID, req.ClassLabel)
	if err != nil {
		return allocator.Draft{}, allocator.ClassAssignment{}, err
	}
	if len(students) == 0 {
		return allocator.Draft{}, allocator.ClassAssignment{}, appErrors.Clone(appErrors.ErrNoStudentsForClass,
			fmt.Sprintf("no students found for class %s", req.ClassLabel))
	}

	inv, err := s.roster.Invigilator(ctx, draft.InstitutionID, req.InvigilatorID)
	if err != nil {
		return allocator.Draft{}, allocator.ClassAssignment{}, err
	}

	started := time.Now()
	next, assignment, err := draft.AssignClass(req.RoomNo, req.Side, req.ClassLabel, students, *inv)
	if err != nil {
		return allocator.Draft{}, allocator.ClassAssignment{}, err
	}
	s.observeAllocation(string(allocator.ModeManual), time.Since(started))

	s.drafts.Put(next)
	if len(assignment.Unplaced) > 0 {
		s.logger.Sugar().Warnw("class truncated to bench capacity",
			"draft_id", draftID, "class", req.ClassLabel, "placed", assignment.Placed, "unplaced", len(assignment.Unplaced))
	}
	return next, assignment, nil
}

// BindInvigilator attaches a room-level invigilator to a draft room.
func (s *SeatingService) BindInvigilator(ctx context.Context, draftID string, roomNo int, req dto.BindInvigilatorRequest) (allocator.Draft, error) {
	if err := s.validate.Struct(req); err != nil {
		return allocator.Draft{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid invigilator request")
	}
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return allocator.Draft{}, err
	}
	inv, err := s.roster.Invigilator(ctx, draft.InstitutionID, req.InvigilatorID)
	if err != nil {
		return allocator.Draft{}, err
	}
	next, err := draft.BindInvigilator(roomNo, *inv)
	if err != nil {
		return allocator.Draft{}, err
	}
	s.drafts.Put(next)
	return next, nil
}

// Duties lists every room or room side a teacher covers in a draft.
func (s *SeatingService) Duties(draftID, teacherID string) ([]models.InvigilatorDuty, error) {
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return nil, err
	}
	return draft.Duties(teacherID), nil
}

// Commit validates the draft, persists it as a plan and drops the draft.
// Every occupied room must be invigilated before the plan can be saved.
func (s *SeatingService) Commit(ctx context.Context, draftID string) (*models.SeatingPlan, error) {
	draft, err := s.GetDraft(draftID)
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	plan := draft.Plan()
	if err := s.plans.Save(ctx, &plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save seating plan")
	}

	s.drafts.Delete(draftID)
	if s.metrics != nil {
		s.metrics.IncPlansCommitted()
	}
	s.logger.Sugar().Infow("seating plan committed",
		"plan_id", plan.ID, "exam", plan.ExamName, "students", plan.TotalStudents)
	return &plan, nil
}

// Reopen loads a committed plan back into a fresh draft. Committing the
// reopened draft saves a new version; the original row stays untouched.
func (s *SeatingService) Reopen(ctx context.Context, planID string) (allocator.Draft, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return allocator.Draft{}, err
	}
	draft := allocator.FromPlan(uuid.NewString(), *plan)
	s.drafts.Put(draft)
	s.logger.Sugar().Infow("plan reopened as draft", "plan_id", planID, "draft_id", draft.ID)
	return draft, nil
}

// ListPlans returns plan summaries with pagination metadata.
func (s *SeatingService) ListPlans(ctx context.Context, query dto.PlanQuery) ([]models.PlanSummary, *models.Pagination, error) {
	if query.InstitutionID == "" {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "institutionId is required")
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	summaries, err := s.plans.List(ctx, query.InstitutionID, limit, (page-1)*limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plans")
	}
	total, err := s.plans.Count(ctx, query.InstitutionID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count plans")
	}

	pagination := &models.Pagination{
		Page:       page,
		PageSize:   limit,
		TotalItems: total,
		TotalPages: (total + limit - 1) / limit,
	}
	return summaries, pagination, nil
}

// GetPlan loads one committed plan.
func (s *SeatingService) GetPlan(ctx context.Context, id string) (*models.SeatingPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load seating plan")
	}
	return plan, nil
}

// DeletePlan removes a committed plan.
func (s *SeatingService) DeletePlan(ctx context.Context, id string) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "seating plan not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete seating plan")
	}
	s.logger.Sugar().Infow("seating plan deleted", "plan_id", id)
	return nil
}

// SeatLookup finds where one roll number sits in a committed plan.
func (s *SeatingService) SeatLookup(ctx context.Context, planID, rollNo string) (*dto.SeatLookupResponse, error) {
	if rollNo == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "rollNo is required")
	}
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	for _, room := range plan.Rooms {
		for _, seat := range room.Seats {
			if seat.RollNo == rollNo {
				return &dto.SeatLookupResponse{
					PlanID:      plan.ID,
					ExamName:    plan.ExamName,
					ExamDate:    plan.ExamDate,
					RoomNo:      room.RoomNo,
					RoomName:    room.RoomName,
					SeatNo:      seat.SeatNo,
					RollNo:      seat.RollNo,
					StudentName: seat.StudentName,
				}, nil
			}
		}
		for _, bench := range room.Benches {
			if bench.LeftSeat != nil && bench.LeftSeat.RollNo == rollNo {
				return benchLookup(plan, room, bench, bench.LeftSeat, models.SideLeft), nil
			}
			if bench.RightSeat != nil && bench.RightSeat.RollNo == rollNo {
				return benchLookup(plan, room, bench, bench.RightSeat, models.SideRight), nil
			}
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("roll number %s not found in plan", rollNo))
}

func benchLookup(plan *models.SeatingPlan, room models.RoomPlan, bench models.Bench, ref *models.SeatRef, side models.Side) *dto.SeatLookupResponse {
	return &dto.SeatLookupResponse{
		PlanID:      plan.ID,
		ExamName:    plan.ExamName,
		ExamDate:    plan.ExamDate,
		RoomNo:      room.RoomNo,
		RoomName:    room.RoomName,
		BenchNo:     bench.BenchNo,
		Side:        string(side),
		RollNo:      ref.RollNo,
		StudentName: ref.StudentName,
	}
}

func (s *SeatingService) resolveRoster(ctx context.Context, req dto.GeneratePlanRequest) ([]models.Student, error) {
	if len(req.ClassLabels) == 0 {
		return nil, nil
	}
	if s.roster == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "roster source unavailable")
	}
	roster := make([]models.Student, 0)
	for _, label := range req.ClassLabels {
		students, err := s.roster.ClassStudents(ctx, req.InstitutionID, label)
		if err != nil {
			return nil, err
		}
		if len(students) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNoStudentsForClass,
				fmt.Sprintf("no students found for class %s", label))
		}
		roster = append(roster, students...)
	}
	return roster, nil
}

func (s *SeatingService) observeAllocation(mode string, duration time.Duration) {
	if s.metrics != nil {
		s.metrics.ObserveAllocation(mode, duration)
	}
}
