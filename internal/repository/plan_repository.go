package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/edusuite/exam-seating-api/internal/models"
)

// PlanRepository persists committed seating plans. The per-room allocation is
// stored as a JSONB document; scalar exam metadata lives in its own columns so
// listing never has to unpack the document.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository constructs the repository.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

type planRow struct {
	ID            string    `db:"id"`
	InstitutionID string    `db:"institution_id"`
	ExamName      string    `db:"exam_name"`
	ExamDate      *string   `db:"exam_date"`
	TotalStudents int       `db:"total_students"`
	RoomsCount    int       `db:"rooms_count"`
	SeatsPerRoom  *int      `db:"seats_per_room"`
	Plan          []byte    `db:"plan"`
	CreatedAt     time.Time `db:"created_at"`
}

// Save inserts the plan as a new row. Every save gets a fresh identity, so
// committing a reopened plan produces a new version instead of overwriting.
func (r *PlanRepository) Save(ctx context.Context, plan *models.SeatingPlan) error {
	plan.ID = uuid.NewString()
	plan.CreatedAt = time.Now().UTC()

	doc, err := json.Marshal(plan.Rooms)
	if err != nil {
		return fmt.Errorf("marshal plan document: %w", err)
	}

	const query = `INSERT INTO seating_plans
	(id, institution_id, exam_name, exam_date, total_students, rooms_count, seats_per_room, plan, created_at)
	VALUES (:id, :institution_id, :exam_name, :exam_date, :total_students, :rooms_count, :seats_per_room, :plan, :created_at)`
	row := planRow{
		ID:            plan.ID,
		InstitutionID: plan.InstitutionID,
		ExamName:      plan.ExamName,
		ExamDate:      plan.ExamDate,
		TotalStudents: plan.TotalStudents,
		RoomsCount:    plan.RoomsCount,
		SeatsPerRoom:  plan.SeatsPerRoom,
		Plan:          doc,
		CreatedAt:     plan.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("insert seating plan: %w", err)
	}
	return nil
}

// List returns plan summaries for an institution, newest first.
func (r *PlanRepository) List(ctx context.Context, institutionID string, limit, offset int) ([]models.PlanSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	const query = `SELECT id, exam_name, exam_date, total_students, rooms_count, institution_id, created_at
	FROM seating_plans WHERE institution_id = $1
	ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	var summaries []models.PlanSummary
	if err := r.db.SelectContext(ctx, &summaries, query, institutionID, limit, offset); err != nil {
		return nil, fmt.Errorf("list seating plans: %w", err)
	}
	return summaries, nil
}

// Count returns the number of plans stored for an institution.
func (r *PlanRepository) Count(ctx context.Context, institutionID string) (int, error) {
	const query = `SELECT COUNT(*) FROM seating_plans WHERE institution_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, institutionID); err != nil {
		return 0, fmt.Errorf("count seating plans: %w", err)
	}
	return total, nil
}

// GetByID loads one full plan, document included.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*models.SeatingPlan, error) {
	const query = `SELECT id, institution_id, exam_name, exam_date, total_students, rooms_count, seats_per_room, plan, created_at
	FROM seating_plans WHERE id = $1`
	var row planRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}

	plan := models.SeatingPlan{
		ID:            row.ID,
		InstitutionID: row.InstitutionID,
		ExamName:      row.ExamName,
		ExamDate:      row.ExamDate,
		TotalStudents: row.TotalStudents,
		RoomsCount:    row.RoomsCount,
		SeatsPerRoom:  row.SeatsPerRoom,
		CreatedAt:     row.CreatedAt,
	}
	if err := json.Unmarshal(row.Plan, &plan.Rooms); err != nil {
		return nil, fmt.Errorf("unmarshal plan document %s: %w", id, err)
	}
	return &plan, nil
}

// Delete removes a plan row.
func (r *PlanRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM seating_plans WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete seating plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("check plan delete rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
