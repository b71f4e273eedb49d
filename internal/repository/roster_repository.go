package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edusuite/exam-seating-api/internal/models"
)

// RosterRepository reads student rosters and teacher records for allocation.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs the repository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ListClassStudents returns the active students of one class ordered by roll
// number, which is the order the allocators expect before shuffling.
func (r *RosterRepository) ListClassStudents(ctx context.Context, institutionID, classLabel string) ([]models.Student, error) {
	const query = `SELECT id, roll_no, full_name, class_label, institution_id, active, created_at
	FROM students WHERE institution_id = $1 AND class_label = $2 AND active = TRUE
	ORDER BY roll_no ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, institutionID, classLabel); err != nil {
		return nil, fmt.Errorf("list students for class %s: %w", classLabel, err)
	}
	return students, nil
}

// FindInvigilator loads one teacher record by id.
func (r *RosterRepository) FindInvigilator(ctx context.Context, institutionID, teacherID string) (*models.Invigilator, error) {
	const query = `SELECT id, full_name, active
	FROM teachers WHERE institution_id = $1 AND id = $2`
	var inv models.Invigilator
	if err := r.db.GetContext(ctx, &inv, query, institutionID, teacherID); err != nil {
		return nil, err
	}
	return &inv, nil
}
