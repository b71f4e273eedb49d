package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/exam-seating-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func samplePlan() *models.SeatingPlan {
	return &models.SeatingPlan{
		ExamName:      "Board Exam 2026",
		InstitutionID: "inst-1",
		TotalStudents: 2,
		RoomsCount:    1,
		Rooms: []models.RoomPlan{
			{
				RoomNo:   1,
				RoomName: "Room 1",
				Kind:     models.RoomKindSeats,
				Seats: []models.Seat{
					{SeatNo: 1, RollNo: "1"},
					{SeatNo: 2, RollNo: "2"},
				},
				TotalSeats:      2,
				InvigilatorID:   "T1",
				InvigilatorName: "Bu Ani",
			},
		},
	}
}

func TestPlanRepositorySaveAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlanRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO seating_plans")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	plan := samplePlan()
	require.NoError(t, repo.Save(context.Background(), plan))
	require.NotEmpty(t, plan.ID)
	require.False(t, plan.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositorySaveAsNewVersion(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlanRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO seating_plans")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO seating_plans")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	plan := samplePlan()
	require.NoError(t, repo.Save(context.Background(), plan))
	firstID := plan.ID

	// Saving an already-persisted plan must insert a fresh row.
	require.NoError(t, repo.Save(context.Background(), plan))
	require.NotEqual(t, firstID, plan.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryGetByIDUnpacksDocument(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlanRepository(db)
	doc, err := json.Marshal(samplePlan().Rooms)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "institution_id", "exam_name", "exam_date", "total_students", "rooms_count", "seats_per_room", "plan", "created_at"}).
		AddRow("plan-1", "inst-1", "Board Exam 2026", nil, 2, 1, nil, doc, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, institution_id, exam_name")).
		WithArgs("plan-1").
		WillReturnRows(rows)

	plan, err := repo.GetByID(context.Background(), "plan-1")
	require.NoError(t, err)
	require.Equal(t, "Board Exam 2026", plan.ExamName)
	require.Len(t, plan.Rooms, 1)
	require.Equal(t, models.RoomKindSeats, plan.Rooms[0].Kind)
	require.Len(t, plan.Rooms[0].Seats, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryListNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlanRepository(db)
	rows := sqlmock.NewRows([]string{"id", "exam_name", "exam_date", "total_students", "rooms_count", "institution_id", "created_at"}).
		AddRow("plan-2", "Finals", nil, 30, 2, "inst-1", time.Now()).
		AddRow("plan-1", "Mid-Term", nil, 25, 2, "inst-1", time.Now().Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs("inst-1", 50, 0).
		WillReturnRows(rows)

	summaries, err := repo.List(context.Background(), "inst-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, "plan-2", summaries[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewPlanRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM seating_plans")).
		WithArgs("plan-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "plan-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM seating_plans")).
		WithArgs("plan-2").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.Error(t, repo.Delete(context.Background(), "plan-2"))
	require.NoError(t, mock.ExpectationsWereMet())
}
