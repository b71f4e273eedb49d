package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestRosterRepositoryListClassStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRosterRepository(db)
	rows := sqlmock.NewRows([]string{"id", "roll_no", "full_name", "class_label", "institution_id", "active", "created_at"}).
		AddRow("u1", "1", "Adi", "10-A", "inst-1", true, time.Now()).
		AddRow("u2", "2", "Budi", "10-A", "inst-1", true, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY roll_no ASC")).
		WithArgs("inst-1", "10-A").
		WillReturnRows(rows)

	students, err := repo.ListClassStudents(context.Background(), "inst-1", "10-A")
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "Adi", students[0].FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryFindInvigilator(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRosterRepository(db)
	rows := sqlmock.NewRows([]string{"id", "full_name", "active"}).
		AddRow("T1", "Bu Ani", true)
	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers")).
		WithArgs("inst-1", "T1").
		WillReturnRows(rows)

	inv, err := repo.FindInvigilator(context.Background(), "inst-1", "T1")
	require.NoError(t, err)
	require.Equal(t, "Bu Ani", inv.FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}
