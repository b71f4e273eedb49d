package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

func TestValidateIncompleteInvigilation(t *testing.T) {
	draft := benchDraft(t, 5)
	draft, _, err := draft.AssignClass(1, models.SideRight, "10-B", classOf("10-B", 3), teacherTwo)
	require.NoError(t, err)

	// Strip the binding to simulate a class seated without a supervisor.
	draft.Rooms[0].Invigilators = nil

	err = draft.Validate()
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrIncompleteInvigilation.Code, appErrors.FromError(err).Code)
}

func TestValidateEmptyRoomsNeedNoInvigilator(t *testing.T) {
	draft, err := NewManualDraft("d", "Finals", nil, "inst-1", []models.RoomLayout{
		{Name: "Room A", BenchCount: 5},
		{Name: "Room B", BenchCount: 5},
	})
	require.NoError(t, err)

	draft, _, err = draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 3), teacherOne)
	require.NoError(t, err)

	// Room B never used; only Room A needs supervision and it has it.
	require.NoError(t, draft.Validate())
}

func TestValidateRejectsEmptyPlan(t *testing.T) {
	draft := benchDraft(t, 5)
	err := draft.Validate()
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBindInvigilatorAutomaticMode(t *testing.T) {
	draft, err := Allocate("draft-1", AutomaticRequest{
		TotalStudents: 4,
		RoomsCount:    2,
		SeatsPerRoom:  2,
	}, testRNG(1))
	require.NoError(t, err)

	err = draft.Validate()
	require.Error(t, err, "no invigilators yet")

	draft, err = draft.BindInvigilator(1, teacherOne)
	require.NoError(t, err)
	draft, err = draft.BindInvigilator(2, teacherTwo)
	require.NoError(t, err)

	require.NoError(t, draft.Validate())
	assert.Equal(t, "Bu Ani", draft.Rooms[0].InvigilatorName)

	// Rebinding replaces, not appends.
	draft, err = draft.BindInvigilator(1, teacherTwo)
	require.NoError(t, err)
	assert.Equal(t, "T2", draft.Rooms[0].InvigilatorID)
}

func TestBindInvigilatorUnknownRoom(t *testing.T) {
	draft := benchDraft(t, 3)
	_, err := draft.BindInvigilator(42, teacherOne)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPlanSnapshotAndReopen(t *testing.T) {
	draft := benchDraft(t, 4)
	draft, _, err := draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 4), teacherOne)
	require.NoError(t, err)

	plan := draft.Plan()
	assert.Equal(t, "Mid-Term", plan.ExamName)
	assert.Equal(t, 1, plan.RoomsCount)
	assert.Equal(t, 4, plan.TotalStudents)
	assert.Equal(t, "inst-1", plan.InstitutionID)
	assert.Empty(t, plan.ID, "identity is assigned at save time")

	reopened := FromPlan("draft-2", plan)
	assert.Equal(t, ModeManual, reopened.Mode)
	assert.Equal(t, "draft-2", reopened.ID)
	require.Len(t, reopened.Rooms, 1)
	assert.Equal(t, 4, reopened.Rooms[0].Occupied())

	// Mutating the reopened draft leaves the plan snapshot alone.
	reopened.Rooms[0].Benches[0].LeftSeat = nil
	assert.NotNil(t, plan.Rooms[0].Benches[0].LeftSeat)
}

func TestFromPlanDetectsAutomaticMode(t *testing.T) {
	original, err := Allocate("draft-1", AutomaticRequest{
		TotalStudents: 2,
		RoomsCount:    1,
		SeatsPerRoom:  5,
	}, testRNG(9))
	require.NoError(t, err)

	reopened := FromPlan("draft-2", original.Plan())
	assert.Equal(t, ModeAutomatic, reopened.Mode)
}
