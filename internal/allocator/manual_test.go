package allocator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

func benchDraft(t *testing.T, benchCount int) Draft {
	t.Helper()
	draft, err := NewManualDraft("draft-1", "Mid-Term", nil, "inst-1", []models.RoomLayout{
		{Name: "Room A", BenchCount: benchCount},
	})
	require.NoError(t, err)
	return draft
}

func classOf(label string, size int) []models.Student {
	students := make([]models.Student, size)
	for i := range students {
		students[i] = models.Student{
			ID:         label + "-" + strconv.Itoa(i+1),
			RollNo:     strconv.Itoa(i + 1),
			FullName:   "Student " + strconv.Itoa(i+1),
			ClassLabel: label,
		}
	}
	return students
}

var (
	teacherOne = models.Invigilator{ID: "T1", FullName: "Bu Ani"}
	teacherTwo = models.Invigilator{ID: "T2", FullName: "Pak Budi"}
)

func TestNewManualDraftValidation(t *testing.T) {
	_, err := NewManualDraft("d", "Exam", nil, "inst-1", nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidLayout.Code, appErrors.FromError(err).Code)

	_, err = NewManualDraft("d", "Exam", nil, "inst-1", []models.RoomLayout{{Name: "Bad"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidLayout.Code, appErrors.FromError(err).Code)
}

func TestAssignClassLeftThenLeftRejected(t *testing.T) {
	draft := benchDraft(t, 10)

	next, result, err := draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 8), teacherOne)
	require.NoError(t, err)
	assert.Equal(t, 8, result.Placed)
	assert.Empty(t, result.Unplaced)

	_, _, err = next.AssignClass(1, models.SideLeft, "10-B", classOf("10-B", 5), teacherTwo)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSideOccupied.Code, appErrors.FromError(err).Code)

	// Same room, other side still works.
	_, _, err = next.AssignClass(1, models.SideRight, "10-B", classOf("10-B", 5), teacherTwo)
	require.NoError(t, err)
}

func TestAssignClassNoStudents(t *testing.T) {
	draft := benchDraft(t, 10)
	_, _, err := draft.AssignClass(1, models.SideLeft, "11-C", nil, teacherOne)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoStudentsForClass.Code, appErrors.FromError(err).Code)
}

func TestAssignClassSurfacesTruncation(t *testing.T) {
	draft := benchDraft(t, 4)
	_, result, err := draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 7), teacherOne)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Placed)
	require.Len(t, result.Unplaced, 3)
	assert.Equal(t, "5", result.Unplaced[0].RollNo)
}

func TestAssignClassBothSides(t *testing.T) {
	draft := benchDraft(t, 3)
	next, result, err := draft.AssignClass(1, models.SideBoth, "10-A", classOf("10-A", 5), teacherOne)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Placed)
	assert.Empty(t, result.Unplaced)

	room := next.Rooms[0]
	require.Len(t, room.Benches, 3)
	assert.NotNil(t, room.Benches[0].LeftSeat)
	assert.NotNil(t, room.Benches[1].RightSeat)
	assert.Nil(t, room.Benches[2].RightSeat, "5 students on 3 benches leave one right cell empty")
	require.Len(t, room.Invigilators, 2)

	// Both sides now blocked for any further class.
	_, _, err = next.AssignClass(1, models.SideRight, "10-B", classOf("10-B", 2), teacherTwo)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSideOccupied.Code, appErrors.FromError(err).Code)
}

func TestAssignClassBenchUnionToleratesAsymmetricSizes(t *testing.T) {
	draft := benchDraft(t, 10)

	next, _, err := draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 3), teacherOne)
	require.NoError(t, err)
	next, _, err = next.AssignClass(1, models.SideRight, "10-B", classOf("10-B", 5), teacherTwo)
	require.NoError(t, err)

	room := next.Rooms[0]
	require.Len(t, room.Benches, 5, "bench list follows the longer side")
	assert.NotNil(t, room.Benches[2].LeftSeat)
	assert.Nil(t, room.Benches[3].LeftSeat)
	assert.Nil(t, room.Benches[4].LeftSeat)
	assert.NotNil(t, room.Benches[4].RightSeat)
	assert.Equal(t, 8, room.Occupied())
	assert.Equal(t, 8, next.TotalStudents)
}

func TestAssignClassPureTransition(t *testing.T) {
	draft := benchDraft(t, 5)
	_, _, err := draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 4), teacherOne)
	require.NoError(t, err)

	// Original draft untouched by the successful transition.
	assert.Zero(t, draft.TotalStudents)
	assert.Empty(t, draft.Rooms[0].Benches)
	assert.Empty(t, draft.Rooms[0].Invigilators)
}

func TestAvailabilityReportsOccupants(t *testing.T) {
	draft := benchDraft(t, 6)

	avail, err := draft.Availability(1)
	require.NoError(t, err)
	assert.True(t, avail.LeftFree)
	assert.True(t, avail.RightFree)

	next, _, err := draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 4), teacherOne)
	require.NoError(t, err)

	avail, err = next.Availability(1)
	require.NoError(t, err)
	assert.False(t, avail.LeftFree)
	assert.True(t, avail.RightFree)
	assert.Equal(t, "10-A", avail.LeftClass)
	assert.Empty(t, avail.RightClass)
}

func TestAvailabilityUnknownRoom(t *testing.T) {
	draft := benchDraft(t, 6)
	_, err := draft.Availability(9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDutiesAcrossRoomsAndSides(t *testing.T) {
	draft, err := NewManualDraft("draft-1", "Finals", nil, "inst-1", []models.RoomLayout{
		{Name: "Room A", BenchCount: 5},
		{Name: "Room B", BenchCount: 5},
	})
	require.NoError(t, err)

	draft, _, err = draft.AssignClass(1, models.SideLeft, "10-A", classOf("10-A", 3), teacherOne)
	require.NoError(t, err)
	draft, _, err = draft.AssignClass(2, models.SideRight, "10-B", classOf("10-B", 3), teacherOne)
	require.NoError(t, err)

	duties := draft.Duties("T1")
	require.Len(t, duties, 2, "double-duty must be visible to the operator")
	assert.Equal(t, models.SideLeft, duties[0].Side)
	assert.Equal(t, "Room B", duties[1].RoomName)

	assert.Empty(t, draft.Duties("T2"))
}
