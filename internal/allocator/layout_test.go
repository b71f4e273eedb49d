package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

func TestCapacityBasic(t *testing.T) {
	capacity, err := Capacity(models.RoomLayout{Name: "Hall A", Rows: 6, Columns: 5})
	require.NoError(t, err)
	assert.Equal(t, 30, capacity)
}

func TestCapacityWithExclusions(t *testing.T) {
	capacity, err := Capacity(models.RoomLayout{
		Name: "Hall A", Rows: 6, Columns: 5,
		ExcludedSeats: []int{1, 2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 27, capacity)
}

func TestCapacityIgnoresOutOfRangeExclusions(t *testing.T) {
	capacity, err := Capacity(models.RoomLayout{
		Name: "Hall A", Rows: 2, Columns: 2,
		ExcludedSeats: []int{0, 4, 5, 99, -3},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, capacity)
}

func TestCapacityDuplicateExclusionsCountedOnce(t *testing.T) {
	capacity, err := Capacity(models.RoomLayout{
		Name: "Hall A", Rows: 2, Columns: 2,
		ExcludedSeats: []int{1, 1, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, capacity)
}

func TestCapacityInvalidDimensions(t *testing.T) {
	for _, layout := range []models.RoomLayout{
		{Name: "zero rows", Rows: 0, Columns: 5},
		{Name: "zero cols", Rows: 5, Columns: 0},
		{Name: "negative", Rows: -1, Columns: 5},
	} {
		_, err := Capacity(layout)
		require.Error(t, err, layout.Name)
		assert.Equal(t, appErrors.ErrInvalidLayout.Code, appErrors.FromError(err).Code)
	}
}

func TestTotalCapacity(t *testing.T) {
	total, err := TotalCapacity([]models.RoomLayout{
		{Rows: 2, Columns: 5},
		{Rows: 3, Columns: 4, ExcludedSeats: []int{12}},
	})
	require.NoError(t, err)
	assert.Equal(t, 21, total)
}

func TestUsableSeatsRowMajorSkipsExclusions(t *testing.T) {
	seats := usableSeats(models.RoomLayout{Rows: 2, Columns: 3, ExcludedSeats: []int{2, 6}})
	assert.Equal(t, []int{1, 3, 4, 5}, seats)
}
