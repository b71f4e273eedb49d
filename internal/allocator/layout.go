package allocator

import (
	"fmt"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

// Capacity computes the usable seat count of a grid layout. Exclusions outside
// [1, rows*columns] are ignored: operators mis-key seat numbers often enough
// that rejecting the whole layout would be worse than tolerating the typo.
func Capacity(layout models.RoomLayout) (int, error) {
	if layout.Rows <= 0 || layout.Columns <= 0 {
		return 0, appErrors.Clone(appErrors.ErrInvalidLayout,
			fmt.Sprintf("room %q: rows and columns must be positive", layout.Name))
	}

	total := layout.Rows * layout.Columns
	excluded := make(map[int]struct{}, len(layout.ExcludedSeats))
	for _, seatNo := range layout.ExcludedSeats {
		if seatNo >= 1 && seatNo <= total {
			excluded[seatNo] = struct{}{}
		}
	}
	return total - len(excluded), nil
}

// TotalCapacity sums per-room capacities, failing on the first invalid layout.
func TotalCapacity(layouts []models.RoomLayout) (int, error) {
	total := 0
	for _, layout := range layouts {
		capacity, err := Capacity(layout)
		if err != nil {
			return 0, err
		}
		total += capacity
	}
	return total, nil
}

// usableSeats returns the seat numbers of a layout in row-major order with
// exclusions removed.
func usableSeats(layout models.RoomLayout) []int {
	total := layout.Rows * layout.Columns
	excluded := make(map[int]struct{}, len(layout.ExcludedSeats))
	for _, seatNo := range layout.ExcludedSeats {
		excluded[seatNo] = struct{}{}
	}

	seats := make([]int, 0, total)
	for seatNo := 1; seatNo <= total; seatNo++ {
		if _, skip := excluded[seatNo]; skip {
			continue
		}
		seats = append(seats, seatNo)
	}
	return seats
}
