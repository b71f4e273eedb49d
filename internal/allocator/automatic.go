package allocator

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

// AutomaticRequest carries everything the bulk allocator needs. Either Layouts
// or the legacy (RoomsCount, SeatsPerRoom) pair must be provided. When Roster
// is empty a synthetic roll sequence starting at StartRoll stands in for it.
type AutomaticRequest struct {
	ExamName      string
	ExamDate      *string
	InstitutionID string
	TotalStudents int
	StartRoll     int
	Roster        []models.Student
	Layouts       []models.RoomLayout
	RoomsCount    int
	SeatsPerRoom  int
}

// Allocate runs the bulk randomized fill. The provided rand source is the only
// source of non-determinism; a fixed seed reproduces the plan exactly.
func Allocate(draftID string, req AutomaticRequest, rng *rand.Rand) (Draft, error) {
	layouts, legacy, err := resolveLayouts(req)
	if err != nil {
		return Draft{}, err
	}

	students := req.Roster
	if len(students) == 0 {
		students = syntheticRoster(req.TotalStudents, req.StartRoll)
	}

	totalCapacity, err := TotalCapacity(layouts)
	if err != nil {
		return Draft{}, err
	}
	if len(students) > totalCapacity {
		return Draft{}, appErrors.Clone(appErrors.ErrCapacityExceeded,
			fmt.Sprintf("%d students but only %d seats available", len(students), totalCapacity))
	}

	// Uniform permutation so seat neighbours are unrelated to roster order.
	shuffled := append([]models.Student(nil), students...)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	draft := Draft{
		ID:            draftID,
		Mode:          ModeAutomatic,
		ExamName:      req.ExamName,
		ExamDate:      req.ExamDate,
		InstitutionID: req.InstitutionID,
		TotalStudents: len(students),
		CreatedAt:     time.Now().UTC(),
	}
	if legacy {
		spr := req.SeatsPerRoom
		draft.SeatsPerRoom = &spr
	}

	placed := 0
	for _, layout := range layouts {
		room := models.RoomPlan{
			RoomNo:   layout.RoomNo,
			RoomName: layout.Name,
			Kind:     models.RoomKindSeats,
		}
		if !legacy {
			room.Rows = layout.Rows
			room.Columns = layout.Columns
			room.ExcludedSeats = append([]int(nil), layout.ExcludedSeats...)
		}
		for _, seatNo := range usableSeats(layout) {
			if placed >= len(shuffled) {
				break
			}
			student := shuffled[placed]
			room.Seats = append(room.Seats, models.Seat{
				SeatNo:      seatNo,
				RollNo:      student.RollNo,
				StudentName: student.FullName,
				UserID:      student.ID,
			})
			placed++
		}
		room.TotalSeats = len(room.Seats)
		draft.Rooms = append(draft.Rooms, room)
	}

	return draft, nil
}

func resolveLayouts(req AutomaticRequest) ([]models.RoomLayout, bool, error) {
	if len(req.Layouts) > 0 {
		layouts := make([]models.RoomLayout, len(req.Layouts))
		for i, layout := range req.Layouts {
			layouts[i] = layout
			if layouts[i].RoomNo == 0 {
				layouts[i].RoomNo = i + 1
			}
			if layouts[i].Name == "" {
				layouts[i].Name = fmt.Sprintf("Room %d", layouts[i].RoomNo)
			}
		}
		return layouts, false, nil
	}

	if req.RoomsCount <= 0 || req.SeatsPerRoom <= 0 {
		return nil, false, appErrors.Clone(appErrors.ErrInvalidLayout,
			"either room layouts or positive roomsCount and seatsPerRoom are required")
	}

	// Legacy simple mode: seats are unindexed by row/column, so each room is
	// modeled as a single row.
	layouts := make([]models.RoomLayout, req.RoomsCount)
	for i := range layouts {
		layouts[i] = models.RoomLayout{
			RoomNo:  i + 1,
			Name:    fmt.Sprintf("Room %d", i+1),
			Rows:    1,
			Columns: req.SeatsPerRoom,
		}
	}
	return layouts, true, nil
}

func syntheticRoster(total, startRoll int) []models.Student {
	if startRoll <= 0 {
		startRoll = 1
	}
	students := make([]models.Student, total)
	for i := range students {
		students[i] = models.Student{RollNo: strconv.Itoa(startRoll + i)}
	}
	return students
}
