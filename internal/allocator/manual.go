package allocator

import (
	"fmt"
	"time"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

// NewManualDraft opens an empty bench-mode draft over the given rooms. Each
// room needs a positive bench count; names default to "Room N".
func NewManualDraft(draftID, examName string, examDate *string, institutionID string, rooms []models.RoomLayout) (Draft, error) {
	if len(rooms) == 0 {
		return Draft{}, appErrors.Clone(appErrors.ErrInvalidLayout, "at least one room is required")
	}

	draft := Draft{
		ID:            draftID,
		Mode:          ModeManual,
		ExamName:      examName,
		ExamDate:      examDate,
		InstitutionID: institutionID,
		CreatedAt:     time.Now().UTC(),
	}
	for i, room := range rooms {
		if room.BenchCount <= 0 {
			return Draft{}, appErrors.Clone(appErrors.ErrInvalidLayout,
				fmt.Sprintf("room %d: benchCount must be positive", i+1))
		}
		roomNo := room.RoomNo
		if roomNo == 0 {
			roomNo = i + 1
		}
		name := room.Name
		if name == "" {
			name = fmt.Sprintf("Room %d", roomNo)
		}
		draft.Rooms = append(draft.Rooms, models.RoomPlan{
			RoomNo:     roomNo,
			RoomName:   name,
			Kind:       models.RoomKindBenches,
			BenchCount: room.BenchCount,
		})
	}
	return draft, nil
}

// SideAvailability reports which sides of a room are free and which class
// occupies an already-bound side.
type SideAvailability struct {
	RoomNo     int    `json:"roomNo"`
	RoomName   string `json:"roomName"`
	BenchCount int    `json:"benchCount"`
	LeftFree   bool   `json:"leftFree"`
	RightFree  bool   `json:"rightFree"`
	LeftClass  string `json:"leftClass,omitempty"`
	RightClass string `json:"rightClass,omitempty"`
}

// Availability implements the manual-mode checkAvailability operation.
func (d Draft) Availability(roomNo int) (SideAvailability, error) {
	i, err := d.roomIndex(roomNo)
	if err != nil {
		return SideAvailability{}, err
	}
	room := d.Rooms[i]
	if room.Kind != models.RoomKindBenches {
		return SideAvailability{}, appErrors.Clone(appErrors.ErrValidation, "room is not in bench mode")
	}

	avail := SideAvailability{
		RoomNo:     room.RoomNo,
		RoomName:   room.RoomName,
		BenchCount: room.BenchCount,
		LeftFree:   !room.SideOccupied(models.SideLeft),
		RightFree:  !room.SideOccupied(models.SideRight),
	}
	if binding := room.SideBinding(models.SideLeft); binding != nil {
		avail.LeftClass = binding.ClassName
	}
	if binding := room.SideBinding(models.SideRight); binding != nil {
		avail.RightClass = binding.ClassName
	}
	return avail, nil
}

// ClassAssignment is the observable result of one assign operation. Unplaced
// lists the students that did not fit on the requested side(s); the caller is
// expected to surface them, never to drop them silently.
type ClassAssignment struct {
	RoomNo     int              `json:"roomNo"`
	Side       models.Side      `json:"side"`
	ClassLabel string           `json:"classLabel"`
	Placed     int              `json:"placed"`
	Unplaced   []models.Student `json:"unplaced,omitempty"`
}

// AssignClass binds a class roster to one side (or both sides) of a bench
// room. The requested side must be free, the class must have students, and at
// most benchCount students fit per side; the overflow comes back in the
// assignment result.
func (d Draft) AssignClass(roomNo int, side models.Side, classLabel string, students []models.Student, inv models.Invigilator) (Draft, ClassAssignment, error) {
	i, err := d.roomIndex(roomNo)
	if err != nil {
		return Draft{}, ClassAssignment{}, err
	}
	if !side.Valid() {
		return Draft{}, ClassAssignment{}, appErrors.Clone(appErrors.ErrValidation, "side must be LEFT, RIGHT or BOTH")
	}
	if d.Rooms[i].Kind != models.RoomKindBenches {
		return Draft{}, ClassAssignment{}, appErrors.Clone(appErrors.ErrValidation, "room is not in bench mode")
	}
	if len(students) == 0 {
		return Draft{}, ClassAssignment{}, appErrors.Clone(appErrors.ErrNoStudentsForClass,
			fmt.Sprintf("no students found for class %s", classLabel))
	}

	room := d.Rooms[i]
	sides := []models.Side{side}
	if side == models.SideBoth {
		sides = []models.Side{models.SideLeft, models.SideRight}
	}
	for _, s := range sides {
		if room.SideOccupied(s) {
			return Draft{}, ClassAssignment{}, appErrors.Clone(appErrors.ErrSideOccupied,
				fmt.Sprintf("%s side of %s is already assigned", s, room.RoomName))
		}
	}

	next := d.clone()
	target := &next.Rooms[i]

	placed := 0
	remaining := students
	for _, s := range sides {
		take := target.BenchCount
		if take > len(remaining) {
			take = len(remaining)
		}
		occupants := remaining[:take]
		remaining = remaining[take:]
		placeSide(target, s, occupants, classLabel)
		target.Invigilators = append(target.Invigilators, models.InvigilatorBinding{
			Side:        s,
			TeacherID:   inv.ID,
			TeacherName: inv.FullName,
			ClassName:   classLabel,
		})
		placed += take
	}

	target.TotalSeats = target.Occupied()
	next.TotalStudents += placed

	assignment := ClassAssignment{
		RoomNo:     roomNo,
		Side:       side,
		ClassLabel: classLabel,
		Placed:     placed,
		Unplaced:   append([]models.Student(nil), remaining...),
	}
	return next, assignment, nil
}

// placeSide writes occupants onto one side, growing the bench list so the
// union of both sides is always represented. The shorter side keeps nil cells.
func placeSide(room *models.RoomPlan, side models.Side, occupants []models.Student, classLabel string) {
	for len(room.Benches) < len(occupants) {
		room.Benches = append(room.Benches, models.Bench{BenchNo: len(room.Benches) + 1})
	}
	for idx, student := range occupants {
		ref := &models.SeatRef{
			RollNo:      student.RollNo,
			StudentName: student.FullName,
			UserID:      student.ID,
			ClassName:   classLabel,
		}
		if side == models.SideLeft {
			room.Benches[idx].LeftSeat = ref
		} else {
			room.Benches[idx].RightSeat = ref
		}
	}
}
