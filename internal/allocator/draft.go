package allocator

import (
	"time"

	"github.com/edusuite/exam-seating-api/internal/models"
	appErrors "github.com/edusuite/exam-seating-api/pkg/errors"
)

// Mode distinguishes the two allocation strategies.
type Mode string

const (
	ModeAutomatic Mode = "AUTOMATIC"
	ModeManual    Mode = "MANUAL"
)

// Draft is an in-progress seating plan. It has no persistent identity until
// committed. All transitions are pure: they return a new Draft and leave the
// receiver untouched, so a failed operation never corrupts prior work.
type Draft struct {
	ID            string            `json:"id"`
	Mode          Mode              `json:"mode"`
	ExamName      string            `json:"examName"`
	ExamDate      *string           `json:"examDate"`
	InstitutionID string            `json:"institutionId"`
	TotalStudents int               `json:"totalStudents"`
	SeatsPerRoom  *int              `json:"seatsPerRoom,omitempty"`
	Rooms         []models.RoomPlan `json:"seatingPlan"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// clone deep-copies the draft so transitions can mutate freely.
func (d Draft) clone() Draft {
	next := d
	next.Rooms = make([]models.RoomPlan, len(d.Rooms))
	for i, room := range d.Rooms {
		next.Rooms[i] = cloneRoom(room)
	}
	if d.ExamDate != nil {
		date := *d.ExamDate
		next.ExamDate = &date
	}
	if d.SeatsPerRoom != nil {
		spr := *d.SeatsPerRoom
		next.SeatsPerRoom = &spr
	}
	return next
}

func cloneRoom(room models.RoomPlan) models.RoomPlan {
	out := room
	out.Seats = append([]models.Seat(nil), room.Seats...)
	out.ExcludedSeats = append([]int(nil), room.ExcludedSeats...)
	out.Invigilators = append([]models.InvigilatorBinding(nil), room.Invigilators...)
	out.Benches = make([]models.Bench, len(room.Benches))
	for i, bench := range room.Benches {
		cloned := bench
		if bench.LeftSeat != nil {
			ref := *bench.LeftSeat
			cloned.LeftSeat = &ref
		}
		if bench.RightSeat != nil {
			ref := *bench.RightSeat
			cloned.RightSeat = &ref
		}
		out.Benches[i] = cloned
	}
	return out
}

func (d Draft) roomIndex(roomNo int) (int, error) {
	for i := range d.Rooms {
		if d.Rooms[i].RoomNo == roomNo {
			return i, nil
		}
	}
	return 0, appErrors.Clone(appErrors.ErrNotFound, "room not found in draft")
}

// Room returns the room plan with the given number.
func (d Draft) Room(roomNo int) (models.RoomPlan, error) {
	i, err := d.roomIndex(roomNo)
	if err != nil {
		return models.RoomPlan{}, err
	}
	return cloneRoom(d.Rooms[i]), nil
}

// BindInvigilator binds or replaces the room-level invigilator. It is a pure
// labeling operation with no capacity constraint.
func (d Draft) BindInvigilator(roomNo int, inv models.Invigilator) (Draft, error) {
	i, err := d.roomIndex(roomNo)
	if err != nil {
		return Draft{}, err
	}
	next := d.clone()
	next.Rooms[i].InvigilatorID = inv.ID
	next.Rooms[i].InvigilatorName = inv.FullName
	return next, nil
}

// Duties lists every room or room side the invigilator currently covers.
func (d Draft) Duties(teacherID string) []models.InvigilatorDuty {
	duties := make([]models.InvigilatorDuty, 0)
	for _, room := range d.Rooms {
		if room.InvigilatorID == teacherID {
			duties = append(duties, models.InvigilatorDuty{
				RoomNo:   room.RoomNo,
				RoomName: room.RoomName,
			})
		}
		for _, binding := range room.Invigilators {
			if binding.TeacherID == teacherID {
				duties = append(duties, models.InvigilatorDuty{
					RoomNo:    room.RoomNo,
					RoomName:  room.RoomName,
					Side:      binding.Side,
					ClassName: binding.ClassName,
				})
			}
		}
	}
	return duties
}

// Validate is the commit-time guard. Every room holding at least one student
// must have an invigilator, and the draft must seat at least one student.
func (d Draft) Validate() error {
	occupied := 0
	for _, room := range d.Rooms {
		n := room.Occupied()
		occupied += n
		if n > 0 && !room.Invigilated() {
			return appErrors.Clone(appErrors.ErrIncompleteInvigilation,
				"room "+room.RoomName+" has students but no invigilator")
		}
	}
	if occupied == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "plan has no assigned students")
	}
	return nil
}

// Plan converts the draft into a SeatingPlan ready for persistence. The
// repository assigns identity and timestamp on save.
func (d Draft) Plan() models.SeatingPlan {
	snapshot := d.clone()
	return models.SeatingPlan{
		ExamName:      snapshot.ExamName,
		ExamDate:      snapshot.ExamDate,
		TotalStudents: snapshot.TotalStudents,
		RoomsCount:    len(snapshot.Rooms),
		SeatsPerRoom:  snapshot.SeatsPerRoom,
		Rooms:         snapshot.Rooms,
		InstitutionID: snapshot.InstitutionID,
	}
}

// FromPlan reopens a committed plan as a fresh draft for further edits.
// Committing the result creates a new version, never an in-place patch.
func FromPlan(draftID string, plan models.SeatingPlan) Draft {
	mode := ModeAutomatic
	for _, room := range plan.Rooms {
		if room.Kind == models.RoomKindBenches {
			mode = ModeManual
			break
		}
	}
	draft := Draft{
		ID:            draftID,
		Mode:          mode,
		ExamName:      plan.ExamName,
		ExamDate:      plan.ExamDate,
		InstitutionID: plan.InstitutionID,
		TotalStudents: plan.TotalStudents,
		SeatsPerRoom:  plan.SeatsPerRoom,
		Rooms:         plan.Rooms,
		CreatedAt:     time.Now().UTC(),
	}
	return draft.clone()
}
