package models

import "time"

// RoomKind tags the occupant representation of a room result. Consumers
// switch on the tag instead of probing optional fields.
type RoomKind string

const (
	RoomKindSeats   RoomKind = "SEATS"
	RoomKindBenches RoomKind = "BENCHES"
)

// Seat is one occupied grid position.
type Seat struct {
	SeatNo      int    `json:"seatNo"`
	RollNo      string `json:"rollNo"`
	StudentName string `json:"studentName,omitempty"`
	UserID      string `json:"userId,omitempty"`
}

// SeatRef identifies the occupant of one bench side.
type SeatRef struct {
	RollNo      string `json:"rollNo"`
	StudentName string `json:"studentName,omitempty"`
	UserID      string `json:"userId,omitempty"`
	ClassName   string `json:"className,omitempty"`
}

// Bench is a two-seat unit with independent left/right sides. A nil side is an
// empty cell, which happens when the two bound classes differ in size.
type Bench struct {
	BenchNo   int      `json:"benchNo"`
	LeftSeat  *SeatRef `json:"leftSeat"`
	RightSeat *SeatRef `json:"rightSeat"`
}

// InvigilatorBinding ties a supervising teacher to a room side and the class
// seated there (manual mode).
type InvigilatorBinding struct {
	Side        Side   `json:"side"`
	TeacherID   string `json:"teacherId"`
	TeacherName string `json:"teacherName"`
	ClassName   string `json:"className"`
}

// RoomPlan is the allocation result for one room.
type RoomPlan struct {
	RoomNo          int                  `json:"roomNo"`
	RoomName        string               `json:"roomName"`
	Kind            RoomKind             `json:"kind"`
	Rows            int                  `json:"rows,omitempty"`
	Columns         int                  `json:"columns,omitempty"`
	ExcludedSeats   []int                `json:"excludedSeats,omitempty"`
	BenchCount      int                  `json:"benchCount,omitempty"`
	TotalSeats      int                  `json:"totalSeats"`
	Seats           []Seat               `json:"seats,omitempty"`
	Benches         []Bench              `json:"benches,omitempty"`
	InvigilatorID   string               `json:"invigilatorId,omitempty"`
	InvigilatorName string               `json:"invigilatorName,omitempty"`
	Invigilators    []InvigilatorBinding `json:"invigilators,omitempty"`
}

// Occupied counts students currently seated in the room.
func (r RoomPlan) Occupied() int {
	switch r.Kind {
	case RoomKindSeats:
		return len(r.Seats)
	case RoomKindBenches:
		n := 0
		for _, b := range r.Benches {
			if b.LeftSeat != nil {
				n++
			}
			if b.RightSeat != nil {
				n++
			}
		}
		return n
	}
	return 0
}

// Invigilated reports whether at least one invigilator is bound to the room.
func (r RoomPlan) Invigilated() bool {
	return r.InvigilatorID != "" || len(r.Invigilators) > 0
}

// SideBinding returns the invigilator binding for the given side, if any.
func (r RoomPlan) SideBinding(side Side) *InvigilatorBinding {
	for i := range r.Invigilators {
		if r.Invigilators[i].Side == side {
			return &r.Invigilators[i]
		}
	}
	return nil
}

// SideOccupied reports whether the given bench side already holds a class.
func (r RoomPlan) SideOccupied(side Side) bool {
	if r.SideBinding(side) != nil {
		return true
	}
	for _, b := range r.Benches {
		if side == SideLeft && b.LeftSeat != nil {
			return true
		}
		if side == SideRight && b.RightSeat != nil {
			return true
		}
	}
	return false
}

// SeatingPlan is a committed allocation: exam metadata plus per-room results.
// Rows are immutable once persisted; edits go through load, mutate, and
// save-as-new-version.
type SeatingPlan struct {
	ID            string     `json:"id,omitempty"`
	ExamName      string     `json:"examName"`
	ExamDate      *string    `json:"examDate"`
	TotalStudents int        `json:"totalStudents"`
	RoomsCount    int        `json:"roomsCount"`
	SeatsPerRoom  *int       `json:"seatsPerRoom"`
	Rooms         []RoomPlan `json:"seatingPlan"`
	InstitutionID string     `json:"institutionId"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// PlanSummary is the list projection of a committed plan.
type PlanSummary struct {
	ID            string    `db:"id" json:"id"`
	ExamName      string    `db:"exam_name" json:"examName"`
	ExamDate      *string   `db:"exam_date" json:"examDate"`
	TotalStudents int       `db:"total_students" json:"totalStudents"`
	RoomsCount    int       `db:"rooms_count" json:"roomsCount"`
	InstitutionID string    `db:"institution_id" json:"institutionId"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
