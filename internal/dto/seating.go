package dto

import "github.com/edusuite/exam-seating-api/internal/models"

// RoomLayoutRequest describes one room in an automatic generation request.
// Rooms come in grid form (rows x columns with optional excluded seats).
type RoomLayoutRequest struct {
	RoomNo        int    `json:"roomNo" validate:"omitempty,min=1"`
	Name          string `json:"name"`
	Rows          int    `json:"rows" validate:"required,min=1"`
	Columns       int    `json:"columns" validate:"required,min=1"`
	ExcludedSeats []int  `json:"excludedSeats"`
}

// GeneratePlanRequest drives the automatic allocator. Either Rooms or the
// legacy RoomsCount/SeatsPerRoom pair must be present; ClassLabels pulls the
// roster from enrollment, otherwise a synthetic roster starts at StartRollNo.
type GeneratePlanRequest struct {
	ExamName      string              `json:"examName" validate:"required"`
	ExamDate      *string             `json:"examDate"`
	InstitutionID string              `json:"institutionId" validate:"required"`
	TotalStudents int                 `json:"totalStudents" validate:"omitempty,min=1"`
	StartRollNo   int                 `json:"startRollNo" validate:"omitempty,min=1"`
	ClassLabels   []string            `json:"classLabels"`
	Rooms         []RoomLayoutRequest `json:"rooms" validate:"omitempty,dive"`
	RoomsCount    int                 `json:"roomsCount" validate:"omitempty,min=1"`
	SeatsPerRoom  int                 `json:"seatsPerRoom" validate:"omitempty,min=1"`
	Seed          *int64              `json:"seed"`
}

// BenchRoomRequest describes one bench-mode room for a manual draft.
type BenchRoomRequest struct {
	RoomNo     int    `json:"roomNo" validate:"omitempty,min=1"`
	Name       string `json:"name"`
	BenchCount int    `json:"benchCount" validate:"required,min=1"`
}

// CreateDraftRequest opens a manual bench-allocation draft.
type CreateDraftRequest struct {
	ExamName      string             `json:"examName" validate:"required"`
	ExamDate      *string            `json:"examDate"`
	InstitutionID string             `json:"institutionId" validate:"required"`
	Rooms         []BenchRoomRequest `json:"rooms" validate:"required,min=1,dive"`
}

// AssignClassRequest binds one class to a side of a bench room.
type AssignClassRequest struct {
	RoomNo        int         `json:"roomNo" validate:"required,min=1"`
	Side          models.Side `json:"side" validate:"required,oneof=LEFT RIGHT BOTH"`
	ClassLabel    string      `json:"classLabel" validate:"required"`
	InvigilatorID string      `json:"invigilatorId" validate:"required"`
}

// BindInvigilatorRequest attaches a room-level invigilator.
type BindInvigilatorRequest struct {
	InvigilatorID string `json:"invigilatorId" validate:"required"`
}

// SeatLookupResponse answers the "find my seat" query against a saved plan.
type SeatLookupResponse struct {
	PlanID      string  `json:"planId"`
	ExamName    string  `json:"examName"`
	ExamDate    *string `json:"examDate,omitempty"`
	RoomNo      int     `json:"roomNo"`
	RoomName    string  `json:"roomName"`
	SeatNo      int     `json:"seatNo,omitempty"`
	BenchNo     int     `json:"benchNo,omitempty"`
	Side        string  `json:"side,omitempty"`
	RollNo      string  `json:"rollNo"`
	StudentName string  `json:"studentName,omitempty"`
}

// PlanQuery mirrors the supported listing filters.
type PlanQuery struct {
	InstitutionID string
	Page          int
	Limit         int
}
