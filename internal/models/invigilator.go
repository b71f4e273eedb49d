package models

// Invigilator is a staff member supervising a room or room side.
type Invigilator struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"fullName"`
	Active   bool   `db:"active" json:"active"`
}

// InvigilatorDuty reports one room (or room side) an invigilator covers within
// a plan. Used to warn operators about double-duty, never to block it.
type InvigilatorDuty struct {
	RoomNo    int    `json:"roomNo"`
	RoomName  string `json:"roomName"`
	Side      Side   `json:"side,omitempty"`
	ClassName string `json:"className,omitempty"`
}
