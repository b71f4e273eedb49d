package models

// Side identifies one half of a bench row, or both at once for assignment.
type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
	SideBoth  Side = "BOTH"
)

// Valid reports whether the side is one of the accepted values.
func (s Side) Valid() bool {
	switch s {
	case SideLeft, SideRight, SideBoth:
		return true
	}
	return false
}

// RoomLayout describes the physical seat arrangement of one exam room.
// In grid mode seats are numbered 1-based row-major:
// seatNo = (row-1)*columns + column. In bench mode the room is an ordered
// sequence of two-sided benches.
type RoomLayout struct {
	RoomNo        int    `json:"roomNo"`
	Name          string `json:"name"`
	Rows          int    `json:"rows,omitempty"`
	Columns       int    `json:"columns,omitempty"`
	ExcludedSeats []int  `json:"excludedSeats,omitempty"`
	BenchCount    int    `json:"benchCount,omitempty"`
}
