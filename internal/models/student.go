package models

import "time"

// Student represents a learner eligible for an exam sitting. Records are owned
// by the surrounding school system and read-only here.
type Student struct {
	ID            string    `db:"id" json:"id"`
	RollNo        string    `db:"roll_no" json:"rollNo"`
	FullName      string    `db:"full_name" json:"fullName"`
	ClassLabel    string    `db:"class_label" json:"classLabel"`
	InstitutionID string    `db:"institution_id" json:"institutionId"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
