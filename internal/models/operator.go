package models

import "time"

// Operator is a dealership staff member who signs in with Google.
type Operator struct {
	ID             int64     `db:"id" json:"id"`
	DealershipID   int64     `db:"dealership_id" json:"dealership_id"`
	GoogleID       string    `db:"google_id" json:"google_id"`
	Email          string    `db:"email" json:"email"`
	Name           string    `db:"name" json:"name"`
	ProfilePicture string    `db:"profile_picture" json:"profile_picture"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
