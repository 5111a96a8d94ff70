package models

import "time"

// LifecycleTemplate is optional seed material for caption generation. A
// dealership may keep several named templates per stage.
type LifecycleTemplate struct {
	ID           int64     `db:"id" json:"id"`
	DealershipID int64     `db:"dealership_id" json:"dealership_id"`
	Stage        string    `db:"stage" json:"stage"`
	Name         string    `db:"name" json:"name"`
	Body         string    `db:"body" json:"body"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
