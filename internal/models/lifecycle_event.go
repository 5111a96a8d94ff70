package models

import "time"

// Auxiliary event type recorded when a caption is published for a vehicle.
// All other event types are the stage names themselves.
const EventTypeSocialPost = "social_post"

// LifecycleEvent is append-only; rows are created by stage transitions and
// publishes, never mutated.
type LifecycleEvent struct {
	ID        int64     `db:"id" json:"id"`
	VehicleID int64     `db:"vehicle_id" json:"vehicle_id"`
	EventType string    `db:"event_type" json:"event_type"`
	Notes     string    `db:"notes" json:"notes"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
