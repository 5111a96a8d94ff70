package models

import (
	"time"

	"github.com/lib/pq"
)

// Caption is the draft tied to one (vehicle, lifecycle event) pair.
// Regeneration overwrites body and hashtags; the per-platform posted history
// lives in CaptionPlatformPost rows and is never overwritten by a redraft.
type Caption struct {
	ID           int64          `db:"id" json:"id"`
	DealershipID int64          `db:"dealership_id" json:"dealership_id"`
	VehicleID    int64          `db:"vehicle_id" json:"vehicle_id"`
	EventID      int64          `db:"event_id" json:"event_id"`
	Body         string         `db:"body" json:"body"`
	Hashtags     pq.StringArray `db:"hashtags" json:"hashtags"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

type CaptionPlatformPost struct {
	CaptionID      int64     `db:"caption_id" json:"caption_id"`
	Platform       string    `db:"platform" json:"platform"`
	ExternalPostID string    `db:"external_post_id" json:"external_post_id"`
	PostedAt       time.Time `db:"posted_at" json:"posted_at"`
}
