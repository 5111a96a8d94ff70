package models

import (
	"time"

	"github.com/lib/pq"
)

const PostStatusPosted = "posted"

// PublishedPost is one append-only ledger row per (platform, publish
// attempt). Rows are never updated in place except by the engagement refresh
// job. VehicleID is zero for posts not tied to a vehicle.
type PublishedPost struct {
	ID             int64          `db:"id" json:"id"`
	Reference      string         `db:"reference" json:"reference"`
	DealershipID   int64          `db:"dealership_id" json:"dealership_id"`
	VehicleID      int64          `db:"vehicle_id" json:"vehicle_id"`
	Platform       string         `db:"platform" json:"platform"`
	ExternalPostID string         `db:"external_post_id" json:"external_post_id"`
	PostURL        string         `db:"post_url" json:"post_url"`
	Content        string         `db:"content" json:"content"`
	ImageURLs      pq.StringArray `db:"image_urls" json:"image_urls"`
	Status         string         `db:"status" json:"status"`
	Likes          int            `db:"likes" json:"likes"`
	Comments       int            `db:"comments" json:"comments"`
	Shares         int            `db:"shares" json:"shares"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}
