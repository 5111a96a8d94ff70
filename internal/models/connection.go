package models

import "time"

const (
	PlatformFacebook       = "facebook"
	PlatformInstagram      = "instagram"
	PlatformGoogleBusiness = "google_business"
)

var Platforms = []string{PlatformFacebook, PlatformInstagram, PlatformGoogleBusiness}

func IsValidPlatform(platform string) bool {
	for _, p := range Platforms {
		if p == platform {
			return true
		}
	}
	return false
}

// PlatformConnection is one dealership's authorization for one platform.
// AccessToken is stored AES-GCM encrypted and must never be logged. Connected
// flips back to false when a credential is rejected mid-flow; there is no
// expiry sweep, staleness is discovered lazily on next use.
type PlatformConnection struct {
	ID                 int64     `db:"id" json:"id"`
	DealershipID       int64     `db:"dealership_id" json:"dealership_id"`
	Platform           string    `db:"platform" json:"platform"`
	AccountName        string    `db:"account_name" json:"account_name"`
	AccessToken        string    `db:"access_token" json:"-"`
	RefreshToken       string    `db:"refresh_token" json:"-"`
	TokenExpiresAt     time.Time `db:"token_expires_at" json:"token_expires_at"`
	Connected          bool      `db:"connected" json:"connected"`
	SelectedTargetID   string    `db:"selected_target_id" json:"selected_target_id"`
	SelectedTargetName string    `db:"selected_target_name" json:"selected_target_name"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// Target is an addressable destination on a platform, e.g. a Facebook page
// or a Business Profile location. Some platforms scope a separate credential
// to the target itself.
type Target struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccessToken string `json:"-"`
}
