package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	TechnicalDetailPlain     = "plain"
	TechnicalDetailBalanced  = "balanced"
	TechnicalDetailSpecHeavy = "spec_heavy"

	CommunityLocal    = "local"
	CommunityRegional = "regional"
	CommunityBroad    = "broad"
)

// VoiceProfile holds one dealership's brand-voice configuration. Sliders run
// 1-5. Saved only through full-replace upserts.
type VoiceProfile struct {
	ID                  int64          `db:"id" json:"id"`
	DealershipID        int64          `db:"dealership_id" json:"dealership_id"`
	Formality           int            `db:"formality" json:"formality"`
	Energy              int            `db:"energy" json:"energy"`
	EmojiUsage          int            `db:"emoji_usage" json:"emoji_usage"`
	TechnicalDetail     string         `db:"technical_detail" json:"technical_detail"`
	CommunityConnection string         `db:"community_connection" json:"community_connection"`
	PrimaryEmotions     pq.StringArray `db:"primary_emotions" json:"primary_emotions"`
	ValueProps          pq.StringArray `db:"value_props" json:"value_props"`
	ToneUse             pq.StringArray `db:"tone_use" json:"tone_use"`
	ToneAvoid           pq.StringArray `db:"tone_avoid" json:"tone_avoid"`
	ExamplePhrases      pq.StringArray `db:"example_phrases" json:"example_phrases"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}
