package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
)

type VoiceProfileRepository interface {
	GetByDealershipID(ctx context.Context, dealershipID int64) (*models.VoiceProfile, bool, error)
	Upsert(ctx context.Context, p *models.VoiceProfile) (*models.VoiceProfile, error)
}

type voiceProfileRepository struct {
	db *sql.DB
}

func NewVoiceProfileRepository(db *sql.DB) VoiceProfileRepository {
	return &voiceProfileRepository{db: db}
}

// GetByDealershipID returns (nil, false, nil) when no profile has been saved
// yet; callers fall back to neutral defaults.
func (r *voiceProfileRepository) GetByDealershipID(ctx context.Context, dealershipID int64) (*models.VoiceProfile, bool, error) {
	query := `SELECT id, dealership_id, formality, energy, emoji_usage, technical_detail, community_connection, primary_emotions, value_props, tone_use, tone_avoid, example_phrases, created_at, updated_at FROM voice_profiles WHERE dealership_id = $1`
	row := r.db.QueryRowContext(ctx, query, dealershipID)

	var p models.VoiceProfile
	err := row.Scan(&p.ID, &p.DealershipID, &p.Formality, &p.Energy, &p.EmojiUsage,
		&p.TechnicalDetail, &p.CommunityConnection, &p.PrimaryEmotions, &p.ValueProps,
		&p.ToneUse, &p.ToneAvoid, &p.ExamplePhrases, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &p, true, nil
}

// Upsert is a full replace keyed by dealership id and returns the saved row,
// so callers never need a read-after-write refresh.
func (r *voiceProfileRepository) Upsert(ctx context.Context, p *models.VoiceProfile) (*models.VoiceProfile, error) {
	query := `
		INSERT INTO voice_profiles (dealership_id, formality, energy, emoji_usage, technical_detail, community_connection, primary_emotions, value_props, tone_use, tone_avoid, example_phrases)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (dealership_id) DO UPDATE SET
			formality = EXCLUDED.formality,
			energy = EXCLUDED.energy,
			emoji_usage = EXCLUDED.emoji_usage,
			technical_detail = EXCLUDED.technical_detail,
			community_connection = EXCLUDED.community_connection,
			primary_emotions = EXCLUDED.primary_emotions,
			value_props = EXCLUDED.value_props,
			tone_use = EXCLUDED.tone_use,
			tone_avoid = EXCLUDED.tone_avoid,
			example_phrases = EXCLUDED.example_phrases,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, dealership_id, formality, energy, emoji_usage, technical_detail, community_connection, primary_emotions, value_props, tone_use, tone_avoid, example_phrases, created_at, updated_at
	`

	row := r.db.QueryRowContext(ctx, query,
		p.DealershipID, p.Formality, p.Energy, p.EmojiUsage,
		p.TechnicalDetail, p.CommunityConnection,
		p.PrimaryEmotions, p.ValueProps, p.ToneUse, p.ToneAvoid, p.ExamplePhrases,
	)

	var saved models.VoiceProfile
	err := row.Scan(&saved.ID, &saved.DealershipID, &saved.Formality, &saved.Energy,
		&saved.EmojiUsage, &saved.TechnicalDetail, &saved.CommunityConnection,
		&saved.PrimaryEmotions, &saved.ValueProps, &saved.ToneUse, &saved.ToneAvoid,
		&saved.ExamplePhrases, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &saved, nil
}
