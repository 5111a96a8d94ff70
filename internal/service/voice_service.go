package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
	"github.com/lotcast/lotcast/internal/transfer"
)

type VoiceService interface {
	// Get returns (nil, nil) when no profile has been configured; an absent
	// profile means "neutral defaults", never an error.
	Get(ctx context.Context, dealershipID int64) (*models.VoiceProfile, error)
	Save(ctx context.Context, dealershipID int64, u *transfer.VoiceProfileUpdate) (*models.VoiceProfile, error)
}

type voiceService struct {
	vp repository.VoiceProfileRepository
}

func NewVoiceService(vp repository.VoiceProfileRepository) VoiceService {
	return &voiceService{
		vp: vp,
	}
}

func (s *voiceService) Get(ctx context.Context, dealershipID int64) (*models.VoiceProfile, error) {
	profile, isExist, err := s.vp.GetByDealershipID(ctx, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("error getting voice profile")
	}

	if !isExist {
		return nil, nil
	}

	return profile, nil
}

// Save is a full replace; the saved row comes back from the write itself so
// callers never re-query to refresh state.
func (s *voiceService) Save(ctx context.Context, dealershipID int64, u *transfer.VoiceProfileUpdate) (*models.VoiceProfile, error) {
	if err := validateSlider("formality", u.Formality); err != nil {
		return nil, err
	}
	if err := validateSlider("energy", u.Energy); err != nil {
		return nil, err
	}
	if err := validateSlider("emoji_usage", u.EmojiUsage); err != nil {
		return nil, err
	}

	profile := &models.VoiceProfile{
		DealershipID:        dealershipID,
		Formality:           u.Formality,
		Energy:              u.Energy,
		EmojiUsage:          u.EmojiUsage,
		TechnicalDetail:     u.TechnicalDetail,
		CommunityConnection: u.CommunityConnection,
		PrimaryEmotions:     pq.StringArray(u.PrimaryEmotions),
		ValueProps:          pq.StringArray(u.ValueProps),
		ToneUse:             pq.StringArray(u.ToneUse),
		ToneAvoid:           pq.StringArray(u.ToneAvoid),
		ExamplePhrases:      pq.StringArray(u.ExamplePhrases),
	}

	saved, err := s.vp.Upsert(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("error saving voice profile")
	}

	return saved, nil
}

func validateSlider(name string, value int) error {
	if value < 1 || value > 5 {
		err := fmt.Errorf("%s must be between 1 and 5", name)
		slog.Info(err.Error())
		return err
	}
	return nil
}
