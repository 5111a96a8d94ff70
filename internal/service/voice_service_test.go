package service

import (
	"context"
	"testing"

	"github.com/lotcast/lotcast/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validVoiceUpdate() *transfer.VoiceProfileUpdate {
	return &transfer.VoiceProfileUpdate{
		Formality:           4,
		Energy:              3,
		EmojiUsage:          2,
		TechnicalDetail:     "plain",
		CommunityConnection: "local",
		PrimaryEmotions:     []string{"trust"},
		ValueProps:          []string{"family owned"},
	}
}

func TestVoiceProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("absent profile is nil without error", func(t *testing.T) {
		svc := NewVoiceService(newFakeVoiceProfileRepo())

		profile, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("save returns the stored row", func(t *testing.T) {
		svc := NewVoiceService(newFakeVoiceProfileRepo())

		saved, err := svc.Save(ctx, 1, validVoiceUpdate())
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.DealershipID)
		assert.Equal(t, 4, saved.Formality)

		got, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, saved.ID, got.ID)
	})

	t.Run("save is a full replace", func(t *testing.T) {
		svc := NewVoiceService(newFakeVoiceProfileRepo())

		_, err := svc.Save(ctx, 1, validVoiceUpdate())
		require.NoError(t, err)

		update := validVoiceUpdate()
		update.PrimaryEmotions = nil
		update.Energy = 1
		saved, err := svc.Save(ctx, 1, update)
		require.NoError(t, err)

		assert.Equal(t, 1, saved.Energy)
		assert.Empty(t, saved.PrimaryEmotions)
	})

	t.Run("slider bounds are enforced", func(t *testing.T) {
		svc := NewVoiceService(newFakeVoiceProfileRepo())

		for _, value := range []int{0, 6, -1} {
			update := validVoiceUpdate()
			update.Formality = value
			_, err := svc.Save(ctx, 1, update)
			assert.Error(t, err, "formality=%d", value)

			update = validVoiceUpdate()
			update.EmojiUsage = value
			_, err = svc.Save(ctx, 1, update)
			assert.Error(t, err, "emoji_usage=%d", value)
		}
	})
}
