package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/transfer"
	"github.com/lotcast/lotcast/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type publishFixture struct {
	svc      PublishService
	captions *fakeCaptionRepo
	ledger   *fakePublishedPostRepo
	events   *fakeEventRepo
	vehicles *fakeVehicleRepo
	conns    *fakeConnectionRepo
	adapters AdapterRegistry
}

func newPublishFixture(adapters ...PlatformAdapter) *publishFixture {
	cfg := config.Config{SecretKey: testSecretKey}
	registry := NewAdapterRegistry(adapters...)

	f := &publishFixture{
		captions: newFakeCaptionRepo(),
		ledger:   newFakePublishedPostRepo(),
		events:   newFakeEventRepo(),
		vehicles: newFakeVehicleRepo(),
		conns:    newFakeConnectionRepo(),
		adapters: registry,
	}

	connService := NewConnectionService(cfg, f.conns, registry)
	f.svc = NewPublishService(f.captions, f.ledger, f.events, f.vehicles, connService, registry, fakeMedia{})
	return f
}

func (f *publishFixture) connect(t *testing.T, dealershipID int64, platform, targetID string) {
	t.Helper()
	encrypted, err := utils.Encrypt([]byte("access-token"), []byte(testSecretKey))
	require.NoError(t, err)

	_, err = f.conns.Upsert(context.Background(), &models.PlatformConnection{
		DealershipID:       dealershipID,
		Platform:           platform,
		AccessToken:        encrypted,
		TokenExpiresAt:     time.Now().Add(time.Hour),
		Connected:          true,
		SelectedTargetID:   targetID,
		SelectedTargetName: "Main Page",
	})
	require.NoError(t, err)
}

func (f *publishFixture) seedCaption(t *testing.T, dealershipID int64, body string, hashtags []string) *models.Caption {
	t.Helper()
	ctx := context.Background()

	vehicleID, err := f.vehicles.Create(ctx, &models.Vehicle{
		DealershipID: dealershipID,
		Make:         "Toyota",
		Model:        "Camry",
		Status:       models.StageReadyForSale,
	})
	require.NoError(t, err)

	eventID, err := f.events.Create(ctx, &models.LifecycleEvent{VehicleID: vehicleID, EventType: models.StageReadyForSale})
	require.NoError(t, err)

	caption, err := f.captions.UpsertDraft(ctx, &models.Caption{
		DealershipID: dealershipID,
		VehicleID:    vehicleID,
		EventID:      eventID,
		Body:         body,
		Hashtags:     hashtags,
	})
	require.NoError(t, err)
	return caption
}

func resultFor(t *testing.T, results []*transfer.PublishResult, platform string) *transfer.PublishResult {
	t.Helper()
	for _, r := range results {
		if r.Platform == platform {
			return r
		}
	}
	t.Fatalf("no result for platform %s", platform)
	return nil
}

func TestPublish(t *testing.T) {
	ctx := context.Background()

	t.Run("no platform selected", func(t *testing.T) {
		f := newPublishFixture(&fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"})
		caption := f.seedCaption(t, 1, "Hello", nil)

		_, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{CaptionID: caption.ID})
		assert.ErrorIs(t, err, ErrNoPlatformSelected)
	})

	t.Run("successful single platform publish", func(t *testing.T) {
		adapter := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		f := newPublishFixture(adapter)
		f.connect(t, 1, "facebook", "page1")
		caption := f.seedCaption(t, 1, "Fresh on the lot.", []string{"cars", "camry"})

		results, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"facebook"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)

		r := results[0]
		assert.True(t, r.Posted)
		assert.True(t, r.LedgerSaved)
		assert.Equal(t, "fb1", r.ExternalPostID)
		assert.Equal(t, "https://example.com/posts/fb1", r.PostURL)
		assert.Empty(t, r.Error)

		// Hashtags ride along in the body.
		require.Len(t, adapter.posted, 1)
		assert.Contains(t, adapter.posted[0], "Fresh on the lot.")
		assert.Contains(t, adapter.posted[0], "#cars #camry")

		posts, err := f.ledger.ListByDealershipID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, models.PostStatusPosted, posts[0].Status)
		assert.NotEmpty(t, posts[0].Reference)
		assert.Equal(t, caption.VehicleID, posts[0].VehicleID)

		// Publish leaves a social_post milestone on the vehicle timeline.
		events, err := f.events.ListByVehicleID(ctx, caption.VehicleID)
		require.NoError(t, err)
		var social int
		for _, e := range events {
			if e.EventType == models.EventTypeSocialPost {
				social++
			}
		}
		assert.Equal(t, 1, social)

		// Posted flag per platform on the caption.
		platformPosts, err := f.captions.ListPlatformPosts(ctx, caption.ID)
		require.NoError(t, err)
		require.Len(t, platformPosts, 1)
		assert.Equal(t, "facebook", platformPosts[0].Platform)
	})

	t.Run("most restrictive limit governs all targets", func(t *testing.T) {
		long := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		short := &fakeAdapter{platform: "google_business", limit: 20, postID: "gb1"}
		f := newPublishFixture(long, short)
		f.connect(t, 1, "facebook", "page1")
		f.connect(t, 1, "google_business", "loc1")
		caption := f.seedCaption(t, 1, strings.Repeat("é", 100), nil)

		results, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"facebook", "google_business"},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		require.Len(t, long.posted, 1)
		require.Len(t, short.posted, 1)
		assert.Equal(t, long.posted[0], short.posted[0])
		assert.Len(t, []rune(long.posted[0]), 20)
	})

	t.Run("unknown platform fails per platform without dispatch", func(t *testing.T) {
		adapter := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		f := newPublishFixture(adapter)
		f.connect(t, 1, "facebook", "page1")
		caption := f.seedCaption(t, 1, "Hello", nil)

		results, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"facebook", "tiktok"},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.True(t, resultFor(t, results, "facebook").Posted)
		tiktok := resultFor(t, results, "tiktok")
		assert.False(t, tiktok.Posted)
		assert.Contains(t, tiktok.Error, "unknown platform")
	})

	t.Run("disconnected platform fails per platform", func(t *testing.T) {
		adapter := &fakeAdapter{platform: "instagram", limit: 2200, postID: "ig1"}
		f := newPublishFixture(adapter)
		caption := f.seedCaption(t, 1, "Hello", nil)

		results, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"instagram"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Posted)
		assert.Equal(t, ErrPlatformNotConnected.Error(), results[0].Error)
		assert.Empty(t, adapter.posted)
	})

	t.Run("connection without a selected target fails per platform", func(t *testing.T) {
		adapter := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		f := newPublishFixture(adapter)
		f.connect(t, 1, "facebook", "")
		caption := f.seedCaption(t, 1, "Hello", nil)

		results, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"facebook"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.False(t, results[0].Posted)
		assert.Contains(t, results[0].Error, "no target selected")
	})

	t.Run("one platform failing never cancels a sibling", func(t *testing.T) {
		good := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		bad := &fakeAdapter{platform: "instagram", limit: 2200, postErr: errors.New("media upload rejected")}
		f := newPublishFixture(good, bad)
		f.connect(t, 1, "facebook", "page1")
		f.connect(t, 1, "instagram", "ig-acc")
		caption := f.seedCaption(t, 1, "Hello", nil)

		results, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"facebook", "instagram"},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.True(t, resultFor(t, results, "facebook").Posted)
		ig := resultFor(t, results, "instagram")
		assert.False(t, ig.Posted)
		assert.Contains(t, ig.Error, "media upload rejected")

		posts, _ := f.ledger.ListByDealershipID(ctx, 1)
		assert.Len(t, posts, 1)
	})

	t.Run("ledger write failure still reports the post as published", func(t *testing.T) {
		adapter := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		f := newPublishFixture(adapter)
		f.connect(t, 1, "facebook", "page1")
		caption := f.seedCaption(t, 1, "Hello", nil)
		f.ledger.fail = true

		results, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"facebook"},
		})
		require.NoError(t, err)
		require.Len(t, results, 1)

		r := results[0]
		assert.True(t, r.Posted)
		assert.False(t, r.LedgerSaved)
		assert.Equal(t, "fb1", r.ExternalPostID)
		assert.Contains(t, r.Error, "ledger write failed")
	})

	t.Run("foreign caption is rejected", func(t *testing.T) {
		adapter := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		f := newPublishFixture(adapter)
		f.connect(t, 1, "facebook", "page1")
		caption := f.seedCaption(t, 2, "Hello", nil)

		_, err := f.svc.Publish(ctx, 1, &transfer.PublishRequest{
			CaptionID: caption.ID,
			Platforms: []string{"facebook"},
		})
		assert.Error(t, err)
	})

	t.Run("repeat publish creates a second ledger row", func(t *testing.T) {
		adapter := &fakeAdapter{platform: "facebook", limit: 5000, postID: "fb1"}
		f := newPublishFixture(adapter)
		f.connect(t, 1, "facebook", "page1")
		caption := f.seedCaption(t, 1, "Hello", nil)

		req := &transfer.PublishRequest{CaptionID: caption.ID, Platforms: []string{"facebook"}}
		_, err := f.svc.Publish(ctx, 1, req)
		require.NoError(t, err)
		_, err = f.svc.Publish(ctx, 1, req)
		require.NoError(t, err)

		posts, _ := f.ledger.ListByDealershipID(ctx, 1)
		assert.Len(t, posts, 2)
	})
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "héllo", truncateRunes("héllo", 10))
	assert.Equal(t, "hél", truncateRunes("héllo", 3))
	assert.Equal(t, "héllo", truncateRunes("héllo", 0))
	assert.Len(t, []rune(truncateRunes(strings.Repeat("日", 50), 7)), 7)
}
