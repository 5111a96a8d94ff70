package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
	"github.com/lotcast/lotcast/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type PublishService interface {
	Publish(ctx context.Context, dealershipID int64, req *transfer.PublishRequest) ([]*transfer.PublishResult, error)
	VehicleHistory(ctx context.Context, dealershipID, vehicleID int64) ([]*models.PublishedPost, error)
	History(ctx context.Context, dealershipID int64) ([]*models.PublishedPost, error)
}

type publishService struct {
	cr       repository.CaptionRepository
	pp       repository.PublishedPostRepository
	er       repository.LifecycleEventRepository
	vr       repository.VehicleRepository
	conns    ConnectionService
	adapters AdapterRegistry
	media    MediaService
}

func NewPublishService(
	cr repository.CaptionRepository,
	pp repository.PublishedPostRepository,
	er repository.LifecycleEventRepository,
	vr repository.VehicleRepository,
	conns ConnectionService,
	adapters AdapterRegistry,
	media MediaService) PublishService {
	return &publishService{
		cr:       cr,
		pp:       pp,
		er:       er,
		vr:       vr,
		conns:    conns,
		adapters: adapters,
		media:    media,
	}
}

// dispatch is one platform's resolved publish input.
type dispatch struct {
	adapter     PlatformAdapter
	accessToken string
	target      models.Target
}

// Publish validates the request, resolves connections, applies the most
// restrictive character limit among the selected platforms, and dispatches
// to each platform independently. Failures are collected per platform and
// never cancel or roll back a sibling. Repeated calls for the same caption
// create new ledger rows; duplicate gating is the caller's job.
func (s *publishService) Publish(ctx context.Context, dealershipID int64, req *transfer.PublishRequest) ([]*transfer.PublishResult, error) {
	if len(req.Platforms) == 0 {
		slog.Info(ErrNoPlatformSelected.Error())
		return nil, ErrNoPlatformSelected
	}

	caption, err := s.cr.GetByID(ctx, req.CaptionID)
	if err != nil || caption == nil {
		return nil, fmt.Errorf("unable to get caption")
	}

	if caption.DealershipID != dealershipID {
		err = errors.New("Caption doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	body := composeBody(caption)

	// Resolve connections first; platforms without a usable connection get a
	// per-platform error without any dispatch.
	results := make([]*transfer.PublishResult, 0, len(req.Platforms))
	dispatches := make(map[string]dispatch)
	limit := 0

	for _, platform := range req.Platforms {
		adapter, ok := s.adapters[platform]
		if !ok {
			results = append(results, &transfer.PublishResult{
				Platform: platform,
				Error:    fmt.Sprintf("unknown platform %q", platform),
			})
			continue
		}

		if limit == 0 || adapter.CharacterLimit() < limit {
			limit = adapter.CharacterLimit()
		}

		connection, accessToken, err := s.conns.ActiveConnection(ctx, dealershipID, platform)
		if err != nil {
			results = append(results, &transfer.PublishResult{
				Platform: platform,
				Error:    ErrPlatformNotConnected.Error(),
			})
			continue
		}

		if connection.SelectedTargetID == "" {
			results = append(results, &transfer.PublishResult{
				Platform: platform,
				Error:    "no target selected",
			})
			continue
		}

		dispatches[platform] = dispatch{
			adapter:     adapter,
			accessToken: accessToken,
			target: models.Target{
				ID:   connection.SelectedTargetID,
				Name: connection.SelectedTargetName,
			},
		}
	}

	// The most restrictive limit among the selected set governs the whole
	// call, so one draft is safe everywhere it is sent.
	body = truncateRunes(body, limit)

	imageURLs := s.resolveImages(ctx, req.ImageKeys)

	var wg sync.WaitGroup
	var mu sync.Mutex
	semaphore := make(chan struct{}, 10)

	for platform, d := range dispatches {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(platform string, d dispatch) {
			defer wg.Done()
			defer func() { <-semaphore }()

			result := s.publishOne(ctx, caption, platform, d, body, imageURLs)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(platform, d)
	}

	wg.Wait()
	return results, nil
}

func (s *publishService) publishOne(ctx context.Context, caption *models.Caption, platform string, d dispatch, body string, imageURLs []string) *transfer.PublishResult {
	result := &transfer.PublishResult{Platform: platform}

	externalID, err := d.adapter.Post(ctx, d.accessToken, d.target, body, imageURLs)
	if err != nil {
		slog.Info(fmt.Sprintf("posting to %s failed: %v", platform, err))
		result.Error = err.Error()
		return result
	}

	result.Posted = true
	result.ExternalPostID = externalID
	result.PostURL = d.adapter.PostURL(externalID)

	// The post already exists on the platform; a failed ledger write is
	// reported separately and must never be mistaken for a failed post.
	if err := s.record(ctx, caption, platform, externalID, result.PostURL, body, imageURLs); err != nil {
		ledgerErr := &LedgerWriteError{Platform: platform, ExternalPostID: externalID, Err: err}
		slog.Info(ledgerErr.Error())
		result.Error = ledgerErr.Error()
		return result
	}
	result.LedgerSaved = true

	if err := s.cr.MarkPosted(ctx, caption.ID, platform, externalID, time.Now()); err != nil {
		slog.Info(err.Error())
	}

	return result
}

func (s *publishService) record(ctx context.Context, caption *models.Caption, platform, externalID, postURL, body string, imageURLs []string) error {
	reference, err := gonanoid.New()
	if err != nil {
		return err
	}

	post := &models.PublishedPost{
		Reference:      reference,
		DealershipID:   caption.DealershipID,
		VehicleID:      caption.VehicleID,
		Platform:       platform,
		ExternalPostID: externalID,
		PostURL:        postURL,
		Content:        body,
		ImageURLs:      pq.StringArray(imageURLs),
		Status:         models.PostStatusPosted,
	}

	if _, err := s.pp.Create(ctx, post); err != nil {
		return err
	}

	// Milestone entry on the vehicle's timeline; best-effort.
	if caption.VehicleID != 0 {
		_, err := s.er.Create(ctx, &models.LifecycleEvent{
			VehicleID: caption.VehicleID,
			EventType: models.EventTypeSocialPost,
			Notes:     fmt.Sprintf("posted to %s", platform),
		})
		if err != nil {
			slog.Info(err.Error())
		}
	}

	return nil
}

func (s *publishService) VehicleHistory(ctx context.Context, dealershipID, vehicleID int64) ([]*models.PublishedPost, error) {
	isValid, err := s.vr.CheckByDealershipID(ctx, vehicleID, dealershipID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		err = errors.New("Vehicle doesn't exist")
		slog.Info(err.Error())
		return nil, err
	}

	posts, err := s.pp.ListByVehicleID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error getting post history")
	}
	return posts, nil
}

func (s *publishService) History(ctx context.Context, dealershipID int64) ([]*models.PublishedPost, error) {
	posts, err := s.pp.ListByDealershipID(ctx, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("error getting post history")
	}
	return posts, nil
}

// resolveImages turns stored image keys into fetchable URLs. A key that
// fails to presign is skipped rather than failing the publish.
func (s *publishService) resolveImages(ctx context.Context, keys []string) []string {
	var urls []string
	for _, key := range keys {
		resolved, err := s.media.ResolveURL(ctx, key)
		if err != nil {
			slog.Info(err.Error())
			continue
		}
		urls = append(urls, resolved)
	}
	return urls
}

func composeBody(caption *models.Caption) string {
	body := caption.Body
	if len(caption.Hashtags) > 0 {
		body += "\n\n"
		for i, tag := range caption.Hashtags {
			if i > 0 {
				body += " "
			}
			body += "#" + tag
		}
	}
	return body
}

// truncateRunes cuts at a rune boundary so multi-byte characters are never
// split.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
