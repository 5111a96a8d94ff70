package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
	"github.com/lotcast/lotcast/internal/service"
)

// EngagementJob refreshes the engagement snapshot on recently published
// posts. Counts stay frozen at their last refresh once a post falls out of
// the window.
type EngagementJob struct {
	pp       repository.PublishedPostRepository
	conns    service.ConnectionService
	adapters service.AdapterRegistry
}

func NewEngagementJob(
	pp repository.PublishedPostRepository,
	conns service.ConnectionService,
	adapters service.AdapterRegistry) *EngagementJob {
	return &EngagementJob{
		pp:       pp,
		conns:    conns,
		adapters: adapters,
	}
}

func (c *EngagementJob) RefreshEngagement() {
	ctx := context.Background()

	since := time.Now().Add(-7 * 24 * time.Hour)

	posts, err := c.pp.ListSince(ctx, since)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, post := range posts {

		wg.Add(1)
		semaphore <- struct{}{}

		go func(post *models.PublishedPost) {
			defer wg.Done()
			defer func() { <-semaphore }()

			adapter, ok := c.adapters[post.Platform]
			if !ok {
				return
			}

			_, accessToken, err := c.conns.ActiveConnection(ctx, post.DealershipID, post.Platform)
			if err != nil {
				return
			}

			snapshot, err := adapter.Engagement(ctx, accessToken, post.ExternalPostID)
			if err != nil {
				slog.Info("Unable to refresh engagement for " + post.Platform)
				return
			}

			err = c.pp.UpdateEngagement(ctx, post.ID, snapshot.Likes, snapshot.Comments, snapshot.Shares)
			if err != nil {
				slog.Info(err.Error())
			}
		}(post)
	}

	wg.Wait()
}
