package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/lotcast/lotcast/internal/models"
)

type CaptionRepository interface {
	UpsertDraft(ctx context.Context, c *models.Caption) (*models.Caption, error)
	GetByID(ctx context.Context, id int64) (*models.Caption, error)
	GetByEventID(ctx context.Context, eventID int64) (*models.Caption, bool, error)
	UpdateDraft(ctx context.Context, id int64, body string, hashtags []string) error
	MarkPosted(ctx context.Context, captionID int64, platform, externalPostID string, postedAt time.Time) error
	ListPlatformPosts(ctx context.Context, captionID int64) ([]*models.CaptionPlatformPost, error)
}

type captionRepository struct {
	db *sql.DB
}

func NewCaptionRepository(db *sql.DB) CaptionRepository {
	return &captionRepository{db: db}
}

// UpsertDraft overwrites the draft for the event. The posted-flag history in
// caption_platform_posts is untouched by a regeneration.
func (r *captionRepository) UpsertDraft(ctx context.Context, c *models.Caption) (*models.Caption, error) {
	query := `
		INSERT INTO captions (dealership_id, vehicle_id, event_id, body, hashtags)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (event_id) DO UPDATE SET
			body = EXCLUDED.body,
			hashtags = EXCLUDED.hashtags,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, dealership_id, vehicle_id, event_id, body, hashtags, created_at, updated_at
	`

	row := r.db.QueryRowContext(ctx, query, c.DealershipID, c.VehicleID, c.EventID, c.Body, c.Hashtags)

	var saved models.Caption
	err := row.Scan(&saved.ID, &saved.DealershipID, &saved.VehicleID, &saved.EventID,
		&saved.Body, &saved.Hashtags, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &saved, nil
}

func (r *captionRepository) GetByID(ctx context.Context, id int64) (*models.Caption, error) {
	query := `SELECT id, dealership_id, vehicle_id, event_id, body, hashtags, created_at, updated_at FROM captions WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var c models.Caption
	err := row.Scan(&c.ID, &c.DealershipID, &c.VehicleID, &c.EventID, &c.Body, &c.Hashtags, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &c, nil
}

func (r *captionRepository) GetByEventID(ctx context.Context, eventID int64) (*models.Caption, bool, error) {
	query := `SELECT id, dealership_id, vehicle_id, event_id, body, hashtags, created_at, updated_at FROM captions WHERE event_id = $1`
	row := r.db.QueryRowContext(ctx, query, eventID)

	var c models.Caption
	err := row.Scan(&c.ID, &c.DealershipID, &c.VehicleID, &c.EventID, &c.Body, &c.Hashtags, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &c, true, nil
}

func (r *captionRepository) UpdateDraft(ctx context.Context, id int64, body string, hashtags []string) error {
	query := `
		UPDATE captions
		SET body = $1,
			hashtags = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, body, pq.StringArray(hashtags), time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *captionRepository) MarkPosted(ctx context.Context, captionID int64, platform, externalPostID string, postedAt time.Time) error {
	query := `
		INSERT INTO caption_platform_posts (caption_id, platform, external_post_id, posted_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, captionID, platform, externalPostID, postedAt)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *captionRepository) ListPlatformPosts(ctx context.Context, captionID int64) ([]*models.CaptionPlatformPost, error) {
	query := `SELECT caption_id, platform, external_post_id, posted_at FROM caption_platform_posts WHERE caption_id = $1 ORDER BY posted_at`

	rows, err := r.db.QueryContext(ctx, query, captionID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.CaptionPlatformPost
	for rows.Next() {
		var p models.CaptionPlatformPost
		err := rows.Scan(&p.CaptionID, &p.Platform, &p.ExternalPostID, &p.PostedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, nil
}
