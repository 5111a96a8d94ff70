package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lotcast/lotcast/internal/models"
)

// PublishedPostRepository is the ledger. Rows are append-only; the only
// in-place mutation is the engagement snapshot refresh.
type PublishedPostRepository interface {
	Create(ctx context.Context, p *models.PublishedPost) (int64, error)
	ListByVehicleID(ctx context.Context, vehicleID int64) ([]*models.PublishedPost, error)
	ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.PublishedPost, error)
	ListSince(ctx context.Context, since time.Time) ([]*models.PublishedPost, error)
	UpdateEngagement(ctx context.Context, id int64, likes, comments, shares int) error
}

type publishedPostRepository struct {
	db *sql.DB
}

func NewPublishedPostRepository(db *sql.DB) PublishedPostRepository {
	return &publishedPostRepository{db: db}
}

func (r *publishedPostRepository) Create(ctx context.Context, p *models.PublishedPost) (int64, error) {
	query := `
		INSERT INTO published_posts (reference, dealership_id, vehicle_id, platform, external_post_id, post_url, content, image_urls, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Reference, p.DealershipID, p.VehicleID, p.Platform,
		p.ExternalPostID, p.PostURL, p.Content, p.ImageURLs, p.Status,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *publishedPostRepository) ListByVehicleID(ctx context.Context, vehicleID int64) ([]*models.PublishedPost, error) {
	query := selectPublishedPosts + ` WHERE vehicle_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, vehicleID)
}

func (r *publishedPostRepository) ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.PublishedPost, error) {
	query := selectPublishedPosts + ` WHERE dealership_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, dealershipID)
}

func (r *publishedPostRepository) ListSince(ctx context.Context, since time.Time) ([]*models.PublishedPost, error) {
	query := selectPublishedPosts + ` WHERE created_at >= $1 ORDER BY created_at DESC`
	return r.list(ctx, query, since)
}

const selectPublishedPosts = `SELECT id, reference, dealership_id, vehicle_id, platform, external_post_id, post_url, content, image_urls, status, likes, comments, shares, created_at FROM published_posts`

func (r *publishedPostRepository) list(ctx context.Context, query string, arg interface{}) ([]*models.PublishedPost, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.PublishedPost
	for rows.Next() {
		var p models.PublishedPost
		err := rows.Scan(&p.ID, &p.Reference, &p.DealershipID, &p.VehicleID, &p.Platform,
			&p.ExternalPostID, &p.PostURL, &p.Content, &p.ImageURLs, &p.Status,
			&p.Likes, &p.Comments, &p.Shares, &p.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &p)
	}
	return posts, nil
}

func (r *publishedPostRepository) UpdateEngagement(ctx context.Context, id int64, likes, comments, shares int) error {
	query := `
		UPDATE published_posts
		SET likes = $1,
			comments = $2,
			shares = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, likes, comments, shares, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
