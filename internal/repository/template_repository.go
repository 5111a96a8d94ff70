package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lotcast/lotcast/internal/models"
)

type TemplateRepository interface {
	Create(ctx context.Context, t *models.LifecycleTemplate) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.LifecycleTemplate, error)
	ListByDealershipID(ctx context.Context, dealershipID int64, stage string) ([]*models.LifecycleTemplate, error)
	CheckByDealershipID(ctx context.Context, templateID, dealershipID int64) (bool, error)
	Update(ctx context.Context, t *models.LifecycleTemplate) error
	Remove(ctx context.Context, id int64) error
}

type templateRepository struct {
	db *sql.DB
}

func NewTemplateRepository(db *sql.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, t *models.LifecycleTemplate) (int64, error) {
	query := `
		INSERT INTO lifecycle_templates (dealership_id, stage, name, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, t.DealershipID, t.Stage, t.Name, t.Body).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *templateRepository) GetByID(ctx context.Context, id int64) (*models.LifecycleTemplate, error) {
	query := `SELECT id, dealership_id, stage, name, body, created_at, updated_at FROM lifecycle_templates WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var t models.LifecycleTemplate
	err := row.Scan(&t.ID, &t.DealershipID, &t.Stage, &t.Name, &t.Body, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &t, nil
}

func (r *templateRepository) ListByDealershipID(ctx context.Context, dealershipID int64, stage string) ([]*models.LifecycleTemplate, error) {
	query := `SELECT id, dealership_id, stage, name, body, created_at, updated_at FROM lifecycle_templates WHERE dealership_id = $1`
	args := []interface{}{dealershipID}

	if stage != "" {
		query += ` AND stage = $2`
		args = append(args, stage)
	}
	query += ` ORDER BY stage, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var templates []*models.LifecycleTemplate
	for rows.Next() {
		var t models.LifecycleTemplate
		err := rows.Scan(&t.ID, &t.DealershipID, &t.Stage, &t.Name, &t.Body, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		templates = append(templates, &t)
	}
	return templates, nil
}

func (r *templateRepository) CheckByDealershipID(ctx context.Context, templateID, dealershipID int64) (bool, error) {
	query := "SELECT 1 FROM lifecycle_templates WHERE id = $1 AND dealership_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, templateID, dealershipID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *templateRepository) Update(ctx context.Context, t *models.LifecycleTemplate) error {
	query := `
		UPDATE lifecycle_templates
		SET stage = $1,
			name = $2,
			body = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, t.Stage, t.Name, t.Body, time.Now(), t.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *templateRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM lifecycle_templates WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
