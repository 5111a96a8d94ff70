package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
)

type DealershipRepository interface {
	Create(ctx context.Context, d *models.Dealership) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Dealership, error)
}

type dealershipRepository struct {
	db *sql.DB
}

func NewDealershipRepository(db *sql.DB) DealershipRepository {
	return &dealershipRepository{db: db}
}

func (r *dealershipRepository) Create(ctx context.Context, d *models.Dealership) (int64, error) {
	query := `
		INSERT INTO dealerships (name, city)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, d.Name, d.City).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *dealershipRepository) GetByID(ctx context.Context, id int64) (*models.Dealership, error) {
	query := `SELECT id, name, city, created_at, updated_at FROM dealerships WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var d models.Dealership
	err := row.Scan(&d.ID, &d.Name, &d.City, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &d, nil
}
