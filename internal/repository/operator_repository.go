package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
)

type OperatorRepository interface {
	Create(ctx context.Context, o *models.Operator) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Operator, error)
	GetByEmail(ctx context.Context, email string) (*models.Operator, bool, error)
}

type operatorRepository struct {
	db *sql.DB
}

func NewOperatorRepository(db *sql.DB) OperatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) Create(ctx context.Context, o *models.Operator) (int64, error) {
	query := `
		INSERT INTO operators (dealership_id, google_id, email, name, profile_picture)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, o.DealershipID, o.GoogleID, o.Email, o.Name, o.ProfilePicture).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *operatorRepository) GetByID(ctx context.Context, id int64) (*models.Operator, error) {
	query := `SELECT id, dealership_id, google_id, email, name, profile_picture, created_at, updated_at FROM operators WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var o models.Operator
	err := row.Scan(&o.ID, &o.DealershipID, &o.GoogleID, &o.Email, &o.Name, &o.ProfilePicture, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &o, nil
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*models.Operator, bool, error) {
	query := `SELECT id, dealership_id, google_id, email, name, profile_picture, created_at, updated_at FROM operators WHERE email = $1`
	row := r.db.QueryRowContext(ctx, query, email)

	var o models.Operator
	err := row.Scan(&o.ID, &o.DealershipID, &o.GoogleID, &o.Email, &o.Name, &o.ProfilePicture, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &o, true, nil
}
