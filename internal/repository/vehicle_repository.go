package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lotcast/lotcast/internal/models"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *models.Vehicle) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Vehicle, error)
	ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.Vehicle, error)
	CheckByDealershipID(ctx context.Context, vehicleID, dealershipID int64) (bool, error)
	UpdateStatus(ctx context.Context, status string, vehicleID int64) error
	Archive(ctx context.Context, id int64) error
}

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *models.Vehicle) (int64, error) {
	query := `
		INSERT INTO vehicles (dealership_id, make, model, year, vin, stock_number, price, mileage, color, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		v.DealershipID, v.Make, v.Model, v.Year, v.VIN,
		v.StockNumber, v.Price, v.Mileage, v.Color, v.Status,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	query := `SELECT id, dealership_id, make, model, year, vin, stock_number, price, mileage, color, status, archived, created_at, updated_at FROM vehicles WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var v models.Vehicle
	err := row.Scan(&v.ID, &v.DealershipID, &v.Make, &v.Model, &v.Year, &v.VIN,
		&v.StockNumber, &v.Price, &v.Mileage, &v.Color, &v.Status, &v.Archived,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &v, nil
}

func (r *vehicleRepository) ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.Vehicle, error) {
	query := `SELECT id, dealership_id, make, model, year, vin, stock_number, price, mileage, color, status, archived, created_at, updated_at FROM vehicles WHERE dealership_id = $1 AND archived = false ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, dealershipID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(&v.ID, &v.DealershipID, &v.Make, &v.Model, &v.Year, &v.VIN,
			&v.StockNumber, &v.Price, &v.Mileage, &v.Color, &v.Status, &v.Archived,
			&v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		vehicles = append(vehicles, &v)
	}
	return vehicles, nil
}

func (r *vehicleRepository) CheckByDealershipID(ctx context.Context, vehicleID, dealershipID int64) (bool, error) {
	query := "SELECT 1 FROM vehicles WHERE id = $1 AND dealership_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, vehicleID, dealershipID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, status string, vehicleID int64) error {
	query := `
		UPDATE vehicles
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), vehicleID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// Archive soft-marks the vehicle; rows are never deleted.
func (r *vehicleRepository) Archive(ctx context.Context, id int64) error {
	query := `UPDATE vehicles SET archived = true, updated_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
