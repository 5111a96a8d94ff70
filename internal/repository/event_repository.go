package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lotcast/lotcast/internal/models"
)

type LifecycleEventRepository interface {
	Create(ctx context.Context, e *models.LifecycleEvent) (int64, error)
	ListByVehicleID(ctx context.Context, vehicleID int64) ([]*models.LifecycleEvent, error)
	GetByID(ctx context.Context, id int64) (*models.LifecycleEvent, error)
}

type lifecycleEventRepository struct {
	db *sql.DB
}

func NewLifecycleEventRepository(db *sql.DB) LifecycleEventRepository {
	return &lifecycleEventRepository{db: db}
}

func (r *lifecycleEventRepository) Create(ctx context.Context, e *models.LifecycleEvent) (int64, error) {
	query := `
		INSERT INTO lifecycle_events (vehicle_id, event_type, notes)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, e.VehicleID, e.EventType, e.Notes).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

// ListByVehicleID returns events in creation order. The id tiebreaker keeps
// rows created in the same timestamp stable.
func (r *lifecycleEventRepository) ListByVehicleID(ctx context.Context, vehicleID int64) ([]*models.LifecycleEvent, error) {
	query := `SELECT id, vehicle_id, event_type, notes, created_at FROM lifecycle_events WHERE vehicle_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var events []*models.LifecycleEvent
	for rows.Next() {
		var e models.LifecycleEvent
		err := rows.Scan(&e.ID, &e.VehicleID, &e.EventType, &e.Notes, &e.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		events = append(events, &e)
	}
	return events, nil
}

func (r *lifecycleEventRepository) GetByID(ctx context.Context, id int64) (*models.LifecycleEvent, error) {
	query := `SELECT id, vehicle_id, event_type, notes, created_at FROM lifecycle_events WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var e models.LifecycleEvent
	err := row.Scan(&e.ID, &e.VehicleID, &e.EventType, &e.Notes, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &e, nil
}
