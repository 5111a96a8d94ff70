package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lotcast/lotcast/internal/models"
)

type ConnectionRepository interface {
	Upsert(ctx context.Context, c *models.PlatformConnection) (int64, error)
	GetByPlatform(ctx context.Context, dealershipID int64, platform string) (*models.PlatformConnection, bool, error)
	ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.PlatformConnection, error)
	SetConnected(ctx context.Context, dealershipID int64, platform string, connected bool) error
	SetSelectedTarget(ctx context.Context, dealershipID int64, platform, targetID, targetName string) error
	Remove(ctx context.Context, dealershipID int64, platform string) error
}

type connectionRepository struct {
	db *sql.DB
}

func NewConnectionRepository(db *sql.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

// Upsert replaces the credential for (dealership, platform). Reconnecting
// resets the selected target since the addressable pages may have changed.
func (r *connectionRepository) Upsert(ctx context.Context, c *models.PlatformConnection) (int64, error) {
	query := `
		INSERT INTO platform_connections (dealership_id, platform, account_name, access_token, refresh_token, token_expires_at, connected)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (dealership_id, platform) DO UPDATE SET
			account_name = EXCLUDED.account_name,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_expires_at = EXCLUDED.token_expires_at,
			connected = EXCLUDED.connected,
			selected_target_id = '',
			selected_target_name = '',
			updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		c.DealershipID, c.Platform, c.AccountName, c.AccessToken,
		c.RefreshToken, c.TokenExpiresAt, c.Connected,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *connectionRepository) GetByPlatform(ctx context.Context, dealershipID int64, platform string) (*models.PlatformConnection, bool, error) {
	query := `SELECT id, dealership_id, platform, account_name, access_token, refresh_token, token_expires_at, connected, selected_target_id, selected_target_name, created_at, updated_at FROM platform_connections WHERE dealership_id = $1 AND platform = $2`
	row := r.db.QueryRowContext(ctx, query, dealershipID, platform)

	var c models.PlatformConnection
	err := row.Scan(&c.ID, &c.DealershipID, &c.Platform, &c.AccountName, &c.AccessToken,
		&c.RefreshToken, &c.TokenExpiresAt, &c.Connected, &c.SelectedTargetID,
		&c.SelectedTargetName, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &c, true, nil
}

func (r *connectionRepository) ListByDealershipID(ctx context.Context, dealershipID int64) ([]*models.PlatformConnection, error) {
	query := `SELECT id, dealership_id, platform, account_name, connected, selected_target_id, selected_target_name, created_at, updated_at FROM platform_connections WHERE dealership_id = $1 ORDER BY platform`

	rows, err := r.db.QueryContext(ctx, query, dealershipID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var connections []*models.PlatformConnection
	for rows.Next() {
		var c models.PlatformConnection
		err := rows.Scan(&c.ID, &c.DealershipID, &c.Platform, &c.AccountName, &c.Connected,
			&c.SelectedTargetID, &c.SelectedTargetName, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		connections = append(connections, &c)
	}
	return connections, nil
}

func (r *connectionRepository) SetConnected(ctx context.Context, dealershipID int64, platform string, connected bool) error {
	query := `
		UPDATE platform_connections
		SET connected = $1,
			updated_at = $2
		WHERE dealership_id = $3 AND platform = $4
	`
	_, err := r.db.ExecContext(ctx, query, connected, time.Now(), dealershipID, platform)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *connectionRepository) SetSelectedTarget(ctx context.Context, dealershipID int64, platform, targetID, targetName string) error {
	query := `
		UPDATE platform_connections
		SET selected_target_id = $1,
			selected_target_name = $2,
			updated_at = $3
		WHERE dealership_id = $4 AND platform = $5
	`
	_, err := r.db.ExecContext(ctx, query, targetID, targetName, time.Now(), dealershipID, platform)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *connectionRepository) Remove(ctx context.Context, dealershipID int64, platform string) error {
	query := `DELETE FROM platform_connections WHERE dealership_id = $1 AND platform = $2`
	_, err := r.db.ExecContext(ctx, query, dealershipID, platform)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
