package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
	"github.com/lotcast/lotcast/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ConnectionService is the per-dealership, per-platform connection registry.
// There is no expiry sweep: a stale credential is only discovered when a
// platform call rejects it, at which point the connection flips back to
// disconnected so the operator is re-prompted.
type ConnectionService interface {
	AuthURL(ctx context.Context, platform string) (string, error)
	Callback(ctx context.Context, dealershipID int64, platform, code string) error
	List(ctx context.Context, dealershipID int64) ([]*models.PlatformConnection, error)
	ListTargets(ctx context.Context, dealershipID int64, platform string) ([]models.Target, error)
	SelectTarget(ctx context.Context, dealershipID int64, platform, targetID, targetName string) error
	Disconnect(ctx context.Context, dealershipID int64, platform string) error
	ActiveConnection(ctx context.Context, dealershipID int64, platform string) (*models.PlatformConnection, string, error)
}

type connectionService struct {
	cfg      config.Config
	cr       repository.ConnectionRepository
	adapters AdapterRegistry
}

func NewConnectionService(cfg config.Config, cr repository.ConnectionRepository, adapters AdapterRegistry) ConnectionService {
	return &connectionService{
		cfg:      cfg,
		cr:       cr,
		adapters: adapters,
	}
}

func (s *connectionService) AuthURL(ctx context.Context, platform string) (string, error) {
	adapter, err := s.adapter(platform)
	if err != nil {
		return "", err
	}

	state, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("error generating state nonce")
	}

	return adapter.AuthURL(state), nil
}

// Callback finishes the platform's auth flow: exchange the code, encrypt the
// credential, persist the connection as connected.
func (s *connectionService) Callback(ctx context.Context, dealershipID int64, platform, code string) error {
	adapter, err := s.adapter(platform)
	if err != nil {
		return err
	}

	if dealershipID == 0 {
		err = errors.New("DealershipID is not valid")
		slog.Info(err.Error())
		return err
	}

	token, account, err := adapter.ExchangeCode(ctx, code)
	if err != nil {
		return err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	encryptedRefreshToken := ""
	if token.RefreshToken != "" {
		encryptedRefreshToken, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	connection := &models.PlatformConnection{
		DealershipID:   dealershipID,
		Platform:       platform,
		AccountName:    account.Name,
		AccessToken:    encryptedAccessToken,
		RefreshToken:   encryptedRefreshToken,
		TokenExpiresAt: time.Unix(token.ExpiresAt, 0),
		Connected:      true,
	}

	if _, err := s.cr.Upsert(ctx, connection); err != nil {
		return fmt.Errorf("error saving platform connection")
	}

	return nil
}

func (s *connectionService) List(ctx context.Context, dealershipID int64) ([]*models.PlatformConnection, error) {
	connections, err := s.cr.ListByDealershipID(ctx, dealershipID)
	if err != nil {
		return nil, fmt.Errorf("error getting platform connections")
	}
	return connections, nil
}

// ListTargets fetches the platform's addressable destinations. A rejected
// credential resets the connection to disconnected and surfaces
// ErrAuthExpired so the UI re-prompts.
func (s *connectionService) ListTargets(ctx context.Context, dealershipID int64, platform string) ([]models.Target, error) {
	adapter, err := s.adapter(platform)
	if err != nil {
		return nil, err
	}

	connection, accessToken, err := s.ActiveConnection(ctx, dealershipID, platform)
	if err != nil {
		return nil, err
	}

	targets, err := adapter.ListTargets(ctx, accessToken)
	if err != nil {
		if errors.Is(err, ErrAuthExpired) {
			if resetErr := s.cr.SetConnected(ctx, connection.DealershipID, platform, false); resetErr != nil {
				slog.Info(resetErr.Error())
			}
			return nil, ErrAuthExpired
		}
		return nil, fmt.Errorf("error listing targets")
	}

	return targets, nil
}

// SelectTarget is a local state update; one selected target per platform per
// dealership at a time.
func (s *connectionService) SelectTarget(ctx context.Context, dealershipID int64, platform, targetID, targetName string) error {
	if _, err := s.adapter(platform); err != nil {
		return err
	}

	if targetID == "" {
		err := errors.New("target id cannot be empty")
		slog.Info(err.Error())
		return err
	}

	_, isExist, err := s.cr.GetByPlatform(ctx, dealershipID, platform)
	if err != nil {
		return fmt.Errorf("error getting platform connection")
	}
	if !isExist {
		slog.Info(ErrPlatformNotConnected.Error())
		return ErrPlatformNotConnected
	}

	if err := s.cr.SetSelectedTarget(ctx, dealershipID, platform, targetID, targetName); err != nil {
		return fmt.Errorf("error selecting target")
	}
	return nil
}

// Disconnect removes the stored credential entirely.
func (s *connectionService) Disconnect(ctx context.Context, dealershipID int64, platform string) error {
	if _, err := s.adapter(platform); err != nil {
		return err
	}

	if err := s.cr.Remove(ctx, dealershipID, platform); err != nil {
		return fmt.Errorf("error removing platform connection")
	}
	return nil
}

// ActiveConnection returns the connection and its decrypted credential, or
// ErrPlatformNotConnected when no usable connection exists.
func (s *connectionService) ActiveConnection(ctx context.Context, dealershipID int64, platform string) (*models.PlatformConnection, string, error) {
	connection, isExist, err := s.cr.GetByPlatform(ctx, dealershipID, platform)
	if err != nil {
		return nil, "", fmt.Errorf("error getting platform connection")
	}

	if !isExist || !connection.Connected {
		slog.Info(ErrPlatformNotConnected.Error())
		return nil, "", ErrPlatformNotConnected
	}

	accessToken, err := utils.Decrypt(connection.AccessToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return nil, "", err
	}

	return connection, accessToken, nil
}

func (s *connectionService) adapter(platform string) (PlatformAdapter, error) {
	adapter, ok := s.adapters[platform]
	if !ok {
		err := fmt.Errorf("unknown platform %q", platform)
		slog.Info(err.Error())
		return nil, err
	}
	return adapter, nil
}
