package service

import (
	"context"
	"errors"
	"log/slog"

	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/repository"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type AuthService interface {
	LoginCallback(ctx context.Context, code string) (err error, operatorID, dealershipID int64)
}

type authService struct {
	cfg config.Config
	o   repository.OperatorRepository
	d   repository.DealershipRepository
}

func NewAuthService(cfg config.Config, o repository.OperatorRepository, d repository.DealershipRepository) AuthService {
	return &authService{
		cfg: cfg,
		o:   o,
		d:   d,
	}
}

// LoginCallback finishes the Google sign-in flow. A first-time operator gets
// a fresh dealership created for them; returning operators resolve to their
// existing dealership.
func (s *authService) LoginCallback(ctx context.Context, code string) (err error, operatorID, dealershipID int64) {

	if code == "" {
		err = errors.New("code or state is empty")
		slog.Info(err.Error())
		return err, 0, 0
	}

	oauth2Config := &oauth2.Config{
		ClientID:     s.cfg.GoogleClientID,
		ClientSecret: s.cfg.GoogleClientSecret,
		RedirectURL:  s.cfg.GoogleLoginRedirectURI,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" || oauth2Config.RedirectURL == "" {
		err = errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return err, 0, 0
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return err, 0, 0
	}

	client := oauth2Config.Client(ctx, token)
	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return err, 0, 0
	}

	userInfo, err := svc.Userinfo.Get().Do()
	if err != nil {
		slog.Info(err.Error())
		return err, 0, 0
	}

	operator, isExist, err := s.o.GetByEmail(ctx, userInfo.Email)
	if err != nil {
		return err, 0, 0
	}

	if !isExist || operator.GoogleID == "" {
		dealershipID, err = s.d.Create(ctx, &models.Dealership{
			Name: userInfo.Name,
		})
		if err != nil {
			slog.Info(err.Error())
			return err, 0, 0
		}

		operatorID, err = s.o.Create(ctx, &models.Operator{
			DealershipID:   dealershipID,
			GoogleID:       userInfo.Id,
			Email:          userInfo.Email,
			Name:           userInfo.Name,
			ProfilePicture: userInfo.Picture,
		})
		if err != nil {
			slog.Info(err.Error())
			return err, 0, 0
		}
	} else {
		operatorID = operator.ID
		dealershipID = operator.DealershipID
	}

	return nil, operatorID, dealershipID
}
