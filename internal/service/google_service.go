package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/transfer"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const (
	GBP_ACCOUNTS_URL  = "https://mybusinessaccountmanagement.googleapis.com/v1"
	GBP_LOCATIONS_URL = "https://mybusinessbusinessinformation.googleapis.com/v1"
	GBP_POSTS_URL     = "https://mybusiness.googleapis.com/v4"

	googleBusinessCharacterLimit = 1500
)

type googleBusinessAdapter struct {
	cfg config.Config
}

func NewGoogleBusinessAdapter(cfg config.Config) PlatformAdapter {
	return &googleBusinessAdapter{cfg: cfg}
}

func (g *googleBusinessAdapter) Platform() string {
	return models.PlatformGoogleBusiness
}

func (g *googleBusinessAdapter) CharacterLimit() int {
	return googleBusinessCharacterLimit
}

func (g *googleBusinessAdapter) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     g.cfg.GoogleClientID,
		ClientSecret: g.cfg.GoogleClientSecret,
		RedirectURL:  g.cfg.GoogleRedirectURI,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/business.manage",
		},
		Endpoint: google.Endpoint,
	}
}

func (g *googleBusinessAdapter) AuthURL(state string) string {
	return g.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleBusinessAdapter) ExchangeCode(ctx context.Context, code string) (*transfer.PlatformToken, *transfer.PlatformAccount, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return nil, nil, err
	}

	oauth2Config := g.oauthConfig()
	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" || oauth2Config.RedirectURL == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return nil, nil, err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return nil, nil, err
	}

	client := oauth2Config.Client(ctx, token)
	svc, err := oauth2api.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		slog.Info(err.Error())
		return nil, nil, err
	}

	userInfo, err := svc.Userinfo.Get().Do()
	if err != nil {
		slog.Info(err.Error())
		return nil, nil, err
	}

	return &transfer.PlatformToken{
			AccessToken:  token.AccessToken,
			RefreshToken: token.RefreshToken,
			ExpiresAt:    token.Expiry.Unix(),
		}, &transfer.PlatformAccount{
			ID:   userInfo.Id,
			Name: userInfo.Email,
		}, nil
}

// ListTargets walks the Business Profile accounts and returns their
// locations. The target id is the v4 resource name used for local posts.
func (g *googleBusinessAdapter) ListTargets(ctx context.Context, accessToken string) ([]models.Target, error) {
	var accounts struct {
		Accounts []struct {
			Name        string `json:"name"`
			AccountName string `json:"accountName"`
		} `json:"accounts"`
	}
	if err := g.getJSON(ctx, accessToken, GBP_ACCOUNTS_URL+"/accounts", &accounts); err != nil {
		return nil, err
	}

	var targets []models.Target
	for _, account := range accounts.Accounts {
		var locations struct {
			Locations []struct {
				Name  string `json:"name"`
				Title string `json:"title"`
			} `json:"locations"`
		}
		locUrl := fmt.Sprintf("%s/%s/locations?readMask=name,title", GBP_LOCATIONS_URL, account.Name)
		if err := g.getJSON(ctx, accessToken, locUrl, &locations); err != nil {
			return nil, err
		}

		for _, location := range locations.Locations {
			targets = append(targets, models.Target{
				// v4 local posts address accounts/{a}/locations/{l}.
				ID:   fmt.Sprintf("%s/%s", account.Name, location.Name),
				Name: location.Title,
			})
		}
	}
	return targets, nil
}

func (g *googleBusinessAdapter) Post(ctx context.Context, accessToken string, target models.Target, body string, imageURLs []string) (string, error) {
	post := map[string]interface{}{
		"languageCode": "en-US",
		"summary":      body,
		"topicType":    "STANDARD",
	}
	if len(imageURLs) > 0 {
		post["media"] = []map[string]string{{
			"mediaFormat": "PHOTO",
			"sourceUrl":   imageURLs[0],
		}}
	}

	payload, err := json.Marshal(post)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	reqUrl := fmt.Sprintf("%s/%s/localPosts", GBP_POSTS_URL, target.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqUrl, bytes.NewReader(payload))
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to publish local post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return "", ErrAuthExpired
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google business returned status %d: %s", resp.StatusCode, respBody)
	}

	var result struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return result.Name, nil
}

func (g *googleBusinessAdapter) PostURL(externalPostID string) string {
	return fmt.Sprintf("https://business.google.com/posts/l/%s", externalPostID)
}

func (g *googleBusinessAdapter) ValidateConnection(ctx context.Context, accessToken string) error {
	var accounts struct {
		Accounts []struct {
			Name string `json:"name"`
		} `json:"accounts"`
	}
	return g.getJSON(ctx, accessToken, GBP_ACCOUNTS_URL+"/accounts", &accounts)
}

// Engagement is not exposed for local posts; the snapshot stays at zero.
func (g *googleBusinessAdapter) Engagement(ctx context.Context, accessToken, externalPostID string) (*transfer.EngagementSnapshot, error) {
	return &transfer.EngagementSnapshot{}, nil
}

func (g *googleBusinessAdapter) getJSON(ctx context.Context, accessToken, reqUrl string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("google business returned status %d: %s", resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
