package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	config "github.com/lotcast/lotcast/configs"
	"github.com/lotcast/lotcast/internal/models"
	"github.com/lotcast/lotcast/internal/transfer"
)

const (
	INSTAGRAM_AUTH_URL  = "https://www.instagram.com/oauth/authorize"
	INSTAGRAM_GRAPH_URL = "https://graph.instagram.com"

	instagramCharacterLimit = 2200
)

type instagramAdapter struct {
	cfg config.Config
}

func NewInstagramAdapter(cfg config.Config) PlatformAdapter {
	return &instagramAdapter{cfg: cfg}
}

func (ig *instagramAdapter) Platform() string {
	return models.PlatformInstagram
}

func (ig *instagramAdapter) CharacterLimit() int {
	return instagramCharacterLimit
}

func (ig *instagramAdapter) AuthURL(state string) string {
	params := url.Values{}
	params.Add("client_id", ig.cfg.InstagramClientID)
	params.Add("scope", "instagram_business_basic,instagram_business_content_publish")
	params.Add("response_type", "code")
	params.Add("redirect_uri", ig.cfg.InstagramRedirectURI)
	params.Add("state", state)

	return fmt.Sprintf("%s?%s", INSTAGRAM_AUTH_URL, params.Encode())
}

// ExchangeCode swaps the authorization code for a short-lived token, then
// upgrades it to a long-lived one.
func (ig *instagramAdapter) ExchangeCode(ctx context.Context, code string) (*transfer.PlatformToken, *transfer.PlatformAccount, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return nil, nil, err
	}

	shortLived, err := ig.shortLivedToken(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get short-lived token: %w", err)
	}

	longLived, err := ig.longLivedToken(ctx, shortLived)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get long-lived token: %w", err)
	}

	var me struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	meUrl := fmt.Sprintf("%s/me?fields=id,username&access_token=%s", INSTAGRAM_GRAPH_URL, url.QueryEscape(longLived.AccessToken))
	if err := igGetJSON(ctx, meUrl, &me); err != nil {
		return nil, nil, err
	}

	return longLived, &transfer.PlatformAccount{
		ID:   me.ID,
		Name: me.Username,
	}, nil
}

// ListTargets is the connected business account itself; Instagram has no
// page-like sub-destinations.
func (ig *instagramAdapter) ListTargets(ctx context.Context, accessToken string) ([]models.Target, error) {
	var me struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	reqUrl := fmt.Sprintf("%s/me?fields=id,username&access_token=%s", INSTAGRAM_GRAPH_URL, url.QueryEscape(accessToken))
	if err := igGetJSON(ctx, reqUrl, &me); err != nil {
		return nil, err
	}

	return []models.Target{{ID: me.ID, Name: "@" + me.Username}}, nil
}

// Post creates a media container and publishes it. Instagram requires at
// least one image; a text-only caption cannot be posted.
func (ig *instagramAdapter) Post(ctx context.Context, accessToken string, target models.Target, body string, imageURLs []string) (string, error) {
	if len(imageURLs) == 0 {
		err := errors.New("instagram requires at least one image")
		slog.Info(err.Error())
		return "", err
	}

	containerData := url.Values{}
	containerData.Set("image_url", imageURLs[0])
	containerData.Set("caption", body)
	containerData.Set("access_token", accessToken)

	var container struct {
		ID string `json:"id"`
	}
	containerUrl := fmt.Sprintf("%s/%s/media", INSTAGRAM_GRAPH_URL, target.ID)
	if err := igPostForm(containerUrl, containerData, &container); err != nil {
		return "", fmt.Errorf("failed to create media container: %w", err)
	}

	publishData := url.Values{}
	publishData.Set("creation_id", container.ID)
	publishData.Set("access_token", accessToken)

	var published struct {
		ID string `json:"id"`
	}
	publishUrl := fmt.Sprintf("%s/%s/media_publish", INSTAGRAM_GRAPH_URL, target.ID)
	if err := igPostForm(publishUrl, publishData, &published); err != nil {
		return "", fmt.Errorf("failed to publish media: %w", err)
	}

	return published.ID, nil
}

func (ig *instagramAdapter) PostURL(externalPostID string) string {
	return fmt.Sprintf("https://www.instagram.com/p/%s", externalPostID)
}

func (ig *instagramAdapter) ValidateConnection(ctx context.Context, accessToken string) error {
	var me struct {
		ID string `json:"id"`
	}
	reqUrl := fmt.Sprintf("%s/me?fields=id&access_token=%s", INSTAGRAM_GRAPH_URL, url.QueryEscape(accessToken))
	return igGetJSON(ctx, reqUrl, &me)
}

func (ig *instagramAdapter) Engagement(ctx context.Context, accessToken, externalPostID string) (*transfer.EngagementSnapshot, error) {
	var result struct {
		LikeCount     int `json:"like_count"`
		CommentsCount int `json:"comments_count"`
	}
	reqUrl := fmt.Sprintf("%s/%s?fields=like_count,comments_count&access_token=%s", INSTAGRAM_GRAPH_URL, externalPostID, url.QueryEscape(accessToken))
	if err := igGetJSON(ctx, reqUrl, &result); err != nil {
		return nil, err
	}

	return &transfer.EngagementSnapshot{
		Likes:    result.LikeCount,
		Comments: result.CommentsCount,
	}, nil
}

func (ig *instagramAdapter) shortLivedToken(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", ig.cfg.InstagramClientID)
	data.Set("client_secret", ig.cfg.InstagramClientSecret)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", ig.cfg.InstagramRedirectURI)
	data.Set("code", code)

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := igPostForm("https://api.instagram.com/oauth/access_token", data, &result); err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

func (ig *instagramAdapter) longLivedToken(ctx context.Context, shortLivedToken string) (*transfer.PlatformToken, error) {
	reqUrl := fmt.Sprintf(
		"%s/access_token?grant_type=ig_exchange_token&client_secret=%s&access_token=%s",
		INSTAGRAM_GRAPH_URL, ig.cfg.InstagramClientSecret, url.QueryEscape(shortLivedToken),
	)

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := igGetJSON(ctx, reqUrl, &result); err != nil {
		return nil, err
	}

	return &transfer.PlatformToken{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresIn,
	}, nil
}

func igGetJSON(ctx context.Context, reqUrl string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}

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

	if resp.StatusCode != http.StatusOK {
		return igError(body, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func igPostForm(reqUrl string, data url.Values, out interface{}) error {
	resp, err := http.Post(reqUrl, "application/x-www-form-urlencoded", strings.NewReader(data.Encode()))
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

	if resp.StatusCode != http.StatusOK {
		return igError(body, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func igError(body []byte, statusCode int) error {
	var igErr transfer.FacebookErrorResponse
	if err := json.Unmarshal(body, &igErr); err == nil && igErr.Error.Code == facebookAuthErrorCode {
		return ErrAuthExpired
	}
	return fmt.Errorf("instagram returned status %d: %s", statusCode, body)
}
