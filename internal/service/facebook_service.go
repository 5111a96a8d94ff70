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
	FACEBOOK_AUTH_URL  = "https://www.facebook.com/v21.0/dialog/oauth"
	FACEBOOK_GRAPH_URL = "https://graph.facebook.com/v21.0"

	facebookCharacterLimit = 5000

	// Graph API code for an invalid or expired access token.
	facebookAuthErrorCode = 190
)

type facebookAdapter struct {
	cfg config.Config
}

func NewFacebookAdapter(cfg config.Config) PlatformAdapter {
	return &facebookAdapter{cfg: cfg}
}

func (fb *facebookAdapter) Platform() string {
	return models.PlatformFacebook
}

func (fb *facebookAdapter) CharacterLimit() int {
	return facebookCharacterLimit
}

func (fb *facebookAdapter) AuthURL(state string) string {
	params := url.Values{}
	params.Add("client_id", fb.cfg.FacebookAppID)
	params.Add("redirect_uri", fb.cfg.FacebookRedirectURI)
	params.Add("scope", "pages_show_list,pages_manage_posts,pages_read_engagement")
	params.Add("response_type", "code")
	params.Add("state", state)

	return fmt.Sprintf("%s?%s", FACEBOOK_AUTH_URL, params.Encode())
}

func (fb *facebookAdapter) ExchangeCode(ctx context.Context, code string) (*transfer.PlatformToken, *transfer.PlatformAccount, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return nil, nil, err
	}

	params := url.Values{}
	params.Add("client_id", fb.cfg.FacebookAppID)
	params.Add("client_secret", fb.cfg.FacebookAppSecret)
	params.Add("redirect_uri", fb.cfg.FacebookRedirectURI)
	params.Add("code", code)

	reqUrl := fmt.Sprintf("%s/oauth/access_token?%s", FACEBOOK_GRAPH_URL, params.Encode())

	var token transfer.FacebookToken
	if err := fb.getJSON(ctx, reqUrl, &token); err != nil {
		return nil, nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	var me struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	meUrl := fmt.Sprintf("%s/me?fields=id,name&access_token=%s", FACEBOOK_GRAPH_URL, url.QueryEscape(token.AccessToken))
	if err := fb.getJSON(ctx, meUrl, &me); err != nil {
		return nil, nil, err
	}

	return &transfer.PlatformToken{
			AccessToken: token.AccessToken,
			ExpiresAt:   token.ExpiresIn,
		}, &transfer.PlatformAccount{
			ID:   me.ID,
			Name: me.Name,
		}, nil
}

// ListTargets returns the pages the authorized user manages. Each page
// carries its own page token, used at post time.
func (fb *facebookAdapter) ListTargets(ctx context.Context, accessToken string) ([]models.Target, error) {
	reqUrl := fmt.Sprintf("%s/me/accounts?access_token=%s", FACEBOOK_GRAPH_URL, url.QueryEscape(accessToken))

	var pages transfer.FacebookPageList
	if err := fb.getJSON(ctx, reqUrl, &pages); err != nil {
		return nil, err
	}

	targets := make([]models.Target, 0, len(pages.Data))
	for _, page := range pages.Data {
		targets = append(targets, models.Target{
			ID:          page.ID,
			Name:        page.Name,
			AccessToken: page.AccessToken,
		})
	}
	return targets, nil
}

func (fb *facebookAdapter) Post(ctx context.Context, accessToken string, target models.Target, body string, imageURLs []string) (string, error) {
	pageToken := target.AccessToken
	if pageToken == "" {
		var err error
		pageToken, err = fb.pageToken(ctx, accessToken, target.ID)
		if err != nil {
			return "", err
		}
	}

	data := url.Values{}
	data.Set("access_token", pageToken)

	var endpoint string
	if len(imageURLs) > 0 {
		endpoint = fmt.Sprintf("%s/%s/photos", FACEBOOK_GRAPH_URL, target.ID)
		data.Set("url", imageURLs[0])
		data.Set("caption", body)
	} else {
		endpoint = fmt.Sprintf("%s/%s/feed", FACEBOOK_GRAPH_URL, target.ID)
		data.Set("message", body)
	}

	resp, err := http.Post(endpoint, "application/x-www-form-urlencoded", strings.NewReader(data.Encode()))
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to publish to facebook: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", facebookError(respBody, resp.StatusCode)
	}

	var result struct {
		ID     string `json:"id"`
		PostID string `json:"post_id"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if result.PostID != "" {
		return result.PostID, nil
	}
	return result.ID, nil
}

func (fb *facebookAdapter) PostURL(externalPostID string) string {
	return fmt.Sprintf("https://www.facebook.com/%s", externalPostID)
}

func (fb *facebookAdapter) ValidateConnection(ctx context.Context, accessToken string) error {
	reqUrl := fmt.Sprintf("%s/me?access_token=%s", FACEBOOK_GRAPH_URL, url.QueryEscape(accessToken))

	var me struct {
		ID string `json:"id"`
	}
	return fb.getJSON(ctx, reqUrl, &me)
}

func (fb *facebookAdapter) Engagement(ctx context.Context, accessToken, externalPostID string) (*transfer.EngagementSnapshot, error) {
	reqUrl := fmt.Sprintf(
		"%s/%s?fields=likes.summary(true),comments.summary(true),shares&access_token=%s",
		FACEBOOK_GRAPH_URL, externalPostID, url.QueryEscape(accessToken),
	)

	var result struct {
		Likes struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"likes"`
		Comments struct {
			Summary struct {
				TotalCount int `json:"total_count"`
			} `json:"summary"`
		} `json:"comments"`
		Shares struct {
			Count int `json:"count"`
		} `json:"shares"`
	}
	if err := fb.getJSON(ctx, reqUrl, &result); err != nil {
		return nil, err
	}

	return &transfer.EngagementSnapshot{
		Likes:    result.Likes.Summary.TotalCount,
		Comments: result.Comments.Summary.TotalCount,
		Shares:   result.Shares.Count,
	}, nil
}

func (fb *facebookAdapter) pageToken(ctx context.Context, accessToken, pageID string) (string, error) {
	reqUrl := fmt.Sprintf("%s/%s?fields=access_token&access_token=%s", FACEBOOK_GRAPH_URL, pageID, url.QueryEscape(accessToken))

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := fb.getJSON(ctx, reqUrl, &result); err != nil {
		return "", err
	}
	return result.AccessToken, nil
}

func (fb *facebookAdapter) getJSON(ctx context.Context, reqUrl string, out interface{}) error {
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
		return facebookError(body, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func facebookError(body []byte, statusCode int) error {
	var fbErr transfer.FacebookErrorResponse
	if err := json.Unmarshal(body, &fbErr); err == nil && fbErr.Error.Code == facebookAuthErrorCode {
		return ErrAuthExpired
	}
	return fmt.Errorf("facebook returned status %d: %s", statusCode, body)
}
