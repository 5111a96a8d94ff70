package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	config "github.com/lotcast/lotcast/configs"
)

// GenerationClient is the opaque caption synthesis backend. The response is
// free text carrying CAPTION: and HASHTAGS: sections.
type GenerationClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type httpGenerationClient struct {
	cfg config.Config
}

func NewGenerationClient(cfg config.Config) GenerationClient {
	return &httpGenerationClient{cfg: cfg}
}

func (c *httpGenerationClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GenerationURL, bytes.NewReader(payload))
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.GenerationAPIKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("generation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("generation service returned status %d", resp.StatusCode)
		slog.Info(err.Error())
		return "", err
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	return result.Text, nil
}
