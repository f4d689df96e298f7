package replicate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/pkg/provider"
)

const (
	name         = "replicate"
	pollInterval = 2 * time.Second
)

type Provider struct {
	apiToken string
	baseURL  string
	client   *http.Client
}

type predictionRequest struct {
	Version string                 `json:"version,omitempty"`
	Input   map[string]interface{} `json:"input"`
}

type predictionResponse struct {
	Id     string          `json:"id"`
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  *string         `json:"error"`
	URLs   struct {
		Get string `json:"get"`
	} `json:"urls"`
}

func NewProvider(apiToken, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = "https://api.replicate.com/v1"
	}
	return &Provider{
		apiToken: apiToken,
		baseURL:  baseURL,
		client:   provider.NewHTTPClient(),
	}
}

func (p *Provider) Name() string {
	return name
}

func (p *Provider) GenerateImage(ctx context.Context, prompt, model string) ([]byte, error) {
	outputURL, err := p.run(ctx, model, map[string]interface{}{"prompt": prompt})
	if err != nil {
		return nil, err
	}
	return p.download(ctx, outputURL)
}

func (p *Provider) GenerateVideo(ctx context.Context, prompt, model string) (string, error) {
	return p.run(ctx, model, map[string]interface{}{"prompt": prompt})
}

// run creates a prediction for the model and polls until it reaches a
// terminal status or the context expires. Returns the first output URL.
func (p *Provider) run(ctx context.Context, model string, input map[string]interface{}) (string, error) {
	reqBody, err := json.Marshal(predictionRequest{Input: input})
	if err != nil {
		return "", apperror.NewProvider(name, "marshal request", err)
	}

	url := fmt.Sprintf("%s/models/%s/predictions", p.baseURL, model)
	pred, err := p.call(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return "", err
	}

	for {
		switch pred.Status {
		case "succeeded":
			return firstOutputURL(pred.Output)
		case "failed", "canceled":
			reason := "prediction " + pred.Status
			if pred.Error != nil {
				reason = fmt.Sprintf("%s: %s", reason, *pred.Error)
			}
			return "", apperror.NewProvider(name, reason, nil)
		}

		select {
		case <-ctx.Done():
			return "", apperror.NewProvider(name, "prediction timed out", ctx.Err())
		case <-time.After(pollInterval):
		}

		pred, err = p.call(ctx, http.MethodGet, pred.URLs.Get, nil)
		if err != nil {
			return "", err
		}
	}
}

func (p *Provider) call(ctx context.Context, method, url string, body io.Reader) (*predictionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, apperror.NewProvider(name, "create request", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiToken))
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.NewProvider(name, "request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusTooManyRequests:
		return nil, apperror.NewProvider(name, "rate limited", nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, apperror.NewProvider(name, "unauthorized", nil)
	default:
		return nil, apperror.NewProvider(name,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var pred predictionResponse
	if err := json.Unmarshal(bodyBytes, &pred); err != nil {
		return nil, apperror.NewProvider(name, "decode response", err)
	}
	return &pred, nil
}

// firstOutputURL handles both output shapes the API returns: a single URL
// string or an array of URL strings.
func firstOutputURL(output json.RawMessage) (string, error) {
	if len(output) == 0 {
		return "", apperror.NewProvider(name, "empty output", nil)
	}

	var single string
	if err := json.Unmarshal(output, &single); err == nil && single != "" {
		return single, nil
	}

	var many []string
	if err := json.Unmarshal(output, &many); err == nil && len(many) > 0 {
		return many[0], nil
	}

	return "", apperror.NewProvider(name, "unrecognized output shape", nil)
}

func (p *Provider) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperror.NewProvider(name, "create download request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.NewProvider(name, "download failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewProvider(name,
			fmt.Sprintf("download status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewProvider(name, "read artifact", err)
	}
	return data, nil
}
