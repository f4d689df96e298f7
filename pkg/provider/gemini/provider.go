package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/pkg/provider"
)

const name = "gemini"

type Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewProvider(apiKey, model string) *Provider {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		model:   model,
		client:  provider.NewHTTPClient(),
	}
}

func (p *Provider) Name() string {
	return name
}

func (p *Provider) Enhance(ctx context.Context, prompt string) (string, error) {
	instruction := fmt.Sprintf(
		"Rewrite this image generation prompt to be more detailed and visually rich. Reply with the rewritten prompt only.\n\nPrompt: %s",
		prompt,
	)
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: instruction}}}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperror.NewProvider(name, "marshal request", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", apperror.NewProvider(name, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperror.NewProvider(name, "request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return "", apperror.NewProvider(name, "rate limited", nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", apperror.NewProvider(name, "unauthorized", nil)
	default:
		return "", apperror.NewProvider(name,
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	var genResp generateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return "", apperror.NewProvider(name, "decode response", err)
	}
	if genResp.Error != nil {
		return "", apperror.NewProvider(name, genResp.Error.Message, nil)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", apperror.NewProvider(name, "empty candidates", nil)
	}

	return strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text), nil
}
