package huggingface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/pkg/provider"
)

const name = "huggingface"

type Provider struct {
	apiKey    string
	baseURL   string
	chatModel string
	client    *http.Client
}

// Request payload structure (OpenAI compatible)
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewProvider(apiKey, baseURL, chatModel string) *Provider {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co" // Default Router URL
	}
	return &Provider{
		apiKey:    apiKey,
		baseURL:   baseURL,
		chatModel: chatModel,
		client:    provider.NewHTTPClient(),
	}
}

func (p *Provider) Name() string {
	return name
}

// translateStatus maps the upstream status codes this API is known to return
// into the uniform ProviderError the fallback chain expects.
func translateStatus(status int, body []byte) error {
	switch status {
	case http.StatusTooManyRequests:
		return apperror.NewProvider(name, "rate limited", nil)
	case http.StatusServiceUnavailable:
		return apperror.NewProvider(name, "model loading", nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperror.NewProvider(name, "unauthorized", nil)
	default:
		return apperror.NewProvider(name,
			fmt.Sprintf("unexpected status %d: %s", status, truncate(body, 200)), nil)
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

// Enhance rewrites a prompt via the chat completions endpoint.
func (p *Provider) Enhance(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: p.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You improve image generation prompts. Reply with the enhanced prompt only, no commentary."},
			{Role: "user", Content: prompt},
		},
		MaxTokens: 200,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperror.NewProvider(name, "marshal request", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", apperror.NewProvider(name, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperror.NewProvider(name, "request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", translateStatus(resp.StatusCode, bodyBytes)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", apperror.NewProvider(name, "decode response", err)
	}
	if chatResp.Error != nil {
		return "", apperror.NewProvider(name, chatResp.Error.Message, nil)
	}
	if len(chatResp.Choices) == 0 {
		return "", apperror.NewProvider(name, "empty choices", nil)
	}

	return chatResp.Choices[0].Message.Content, nil
}

// GenerateImage calls the hosted inference endpoint for a text-to-image
// model. The response body is the raw image bytes.
func (p *Provider) GenerateImage(ctx context.Context, prompt, model string) ([]byte, error) {
	payload := map[string]interface{}{
		"inputs": prompt,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, apperror.NewProvider(name, "marshal request", err)
	}

	url := fmt.Sprintf("%s/hf-inference/models/%s", p.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, apperror.NewProvider(name, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.NewProvider(name, "request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewProvider(name, "read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, translateStatus(resp.StatusCode, bodyBytes)
	}
	if len(bodyBytes) == 0 {
		return nil, apperror.NewProvider(name, "empty image response", nil)
	}

	return bodyBytes, nil
}

// EditImage sends an image-to-image task (background removal, style
// transfer) to the given instruction-following model.
func (p *Provider) EditImage(ctx context.Context, image []byte, model, instruction string) ([]byte, error) {
	payload := map[string]interface{}{
		"inputs": base64.StdEncoding.EncodeToString(image),
	}
	if instruction != "" {
		payload["parameters"] = map[string]string{"prompt": instruction}
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, apperror.NewProvider(name, "marshal request", err)
	}

	url := fmt.Sprintf("%s/hf-inference/models/%s", p.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, apperror.NewProvider(name, "create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperror.NewProvider(name, "request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewProvider(name, "read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, translateStatus(resp.StatusCode, bodyBytes)
	}

	return bodyBytes, nil
}
