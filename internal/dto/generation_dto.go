// FILE: internal/dto/generation_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type GenerateRequest struct {
	Prompt string `json:"prompt" validate:"required,max=1000"`
	Model  string `json:"model" validate:"required"`

	// Settings carries model-specific knobs (aspect ratio, steps, seed, ...)
	// opaque to the flow; they are persisted with the generation record.
	Settings map[string]interface{} `json:"settings,omitempty"`
}

type GenerationResponse struct {
	Id          uuid.UUID `json:"id"`
	Url         string    `json:"url"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Prompt      string    `json:"prompt"`
	Model       string    `json:"model"`
	Provider    string    `json:"provider"`
	CreditsUsed int       `json:"credits_used"`

	Settings  map[string]interface{} `json:"settings,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type GenerateResponse struct {
	Generation       GenerationResponse `json:"generation"`
	FallbackUsed     bool               `json:"fallback_used"`
	RemainingCredits int                `json:"remaining_credits"`
}

type GenerationListItem struct {
	Id          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Prompt      string    `json:"prompt"`
	Model       string    `json:"model"`
	Status      string    `json:"status"`
	Url         string    `json:"url,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	CreditsUsed int       `json:"credits_used"`

	Settings  map[string]interface{} `json:"settings,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type GenerationListResponse struct {
	Generations []GenerationListItem `json:"generations"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

type EnhancePromptRequest struct {
	Prompt string `json:"prompt" validate:"required,max=1000"`
}

type EnhancePromptResponse struct {
	Prompt       string `json:"prompt"`
	Enhanced     string `json:"enhanced"`
	Provider     string `json:"provider"`
	FallbackUsed bool   `json:"fallback_used"`
}

// InsufficientCreditsResponse is the 402 payload.
type InsufficientCreditsResponse struct {
	Message   string `json:"message"`
	Required  int    `json:"required"`
	Available int    `json:"available"`
}

// GenerationFailedResponse is the 500 payload after a refund was attempted.
type GenerationFailedResponse struct {
	Message          string `json:"message"`
	Refunded         bool   `json:"refunded"`
	RemainingCredits int    `json:"remaining_credits"`
}
