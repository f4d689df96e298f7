// FILE: internal/dto/tools_dto.go
package dto

type RemoveBackgroundRequest struct {
	Image string `json:"image" validate:"required"` // base64 data URL
}

type StyleTransferRequest struct {
	Image string `json:"image" validate:"required"` // base64 data URL
	Style string `json:"style" validate:"required,max=100"`
}

type ToolResponse struct {
	ImageUrl         string `json:"image_url"`
	CreditsUsed      int    `json:"credits_used"`
	RemainingCredits int    `json:"remaining_credits"`
}
