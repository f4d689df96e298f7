// FILE: internal/service/tools_service.go
package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"pixfusion-be/internal/constant"
	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/internal/pkg/logger"
	"pixfusion-be/pkg/provider"
	"pixfusion-be/pkg/storage"

	"github.com/google/uuid"
)

// maxToolImageBytes bounds the decoded input image for the editing tools.
const maxToolImageBytes = 10 << 20

// IToolsService exposes the fixed-price image editing tools. Both follow the
// same credit guard as generation: charge first, refund when every provider
// fails.
type IToolsService interface {
	RemoveBackground(ctx context.Context, userId uuid.UUID, req *dto.RemoveBackgroundRequest) (*dto.ToolResponse, error)
	StyleTransfer(ctx context.Context, userId uuid.UUID, req *dto.StyleTransferRequest) (*dto.ToolResponse, error)
}

type toolsService struct {
	creditService ICreditService
	artifacts     storage.ArtifactStore
	log           logger.ILogger
	editProviders []provider.ImageEditProvider
}

func NewToolsService(
	creditService ICreditService,
	artifacts storage.ArtifactStore,
	log logger.ILogger,
	editProviders []provider.ImageEditProvider,
) IToolsService {
	return &toolsService{
		creditService: creditService,
		artifacts:     artifacts,
		log:           log,
		editProviders: editProviders,
	}
}

func (s *toolsService) RemoveBackground(ctx context.Context, userId uuid.UUID, req *dto.RemoveBackgroundRequest) (*dto.ToolResponse, error) {
	image, err := decodeImageDataURL(req.Image)
	if err != nil {
		return nil, err
	}
	return s.runTool(ctx, userId, image, constant.RemoveBackgroundCost,
		"remove background tool", constant.RemoveBackgroundModel, "")
}

func (s *toolsService) StyleTransfer(ctx context.Context, userId uuid.UUID, req *dto.StyleTransferRequest) (*dto.ToolResponse, error) {
	image, err := decodeImageDataURL(req.Image)
	if err != nil {
		return nil, err
	}
	style := strings.TrimSpace(req.Style)
	if style == "" {
		return nil, apperror.NewValidation("style", "style is required")
	}
	instruction := fmt.Sprintf("apply %s style to this image", style)
	return s.runTool(ctx, userId, image, constant.StyleTransferCost,
		"style transfer tool", constant.StyleTransferModel, instruction)
}

func (s *toolsService) runTool(ctx context.Context, userId uuid.UUID, image []byte, cost int, description, model, instruction string) (*dto.ToolResponse, error) {
	account, err := s.creditService.Account(ctx, userId)
	if err != nil {
		return nil, err
	}

	charged := 0
	if !account.Unlimited() {
		if !account.HasEnough(cost) {
			return nil, &InsufficientCreditsError{Required: cost, Available: account.Balance}
		}
		ok, err := s.creditService.Deduct(ctx, userId, cost, description, nil)
		if err != nil {
			return nil, err
		}
		if !ok {
			if fresh, err := s.creditService.Account(ctx, userId); err == nil {
				account = fresh
			}
			return nil, &InsufficientCreditsError{Required: cost, Available: account.Balance}
		}
		charged = cost
	}

	attempts := make([]provider.Attempt[[]byte], 0, len(s.editProviders))
	for _, p := range s.editProviders {
		p := p
		attempts = append(attempts, provider.Attempt[[]byte]{
			Name: p.Name(),
			Invoke: func(ctx context.Context) ([]byte, error) {
				return p.EditImage(ctx, image, model, instruction)
			},
		})
	}

	result, err := provider.RunChain(ctx, s.log, description, attempts)
	if err != nil {
		refunded := false
		if charged > 0 {
			if rerr := s.creditService.Add(ctx, userId, charged, entity.TransactionTypeRefund,
				"refund for failed "+description, nil); rerr != nil {
				s.log.Error("tools", "refund failed", map[string]interface{}{
					"user_id": userId.String(),
					"amount":  charged,
					"error":   rerr.Error(),
				})
			} else {
				refunded = true
			}
		}
		remaining := account.Balance
		if fresh, ferr := s.creditService.Account(ctx, userId); ferr == nil {
			remaining = fresh.Balance
		}
		return nil, &GenerationFailedError{Refunded: refunded, RemainingCredits: remaining, Err: err}
	}

	url, err := s.artifacts.UploadArtifact(ctx, userId, result.Output, "image/png")
	if err != nil {
		return nil, apperror.NewStorage("upload tool output", err)
	}

	remaining := account.Balance - charged
	if fresh, err := s.creditService.Account(ctx, userId); err == nil {
		remaining = fresh.Balance
	}

	return &dto.ToolResponse{
		ImageUrl:         url,
		CreditsUsed:      charged,
		RemainingCredits: remaining,
	}, nil
}

// decodeImageDataURL accepts either a "data:image/...;base64," data URL or a
// bare base64 string.
func decodeImageDataURL(input string) ([]byte, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, apperror.NewValidation("image", "image is required")
	}

	if strings.HasPrefix(input, "data:") {
		idx := strings.Index(input, ";base64,")
		if idx < 0 {
			return nil, apperror.NewValidation("image", "image must be a base64 data URL")
		}
		input = input[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(input)
	if err != nil {
		return nil, apperror.NewValidation("image", "image is not valid base64")
	}
	if len(data) == 0 {
		return nil, apperror.NewValidation("image", "image is empty")
	}
	if len(data) > maxToolImageBytes {
		return nil, apperror.NewValidation("image", "image exceeds 10MB")
	}
	return data, nil
}
