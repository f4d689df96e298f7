// FILE: internal/service/generation_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pixfusion-be/internal/constant"
	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/internal/pkg/logger"
	"pixfusion-be/internal/repository/specification"
	"pixfusion-be/internal/repository/unitofwork"
	"pixfusion-be/pkg/events"
	"pixfusion-be/pkg/provider"
	"pixfusion-be/pkg/storage"

	"github.com/google/uuid"
)

// IGenerationService runs the credit-guarded generation flow: check, charge,
// create the record, invoke the provider chain, settle the outcome. A failed
// generation refunds the charge before the caller sees the error.
type IGenerationService interface {
	Generate(ctx context.Context, userId uuid.UUID, genType entity.GenerationType, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	EnhancePrompt(ctx context.Context, req *dto.EnhancePromptRequest) (*dto.EnhancePromptResponse, error)
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.GenerationListResponse, error)
	Get(ctx context.Context, userId, id uuid.UUID) (*dto.GenerationListItem, error)

	// Delete removes the record and its stored artifact. Credits already
	// spent stay spent.
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	creditService  ICreditService
	artifacts      storage.ArtifactStore
	publisher      events.Publisher
	log            logger.ILogger
	imageProviders []provider.ImageProvider
	videoProviders []provider.VideoProvider
	textProviders  []provider.TextProvider
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	creditService ICreditService,
	artifacts storage.ArtifactStore,
	publisher events.Publisher,
	log logger.ILogger,
	imageProviders []provider.ImageProvider,
	videoProviders []provider.VideoProvider,
	textProviders []provider.TextProvider,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		creditService:  creditService,
		artifacts:      artifacts,
		publisher:      publisher,
		log:            log,
		imageProviders: imageProviders,
		videoProviders: videoProviders,
		textProviders:  textProviders,
	}
}

func (s *generationService) Generate(ctx context.Context, userId uuid.UUID, genType entity.GenerationType, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, apperror.NewValidation("prompt", "prompt is required")
	}
	// Characters, not bytes, so multibyte prompts are not penalized.
	if utf8.RuneCountInString(prompt) > entity.MaxPromptLength {
		return nil, apperror.NewValidation("prompt", fmt.Sprintf("prompt exceeds %d characters", entity.MaxPromptLength))
	}

	cost := constant.CostFor(req.Model)
	model := constant.ResolveModel(req.Model)

	account, err := s.creditService.Account(ctx, userId)
	if err != nil {
		return nil, err
	}

	// Unlimited accounts skip the ledger entirely: no debit, no refund, and
	// the record carries a zero charge.
	charged := 0
	gen := &entity.Generation{
		Id:       uuid.New(),
		UserId:   userId,
		Type:     genType,
		Prompt:   prompt,
		Model:    req.Model,
		Status:   entity.GenerationStatusPending,
		Settings: req.Settings,
	}

	if !account.Unlimited() {
		if !account.HasEnough(cost) {
			return nil, &InsufficientCreditsError{Required: cost, Available: account.Balance}
		}

		ok, err := s.creditService.Deduct(ctx, userId, cost,
			fmt.Sprintf("%s generation (%s)", genType, req.Model), &gen.Id)
		if err != nil {
			return nil, err
		}
		if !ok {
			// A concurrent spend won the balance between the check and the
			// debit. Re-read so the response reports what is actually left.
			if fresh, err := s.creditService.Account(ctx, userId); err == nil {
				account = fresh
			}
			return nil, &InsufficientCreditsError{Required: cost, Available: account.Balance}
		}
		charged = cost
	}

	gen.CreditsUsed = charged

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GenerationRepository().Create(ctx, gen); err != nil {
		// The debit exists but its generation row does not. Refund now so the
		// user is not charged for work that never started.
		s.refund(ctx, userId, charged, gen.Id)
		return nil, apperror.NewStorage("create generation", err)
	}

	gen.Status = entity.GenerationStatusProcessing
	if err := uow.GenerationRepository().Update(ctx, gen); err != nil {
		s.log.Warn("generation", "failed to mark processing", map[string]interface{}{
			"generation_id": gen.Id.String(),
			"error":         err.Error(),
		})
	}

	url, thumbnail, providerName, fallbackUsed, invokeErr := s.invoke(ctx, userId, genType, prompt, model)
	if invokeErr != nil {
		refunded := s.refund(ctx, userId, charged, gen.Id)

		gen.Status = entity.GenerationStatusFailed
		if err := uow.GenerationRepository().Update(ctx, gen); err != nil {
			s.log.Error("generation", "failed to mark failed", map[string]interface{}{
				"generation_id": gen.Id.String(),
				"error":         err.Error(),
			})
		}
		s.publishFinished(ctx, gen, "", refunded)

		remaining := account.Balance
		if fresh, err := s.creditService.Account(ctx, userId); err == nil {
			remaining = fresh.Balance
		}
		return nil, &GenerationFailedError{Refunded: refunded, RemainingCredits: remaining, Err: invokeErr}
	}

	now := time.Now()
	gen.Status = entity.GenerationStatusCompleted
	gen.Url = &url
	gen.Provider = &providerName
	if thumbnail != "" {
		gen.ThumbnailUrl = &thumbnail
	}
	gen.UpdatedAt = now
	if err := uow.GenerationRepository().Update(ctx, gen); err != nil {
		return nil, apperror.NewStorage("complete generation", err)
	}
	s.publishFinished(ctx, gen, providerName, false)

	remaining := account.Balance - charged
	if fresh, err := s.creditService.Account(ctx, userId); err == nil {
		remaining = fresh.Balance
	}

	return &dto.GenerateResponse{
		Generation: dto.GenerationResponse{
			Id:          gen.Id,
			Url:         url,
			Thumbnail:   thumbnail,
			Prompt:      gen.Prompt,
			Model:       gen.Model,
			Provider:    providerName,
			CreditsUsed: charged,
			Settings:    gen.Settings,
			CreatedAt:   gen.CreatedAt,
		},
		FallbackUsed:     fallbackUsed,
		RemainingCredits: remaining,
	}, nil
}

// invoke runs the provider chain for the generation type and stores the
// resulting artifact.
func (s *generationService) invoke(ctx context.Context, userId uuid.UUID, genType entity.GenerationType, prompt, model string) (url, thumbnail, providerName string, fallbackUsed bool, err error) {
	switch genType {
	case entity.GenerationTypeVideo:
		attempts := make([]provider.Attempt[string], 0, len(s.videoProviders))
		for _, p := range s.videoProviders {
			p := p
			attempts = append(attempts, provider.Attempt[string]{
				Name: p.Name(),
				Invoke: func(ctx context.Context) (string, error) {
					return p.GenerateVideo(ctx, prompt, model)
				},
			})
		}
		result, err := provider.RunChain(ctx, s.log, "generate-video", attempts)
		if err != nil {
			return "", "", "", false, err
		}
		// Video providers already host the artifact; store the URL as-is.
		return result.Output, "", result.Provider, result.FallbackUsed, nil

	default:
		attempts := make([]provider.Attempt[[]byte], 0, len(s.imageProviders))
		for _, p := range s.imageProviders {
			p := p
			attempts = append(attempts, provider.Attempt[[]byte]{
				Name: p.Name(),
				Invoke: func(ctx context.Context) ([]byte, error) {
					return p.GenerateImage(ctx, prompt, model)
				},
			})
		}
		result, err := provider.RunChain(ctx, s.log, "generate-image", attempts)
		if err != nil {
			return "", "", "", false, err
		}

		url, err := s.artifacts.UploadArtifact(ctx, userId, result.Output, "image/png")
		if err != nil {
			return "", "", "", false, apperror.NewStorage("upload artifact", err)
		}

		// Thumbnails are best effort; the generation succeeds without one.
		var thumbURL string
		if thumb, terr := storage.Thumbnail(result.Output); terr == nil {
			if u, uerr := s.artifacts.UploadArtifact(ctx, userId, thumb, "image/jpeg"); uerr == nil {
				thumbURL = u
			}
		} else {
			s.log.Debug("generation", "thumbnail skipped", map[string]interface{}{
				"error": terr.Error(),
			})
		}

		return url, thumbURL, result.Provider, result.FallbackUsed, nil
	}
}

// refund compensates a debit after the generation it backed failed. Returns
// whether a refund row actually landed; a zero charge needs none.
func (s *generationService) refund(ctx context.Context, userId uuid.UUID, amount int, generationId uuid.UUID) bool {
	if amount <= 0 {
		return false
	}
	err := s.creditService.Add(ctx, userId, amount, entity.TransactionTypeRefund,
		"refund for failed generation", &generationId)
	if err != nil {
		// The sweep job picks up debits whose refunds never landed.
		s.log.Error("generation", "refund failed, leaving to reconciliation sweep", map[string]interface{}{
			"generation_id": generationId.String(),
			"user_id":       userId.String(),
			"amount":        amount,
			"error":         err.Error(),
		})
		return false
	}
	return true
}

func (s *generationService) publishFinished(ctx context.Context, gen *entity.Generation, providerName string, refunded bool) {
	if s.publisher == nil {
		return
	}
	url := ""
	if gen.Url != nil {
		url = *gen.Url
	}
	err := s.publisher.Publish(ctx, events.GenerationFinished{
		GenerationId: gen.Id,
		UserId:       gen.UserId,
		Status:       string(gen.Status),
		Url:          url,
		Provider:     providerName,
		CreditsUsed:  gen.CreditsUsed,
		Refunded:     refunded,
		OccurredAt:   time.Now(),
	})
	if err != nil {
		s.log.Warn("generation", "failed to publish finished event", map[string]interface{}{
			"generation_id": gen.Id.String(),
			"error":         err.Error(),
		})
	}
}

func (s *generationService) EnhancePrompt(ctx context.Context, req *dto.EnhancePromptRequest) (*dto.EnhancePromptResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, apperror.NewValidation("prompt", "prompt is required")
	}
	if utf8.RuneCountInString(prompt) > entity.MaxPromptLength {
		return nil, apperror.NewValidation("prompt", fmt.Sprintf("prompt exceeds %d characters", entity.MaxPromptLength))
	}

	attempts := make([]provider.Attempt[string], 0, len(s.textProviders))
	for _, p := range s.textProviders {
		p := p
		attempts = append(attempts, provider.Attempt[string]{
			Name: p.Name(),
			Invoke: func(ctx context.Context) (string, error) {
				return p.Enhance(ctx, prompt)
			},
		})
	}

	// The chain ends in the local enhancer, which cannot fail, so exhaustion
	// only happens when no providers are configured at all.
	result, err := provider.RunChain(ctx, s.log, "enhance-prompt", attempts)
	if err != nil {
		return nil, err
	}

	return &dto.EnhancePromptResponse{
		Prompt:       prompt,
		Enhanced:     result.Output,
		Provider:     result.Provider,
		FallbackUsed: result.FallbackUsed,
	}, nil
}

func (s *generationService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.GenerationListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	gens, err := uow.GenerationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, apperror.NewStorage("list generations", err)
	}

	items := make([]dto.GenerationListItem, 0, len(gens))
	for _, g := range gens {
		items = append(items, toListItem(g))
	}
	return &dto.GenerationListResponse{Generations: items, Limit: limit, Offset: offset}, nil
}

func (s *generationService) Get(ctx context.Context, userId, id uuid.UUID) (*dto.GenerationListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gen, err := uow.GenerationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, apperror.NewStorage("find generation", err)
	}
	if gen == nil {
		return nil, apperror.NewNotFound("generation")
	}
	item := toListItem(gen)
	return &item, nil
}

func (s *generationService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	gen, err := uow.GenerationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return apperror.NewStorage("find generation", err)
	}
	if gen == nil {
		return apperror.NewNotFound("generation")
	}

	if err := uow.GenerationRepository().Delete(ctx, id, userId); err != nil {
		return apperror.NewStorage("delete generation", err)
	}

	// Artifact cleanup is best effort; an orphaned object is not worth
	// failing the delete over.
	if s.artifacts != nil && gen.Url != nil {
		if err := s.artifacts.Delete(ctx, *gen.Url); err != nil {
			s.log.Warn("generation", "failed to delete artifact", map[string]interface{}{
				"generation_id": id.String(),
				"error":         err.Error(),
			})
		}
		if gen.ThumbnailUrl != nil {
			if err := s.artifacts.Delete(ctx, *gen.ThumbnailUrl); err != nil {
				s.log.Warn("generation", "failed to delete thumbnail", map[string]interface{}{
					"generation_id": id.String(),
					"error":         err.Error(),
				})
			}
		}
	}
	return nil
}

func toListItem(g *entity.Generation) dto.GenerationListItem {
	item := dto.GenerationListItem{
		Id:          g.Id,
		Type:        string(g.Type),
		Prompt:      g.Prompt,
		Model:       g.Model,
		Status:      string(g.Status),
		CreditsUsed: g.CreditsUsed,
		Settings:    g.Settings,
		CreatedAt:   g.CreatedAt,
	}
	if g.Url != nil {
		item.Url = *g.Url
	}
	if g.ThumbnailUrl != nil {
		item.Thumbnail = *g.ThumbnailUrl
	}
	return item
}
