// FILE: internal/controller/generation_controller.go
package controller

import (
	"errors"

	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/serverutils"
	"pixfusion-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	GenerateImage(ctx *fiber.Ctx) error
	GenerateVideo(ctx *fiber.Ctx) error
	EnhancePrompt(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type generationController struct {
	service service.IGenerationService
}

func NewGenerationController(service service.IGenerationService) IGenerationController {
	return &generationController{service: service}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generations/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/generate-image", c.GenerateImage)
	h.Post("/generate-video", c.GenerateVideo)
	h.Post("/enhance-prompt", c.EnhancePrompt)
	h.Get("", c.GetAll)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *generationController) GenerateImage(ctx *fiber.Ctx) error {
	return c.generate(ctx, entity.GenerationTypeImage)
}

func (c *generationController) GenerateVideo(ctx *fiber.Ctx) error {
	return c.generate(ctx, entity.GenerationTypeVideo)
}

func (c *generationController) generate(ctx *fiber.Ctx, genType entity.GenerationType) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.Context(), userId, genType, &req)
	if err != nil {
		return respondGenerationError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Generation completed", res))
}

func (c *generationController) EnhancePrompt(ctx *fiber.Ctx) error {
	var req dto.EnhancePromptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.EnhancePrompt(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Prompt enhanced", res))
}

func (c *generationController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.List(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get generations", res))
}

func (c *generationController) Show(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid generation id")
	}

	res, err := c.service.Get(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get generation", res))
}

func (c *generationController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid generation id")
	}

	if err := c.service.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Generation deleted", nil))
}

// respondGenerationError turns the typed flow errors into their dedicated
// payloads; everything else falls through to the error middleware.
func respondGenerationError(ctx *fiber.Ctx, err error) error {
	var ice *service.InsufficientCreditsError
	if errors.As(err, &ice) {
		return ctx.Status(fiber.StatusPaymentRequired).JSON(dto.InsufficientCreditsResponse{
			Message:   "Insufficient credits",
			Required:  ice.Required,
			Available: ice.Available,
		})
	}

	var gfe *service.GenerationFailedError
	if errors.As(err, &gfe) {
		return ctx.Status(fiber.StatusInternalServerError).JSON(dto.GenerationFailedResponse{
			Message:          "Generation failed, please try again",
			Refunded:         gfe.Refunded,
			RemainingCredits: gfe.RemainingCredits,
		})
	}

	return err
}
