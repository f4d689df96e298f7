// FILE: internal/controller/tools_controller.go
package controller

import (
	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/pkg/serverutils"
	"pixfusion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IToolsController interface {
	RegisterRoutes(r fiber.Router)
	RemoveBackground(ctx *fiber.Ctx) error
	StyleTransfer(ctx *fiber.Ctx) error
}

type toolsController struct {
	service service.IToolsService
}

func NewToolsController(service service.IToolsService) IToolsController {
	return &toolsController{service: service}
}

func (c *toolsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tools/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/remove-background", c.RemoveBackground)
	h.Post("/style-transfer", c.StyleTransfer)
}

func (c *toolsController) RemoveBackground(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.RemoveBackgroundRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RemoveBackground(ctx.Context(), userId, &req)
	if err != nil {
		return respondGenerationError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Background removed", res))
}

func (c *toolsController) StyleTransfer(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.StyleTransferRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.StyleTransfer(ctx.Context(), userId, &req)
	if err != nil {
		return respondGenerationError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Style applied", res))
}
