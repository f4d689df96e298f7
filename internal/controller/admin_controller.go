// FILE: internal/controller/admin_controller.go
package controller

import (
	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/pkg/serverutils"
	"pixfusion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
	GetUsers(ctx *fiber.Ctx) error
	GrantCredits(ctx *fiber.Ctx) error
	Sweep(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)
	h.Get("/stats", c.Stats)
	h.Get("/users", c.GetUsers)
	h.Post("/credits/grant", c.GrantCredits)
	h.Post("/credits/sweep", c.Sweep)
}

func (c *adminController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}

func (c *adminController) GetUsers(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 25)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.ListUsers(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get users", res))
}

func (c *adminController) GrantCredits(ctx *fiber.Ctx) error {
	var req dto.AdminGrantCreditsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.GrantCredits(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Credits granted", nil))
}

func (c *adminController) Sweep(ctx *fiber.Ctx) error {
	res, err := c.service.SweepOrphanedDebits(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sweep completed", res))
}
