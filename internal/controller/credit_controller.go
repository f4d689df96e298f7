// FILE: internal/controller/credit_controller.go
package controller

import (
	"pixfusion-be/internal/pkg/serverutils"
	"pixfusion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICreditController interface {
	RegisterRoutes(r fiber.Router)
	GetBalance(ctx *fiber.Ctx) error
	GetTransactions(ctx *fiber.Ctx) error
}

type creditController struct {
	service service.ICreditService
}

func NewCreditController(service service.ICreditService) ICreditController {
	return &creditController{service: service}
}

func (c *creditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credits/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/balance", c.GetBalance)
	h.Get("/transactions", c.GetTransactions)
}

func (c *creditController) GetBalance(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetBalance(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get balance", res))
}

func (c *creditController) GetTransactions(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	limit := ctx.QueryInt("limit", 50)

	res, err := c.service.ListTransactions(ctx.Context(), userId, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transactions", res))
}
