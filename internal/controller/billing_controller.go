// FILE: internal/controller/billing_controller.go
package controller

import (
	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/pkg/serverutils"
	"pixfusion-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBillingController interface {
	RegisterRoutes(r fiber.Router)
	GetPackages(ctx *fiber.Ctx) error
	CreateCheckout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
	GetPurchases(ctx *fiber.Ctx) error
}

type billingController struct {
	service service.IBillingService
}

func NewBillingController(service service.IBillingService) IBillingController {
	return &billingController{service: service}
}

func (c *billingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/billing/v1")
	// Stripe calls the webhook unauthenticated; the signature is the auth.
	h.Post("/webhook", c.Webhook)
	h.Get("/packages", c.GetPackages)

	authed := h.Group("")
	authed.Use(serverutils.JwtMiddleware)
	authed.Post("/checkout", c.CreateCheckout)
	authed.Get("/purchases", c.GetPurchases)
}

func (c *billingController) GetPackages(ctx *fiber.Ctx) error {
	res, err := c.service.ListPackages(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get packages", res))
}

func (c *billingController) CreateCheckout(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateCheckout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Checkout session created", res))
}

func (c *billingController) Webhook(ctx *fiber.Ctx) error {
	signature := ctx.Get("Stripe-Signature")
	if signature == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing stripe signature")
	}

	if err := c.service.HandleWebhook(ctx.Context(), ctx.Body(), signature); err != nil {
		// Stripe retries non-2xx responses.
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.SendStatus(fiber.StatusOK)
}

func (c *billingController) GetPurchases(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.ListPurchases(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get purchases", res))
}
