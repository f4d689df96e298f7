// FILE: internal/service/billing_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pixfusion-be/internal/config"
	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/internal/pkg/logger"
	"pixfusion-be/internal/pkg/mailer"
	"pixfusion-be/internal/repository/specification"
	"pixfusion-be/internal/repository/unitofwork"
	"pixfusion-be/pkg/events"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

// IBillingService sells credit packages through Stripe checkout. Credits are
// granted only from the webhook, never from the redirect, and granting is
// idempotent across webhook redeliveries.
type IBillingService interface {
	ListPackages(ctx context.Context) ([]dto.CreditPackageResponse, error)
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	ListPurchases(ctx context.Context, userId uuid.UUID) ([]dto.PurchaseResponse, error)
}

type billingService struct {
	uowFactory    unitofwork.RepositoryFactory
	creditService ICreditService
	emailService  mailer.IEmailService
	publisher     events.Publisher
	log           logger.ILogger
	cfg           config.StripeConfig

	// seenEvents short-circuits webhook redeliveries before they hit the
	// database. The unique stripe_session_id column is the durable guard.
	seenEvents *gocache.Cache
}

func NewBillingService(
	uowFactory unitofwork.RepositoryFactory,
	creditService ICreditService,
	emailService mailer.IEmailService,
	publisher events.Publisher,
	log logger.ILogger,
	cfg config.StripeConfig,
) IBillingService {
	stripe.Key = cfg.SecretKey

	return &billingService{
		uowFactory:    uowFactory,
		creditService: creditService,
		emailService:  emailService,
		publisher:     publisher,
		log:           log,
		cfg:           cfg,
		seenEvents:    gocache.New(24*time.Hour, time.Hour),
	}
}

func (s *billingService) ListPackages(ctx context.Context) ([]dto.CreditPackageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	packages, err := uow.BillingRepository().FindPackages(ctx,
		specification.Filter("active", true),
		specification.OrderBy{Field: "price_cents", Desc: false},
	)
	if err != nil {
		return nil, apperror.NewStorage("list packages", err)
	}

	items := make([]dto.CreditPackageResponse, 0, len(packages))
	for _, p := range packages {
		items = append(items, dto.CreditPackageResponse{
			Id:         p.Id,
			Name:       p.Name,
			Credits:    p.Credits,
			PriceCents: p.PriceCents,
		})
	}
	return items, nil
}

func (s *billingService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	pkg, err := uow.BillingRepository().FindPackage(ctx,
		specification.ByID{ID: req.PackageId},
		specification.Filter("active", true),
	)
	if err != nil {
		return nil, apperror.NewStorage("find package", err)
	}
	if pkg == nil {
		return nil, apperror.NewNotFound("credit package")
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		ClientReferenceID: stripe.String(userId.String()),
	}
	if pkg.StripePriceId != "" {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(pkg.StripePriceId),
			Quantity: stripe.Int64(1),
		}}
	} else {
		params.LineItems = []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(pkg.PriceCents),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(pkg.Name),
				},
			},
			Quantity: stripe.Int64(1),
		}}
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	purchase := &entity.Purchase{
		Id:              uuid.New(),
		UserId:          userId,
		PackageId:       pkg.Id,
		StripeSessionId: sess.ID,
		Status:          entity.PurchaseStatusPending,
		AmountCents:     pkg.PriceCents,
		Credits:         pkg.Credits,
		CreatedAt:       time.Now(),
	}
	if err := uow.BillingRepository().CreatePurchase(ctx, purchase); err != nil {
		return nil, apperror.NewStorage("create purchase", err)
	}

	return &dto.CheckoutResponse{
		SessionId:   sess.ID,
		CheckoutUrl: sess.URL,
	}, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if _, seen := s.seenEvents.Get(event.ID); seen {
		s.log.Info("billing", "duplicate webhook event skipped", map[string]interface{}{
			"event_id": event.ID,
		})
		return nil
	}
	s.seenEvents.SetDefault(event.ID, struct{}{})

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return s.settlePurchase(ctx, sess.ID)

	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return s.expirePurchase(ctx, sess.ID)

	default:
		// Stripe sends every subscribed event type; unknown ones ack cleanly.
		return nil
	}
}

func (s *billingService) settlePurchase(ctx context.Context, sessionId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purchase, err := uow.BillingRepository().FindPurchase(ctx,
		specification.Filter("stripe_session_id", sessionId),
	)
	if err != nil {
		return apperror.NewStorage("find purchase", err)
	}
	if purchase == nil {
		return apperror.NewNotFound("purchase")
	}
	if purchase.Status == entity.PurchaseStatusCompleted {
		// Already settled by an earlier delivery.
		return nil
	}

	now := time.Now()
	purchase.Status = entity.PurchaseStatusCompleted
	purchase.CompletedAt = &now
	if err := uow.BillingRepository().UpdatePurchase(ctx, purchase); err != nil {
		return apperror.NewStorage("complete purchase", err)
	}

	if err := s.creditService.Add(ctx, purchase.UserId, purchase.Credits,
		entity.TransactionTypePurchase, "credit package purchase", nil); err != nil {
		return err
	}

	s.log.Info("billing", "purchase settled", map[string]interface{}{
		"purchase_id": purchase.Id.String(),
		"user_id":     purchase.UserId.String(),
		"credits":     purchase.Credits,
	})

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, events.CreditsPurchased{
			UserId:     purchase.UserId,
			PurchaseId: purchase.Id,
			Credits:    purchase.Credits,
			OccurredAt: now,
		})
	}

	if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: purchase.UserId}); err == nil && user != nil {
		go func(email string, credits int, amount int64) {
			if err := s.emailService.SendPurchaseReceipt(email, credits, amount); err != nil {
				s.log.Warn("billing", "failed to send receipt", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}(user.Email, purchase.Credits, purchase.AmountCents)
	}

	return nil
}

func (s *billingService) expirePurchase(ctx context.Context, sessionId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	purchase, err := uow.BillingRepository().FindPurchase(ctx,
		specification.Filter("stripe_session_id", sessionId),
	)
	if err != nil {
		return apperror.NewStorage("find purchase", err)
	}
	if purchase == nil || purchase.Status != entity.PurchaseStatusPending {
		return nil
	}

	purchase.Status = entity.PurchaseStatusExpired
	if err := uow.BillingRepository().UpdatePurchase(ctx, purchase); err != nil {
		return apperror.NewStorage("expire purchase", err)
	}
	return nil
}

func (s *billingService) ListPurchases(ctx context.Context, userId uuid.UUID) ([]dto.PurchaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	purchases, err := uow.BillingRepository().FindPurchases(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, apperror.NewStorage("list purchases", err)
	}

	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, dto.PurchaseResponse{
			Id:          p.Id,
			Credits:     p.Credits,
			AmountCents: p.AmountCents,
			Status:      string(p.Status),
			CompletedAt: p.CompletedAt,
			CreatedAt:   p.CreatedAt,
		})
	}
	return items, nil
}
