// FILE: internal/service/billing_service_test.go
package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"pixfusion-be/internal/config"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/repository/specification"
	"pixfusion-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

const testWebhookSecret = "whsec_test_secret"

type billingFixture struct {
	factory   *fakeFactory
	credits   ICreditService
	publisher *fakePublisher
	svc       IBillingService
}

func newBillingFixture() *billingFixture {
	factory := newFakeFactory()
	credits := NewCreditService(factory)
	publisher := &fakePublisher{}
	svc := NewBillingService(factory, credits, &fakeMailer{}, publisher, nopLogger{}, config.StripeConfig{
		SecretKey:     "sk_test_key",
		WebhookSecret: testWebhookSecret,
	})
	return &billingFixture{factory: factory, credits: credits, publisher: publisher, svc: svc}
}

func seedPendingPurchase(f *fakeFactory, userId uuid.UUID, sessionId string, credits int) *entity.Purchase {
	p := &entity.Purchase{
		Id:              uuid.New(),
		UserId:          userId,
		PackageId:       uuid.New(),
		StripeSessionId: sessionId,
		Status:          entity.PurchaseStatusPending,
		AmountCents:     1499,
		Credits:         credits,
		CreatedAt:       time.Now(),
	}
	f.uow.billing.purchases[p.Id] = p
	return p
}

func checkoutEvent(eventId, eventType, sessionId string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"api_version":%q,"type":%q,"data":{"object":{"id":%q}}}`,
		eventId, stripe.APIVersion, eventType, sessionId,
	))
}

// signPayload builds the Stripe-Signature header the way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>" with the endpoint secret.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestWebhookSettlesPurchase(t *testing.T) {
	fx := newBillingFixture()
	userId := seedAccount(fx.factory, 5, false)
	purchase := seedPendingPurchase(fx.factory, userId, "cs_test_settle", 200)

	payload := checkoutEvent("evt_1", "checkout.session.completed", purchase.StripeSessionId)
	err := fx.svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	balance, err := fx.credits.GetBalance(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 205, balance.Balance)

	stored, _ := fx.factory.uow.billing.FindPurchase(context.Background(), specification.ByID{ID: purchase.Id})
	require.NotNil(t, stored)
	assert.Equal(t, entity.PurchaseStatusCompleted, stored.Status)
	require.NotNil(t, stored.CompletedAt)

	txs := fx.factory.uow.credits.transactionsOf(entity.TransactionTypePurchase)
	require.Len(t, txs, 1)
	assert.Equal(t, 200, txs[0].Amount)

	require.Len(t, fx.publisher.events, 1)
	purchased, ok := fx.publisher.events[0].(events.CreditsPurchased)
	require.True(t, ok)
	assert.Equal(t, userId, purchased.UserId)
	assert.Equal(t, 200, purchased.Credits)
}

func TestWebhookDuplicateDeliveryCreditsOnce(t *testing.T) {
	fx := newBillingFixture()
	userId := seedAccount(fx.factory, 0, false)
	purchase := seedPendingPurchase(fx.factory, userId, "cs_test_dup", 50)

	payload := checkoutEvent("evt_dup", "checkout.session.completed", purchase.StripeSessionId)
	signature := signPayload(payload, testWebhookSecret)

	require.NoError(t, fx.svc.HandleWebhook(context.Background(), payload, signature))
	require.NoError(t, fx.svc.HandleWebhook(context.Background(), payload, signature))

	balance, err := fx.credits.GetBalance(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 50, balance.Balance)
	assert.Len(t, fx.factory.uow.credits.transactionsOf(entity.TransactionTypePurchase), 1)
	assert.Len(t, fx.publisher.events, 1)
}

// Stripe may redeliver the same checkout completion under a fresh event id;
// the settled purchase status keeps the second grant out.
func TestWebhookRedeliveryWithNewEventIdCreditsOnce(t *testing.T) {
	fx := newBillingFixture()
	userId := seedAccount(fx.factory, 0, false)
	purchase := seedPendingPurchase(fx.factory, userId, "cs_test_redeliver", 50)

	first := checkoutEvent("evt_a", "checkout.session.completed", purchase.StripeSessionId)
	require.NoError(t, fx.svc.HandleWebhook(context.Background(), first, signPayload(first, testWebhookSecret)))

	second := checkoutEvent("evt_b", "checkout.session.completed", purchase.StripeSessionId)
	require.NoError(t, fx.svc.HandleWebhook(context.Background(), second, signPayload(second, testWebhookSecret)))

	balance, err := fx.credits.GetBalance(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 50, balance.Balance)
	assert.Len(t, fx.factory.uow.credits.transactionsOf(entity.TransactionTypePurchase), 1)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	fx := newBillingFixture()
	userId := seedAccount(fx.factory, 0, false)
	purchase := seedPendingPurchase(fx.factory, userId, "cs_test_forged", 50)

	payload := checkoutEvent("evt_forged", "checkout.session.completed", purchase.StripeSessionId)
	err := fx.svc.HandleWebhook(context.Background(), payload, signPayload(payload, "whsec_wrong_secret"))
	require.Error(t, err)

	balance, berr := fx.credits.GetBalance(context.Background(), userId)
	require.NoError(t, berr)
	assert.Equal(t, 0, balance.Balance)

	stored, _ := fx.factory.uow.billing.FindPurchase(context.Background(), specification.ByID{ID: purchase.Id})
	require.NotNil(t, stored)
	assert.Equal(t, entity.PurchaseStatusPending, stored.Status)
}

func TestWebhookExpiresPendingPurchase(t *testing.T) {
	fx := newBillingFixture()
	userId := seedAccount(fx.factory, 0, false)
	purchase := seedPendingPurchase(fx.factory, userId, "cs_test_expire", 50)

	payload := checkoutEvent("evt_expire", "checkout.session.expired", purchase.StripeSessionId)
	require.NoError(t, fx.svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret)))

	stored, _ := fx.factory.uow.billing.FindPurchase(context.Background(), specification.ByID{ID: purchase.Id})
	require.NotNil(t, stored)
	assert.Equal(t, entity.PurchaseStatusExpired, stored.Status)

	balance, err := fx.credits.GetBalance(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Balance)
}

func TestWebhookAcksUnknownEventType(t *testing.T) {
	fx := newBillingFixture()

	payload := checkoutEvent("evt_other", "invoice.paid", "cs_irrelevant")
	err := fx.svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	assert.NoError(t, err)
}
