// FILE: internal/entity/billing_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusExpired   PurchaseStatus = "expired"
)

// CreditPackage is a purchasable bundle of credits priced through Stripe.
type CreditPackage struct {
	Id            uuid.UUID
	Name          string
	Credits       int
	PriceCents    int64
	StripePriceId string
	Active        bool
	CreatedAt     time.Time
}

// Purchase tracks one Stripe checkout session from creation to settlement.
// StripeSessionId is unique, which makes webhook crediting idempotent even
// when Stripe redelivers an event.
type Purchase struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	PackageId       uuid.UUID
	StripeSessionId string
	Status          PurchaseStatus
	AmountCents     int64
	Credits         int
	CompletedAt     *time.Time
	CreatedAt       time.Time
}
