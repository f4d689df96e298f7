// FILE: internal/dto/billing_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreditPackageResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Credits    int       `json:"credits"`
	PriceCents int64     `json:"price_cents"`
}

type CheckoutRequest struct {
	PackageId uuid.UUID `json:"package_id" validate:"required"`
}

type CheckoutResponse struct {
	SessionId   string `json:"session_id"`
	CheckoutUrl string `json:"checkout_url"`
}

type PurchaseResponse struct {
	Id          uuid.UUID  `json:"id"`
	Credits     int        `json:"credits"`
	AmountCents int64      `json:"amount_cents"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
