package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "generation.finished").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeGenerationFinished = "generation.finished"
	TypeCreditsPurchased   = "credits.purchased"
)

// GenerationFinished is published when a generation reaches a terminal
// status, successful or not.
type GenerationFinished struct {
	GenerationId uuid.UUID
	UserId       uuid.UUID
	Status       string
	Url          string
	Provider     string
	CreditsUsed  int
	Refunded     bool
	OccurredAt   time.Time
}

func (e GenerationFinished) EventType() string {
	return TypeGenerationFinished
}

func (e GenerationFinished) Payload() map[string]interface{} {
	return map[string]interface{}{
		"generation_id": e.GenerationId.String(),
		"user_id":       e.UserId.String(),
		"status":        e.Status,
		"url":           e.Url,
		"provider":      e.Provider,
		"credits_used":  e.CreditsUsed,
		"refunded":      e.Refunded,
	}
}

func (e GenerationFinished) Timestamp() time.Time {
	return e.OccurredAt
}

// CreditsPurchased is published after a Stripe checkout settles.
type CreditsPurchased struct {
	UserId     uuid.UUID
	PurchaseId uuid.UUID
	Credits    int
	OccurredAt time.Time
}

func (e CreditsPurchased) EventType() string {
	return TypeCreditsPurchased
}

func (e CreditsPurchased) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     e.UserId.String(),
		"purchase_id": e.PurchaseId.String(),
		"credits":     e.Credits,
	}
}

func (e CreditsPurchased) Timestamp() time.Time {
	return e.OccurredAt
}
