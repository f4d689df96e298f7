// FILE: internal/entity/credit_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UnlimitedThreshold is the legacy balance sentinel meaning "never runs out".
// Old rows may also carry -1 with the same meaning. New writes never produce
// either; Unlimited() is the only place that interprets them.
const UnlimitedThreshold = 999999

// CreditAccount is a user's spendable balance. The balance only changes
// through the ledger's deduct/add operations.
type CreditAccount struct {
	UserId  uuid.UUID
	Balance int
	Admin   bool
}

// Unlimited folds the admin flag and the legacy sentinels into one answer.
func (a CreditAccount) Unlimited() bool {
	return a.Admin || a.Balance < 0 || a.Balance >= UnlimitedThreshold
}

// HasEnough reports whether the account can cover amount.
func (a CreditAccount) HasEnough(amount int) bool {
	return a.Unlimited() || a.Balance >= amount
}

type TransactionType string

const (
	TransactionTypePurchase   TransactionType = "purchase"
	TransactionTypeGeneration TransactionType = "generation"
	TransactionTypeRefund     TransactionType = "refund"
	TransactionTypeBonus      TransactionType = "bonus"
)

// CreditTransaction is an append-only audit record of one balance change.
// Refunds carry the generation id they compensate, so a reconciliation sweep
// can match debits against refunds.
type CreditTransaction struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Type         TransactionType
	Amount       int
	Description  string
	GenerationId *uuid.UUID
	CreatedAt    time.Time
}
