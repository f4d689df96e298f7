package contract

import (
	"context"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/repository/specification"

	"github.com/google/uuid"
)

// CreditRepository is the single write path for a user's balance.
// Deduct and Add are single conditional UPDATE statements, atomic with
// respect to concurrent calls for the same user.
type CreditRepository interface {
	// FindAccount returns the ledger view of a user, or nil when absent.
	FindAccount(ctx context.Context, userId uuid.UUID) (*entity.CreditAccount, error)

	// Deduct atomically decrements the balance. Returns false (not an error)
	// when the balance was insufficient at the moment of execution.
	Deduct(ctx context.Context, userId uuid.UUID, amount int) (bool, error)

	// Add atomically increments the balance.
	Add(ctx context.Context, userId uuid.UUID, amount int) error

	CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error
	FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)

	// SumAmountByType totals transaction amounts for a type across all users
	// (admin dashboard).
	SumAmountByType(ctx context.Context, txType entity.TransactionType) (int64, error)

	// FindUnrefundedDebits returns generation debits whose generation failed
	// and has no matching refund transaction (crash-recovery sweep).
	FindUnrefundedDebits(ctx context.Context) ([]*entity.CreditTransaction, error)
}
