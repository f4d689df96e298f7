package unitofwork

import (
	"context"

	"pixfusion-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CreditRepository() contract.CreditRepository
	GenerationRepository() contract.GenerationRepository
	BillingRepository() contract.BillingRepository
}
