// FILE: internal/service/credit_service.go
package service

import (
	"context"
	"errors"

	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/internal/repository/specification"
	"pixfusion-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ICreditService is the single source of truth for a user's spendable
// balance. All mutations go through Deduct/Add, which are atomic at the
// repository layer.
type ICreditService interface {
	// Account returns the ledger view of a user.
	Account(ctx context.Context, userId uuid.UUID) (*entity.CreditAccount, error)

	// GetBalance returns the current balance.
	GetBalance(ctx context.Context, userId uuid.UUID) (*dto.BalanceResponse, error)

	// HasEnough treats unlimited accounts as always sufficient.
	HasEnough(ctx context.Context, userId uuid.UUID, amount int) (bool, error)

	// Deduct attempts an atomic decrement and records a generation
	// transaction. Returns false, not an error, when funds are insufficient
	// at the moment of execution.
	Deduct(ctx context.Context, userId uuid.UUID, amount int, description string, generationId *uuid.UUID) (bool, error)

	// Add atomically increments the balance and records a transaction of the
	// given type.
	Add(ctx context.Context, userId uuid.UUID, amount int, txType entity.TransactionType, description string, generationId *uuid.UUID) error

	// ListTransactions returns the newest transactions first.
	ListTransactions(ctx context.Context, userId uuid.UUID, limit int) (*dto.TransactionListResponse, error)
}

type creditService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCreditService(uowFactory unitofwork.RepositoryFactory) ICreditService {
	return &creditService{uowFactory: uowFactory}
}

func (s *creditService) Account(ctx context.Context, userId uuid.UUID) (*entity.CreditAccount, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.CreditRepository().FindAccount(ctx, userId)
	if err != nil {
		return nil, apperror.NewStorage("find account", err)
	}
	if account == nil {
		return nil, apperror.NewNotFound("credit account")
	}
	return account, nil
}

func (s *creditService) GetBalance(ctx context.Context, userId uuid.UUID) (*dto.BalanceResponse, error) {
	account, err := s.Account(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		Balance:   account.Balance,
		Unlimited: account.Unlimited(),
	}, nil
}

func (s *creditService) HasEnough(ctx context.Context, userId uuid.UUID, amount int) (bool, error) {
	account, err := s.Account(ctx, userId)
	if err != nil {
		return false, err
	}
	return account.HasEnough(amount), nil
}

func (s *creditService) Deduct(ctx context.Context, userId uuid.UUID, amount int, description string, generationId *uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return false, apperror.NewStorage("begin deduct", err)
	}
	defer uow.Rollback()

	ok, err := uow.CreditRepository().Deduct(ctx, userId, amount)
	if err != nil {
		return false, apperror.NewStorage("deduct credits", err)
	}
	if !ok {
		// Insufficient funds is an expected result, not a failure.
		return false, nil
	}

	tx := &entity.CreditTransaction{
		Id:           uuid.New(),
		UserId:       userId,
		Type:         entity.TransactionTypeGeneration,
		Amount:       amount,
		Description:  description,
		GenerationId: generationId,
	}
	if err := uow.CreditRepository().CreateTransaction(ctx, tx); err != nil {
		return false, apperror.NewStorage("record deduct transaction", err)
	}

	if err := uow.Commit(); err != nil {
		return false, apperror.NewStorage("commit deduct", err)
	}
	return true, nil
}

func (s *creditService) Add(ctx context.Context, userId uuid.UUID, amount int, txType entity.TransactionType, description string, generationId *uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return apperror.NewStorage("begin add", err)
	}
	defer uow.Rollback()

	if err := uow.CreditRepository().Add(ctx, userId, amount); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFound("credit account")
		}
		return apperror.NewStorage("add credits", err)
	}

	tx := &entity.CreditTransaction{
		Id:           uuid.New(),
		UserId:       userId,
		Type:         txType,
		Amount:       amount,
		Description:  description,
		GenerationId: generationId,
	}
	if err := uow.CreditRepository().CreateTransaction(ctx, tx); err != nil {
		return apperror.NewStorage("record add transaction", err)
	}

	if err := uow.Commit(); err != nil {
		return apperror.NewStorage("commit add", err)
	}
	return nil
}

func (s *creditService) ListTransactions(ctx context.Context, userId uuid.UUID, limit int) (*dto.TransactionListResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	txs, err := uow.CreditRepository().FindTransactions(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, apperror.NewStorage("list transactions", err)
	}

	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, dto.TransactionResponse{
			Id:           tx.Id,
			Type:         string(tx.Type),
			Amount:       tx.Amount,
			Description:  tx.Description,
			GenerationId: tx.GenerationId,
			CreatedAt:    tx.CreatedAt,
		})
	}

	return &dto.TransactionListResponse{Transactions: items, Limit: limit}, nil
}
