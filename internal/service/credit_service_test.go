// FILE: internal/service/credit_service_test.go
package service

import (
	"context"
	"sync"
	"testing"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(f *fakeFactory, balance int, admin bool) uuid.UUID {
	userId := uuid.New()
	f.uow.credits.accounts[userId] = &entity.CreditAccount{
		UserId:  userId,
		Balance: balance,
		Admin:   admin,
	}
	return userId
}

func TestCreditServiceGetBalance(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)
	userId := seedAccount(factory, 42, false)

	res, err := svc.GetBalance(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 42, res.Balance)
	assert.False(t, res.Unlimited)
}

func TestCreditServiceGetBalanceUnknownUser(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)

	_, err := svc.GetBalance(context.Background(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreditServiceHasEnough(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		admin   bool
		amount  int
		want    bool
	}{
		{"sufficient", 10, false, 5, true},
		{"exact", 5, false, 5, true},
		{"insufficient", 4, false, 5, false},
		{"admin always passes", 0, true, 1000, true},
		{"negative sentinel", -1, false, 1000, true},
		{"threshold sentinel", 999999, false, 1000000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			svc := NewCreditService(factory)
			userId := seedAccount(factory, tt.balance, tt.admin)

			got, err := svc.HasEnough(context.Background(), userId, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreditServiceDeductSuccess(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)
	userId := seedAccount(factory, 10, false)
	genId := uuid.New()

	ok, err := svc.Deduct(context.Background(), userId, 3, "image generation", &genId)
	require.NoError(t, err)
	require.True(t, ok)

	account, err := svc.Account(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 7, account.Balance)

	debits := factory.uow.credits.transactionsOf(entity.TransactionTypeGeneration)
	require.Len(t, debits, 1)
	assert.Equal(t, 3, debits[0].Amount)
	require.NotNil(t, debits[0].GenerationId)
	assert.Equal(t, genId, *debits[0].GenerationId)
}

func TestCreditServiceDeductInsufficient(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)
	userId := seedAccount(factory, 2, false)

	ok, err := svc.Deduct(context.Background(), userId, 3, "image generation", nil)
	require.NoError(t, err)
	assert.False(t, ok)

	// A failed deduct must not touch the balance or write a debit row.
	account, err := svc.Account(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 2, account.Balance)
	assert.Empty(t, factory.uow.credits.transactionsOf(entity.TransactionTypeGeneration))
}

func TestCreditServiceDeductConcurrent(t *testing.T) {
	// Two racing deducts against a balance that covers only one: exactly one
	// wins, and the balance never goes negative.
	factory := newFakeFactory()
	svc := NewCreditService(factory)
	userId := seedAccount(factory, 5, false)

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := svc.Deduct(context.Background(), userId, 3, "race", nil)
			require.NoError(t, err)
			results[i] = ok
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)

	account, err := svc.Account(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 2, account.Balance)
}

func TestCreditServiceAdd(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)
	userId := seedAccount(factory, 1, false)

	err := svc.Add(context.Background(), userId, 50, entity.TransactionTypePurchase, "credit package purchase", nil)
	require.NoError(t, err)

	account, err := svc.Account(context.Background(), userId)
	require.NoError(t, err)
	assert.Equal(t, 51, account.Balance)

	purchases := factory.uow.credits.transactionsOf(entity.TransactionTypePurchase)
	require.Len(t, purchases, 1)
	assert.Equal(t, 50, purchases[0].Amount)
}

func TestCreditServiceAddUnknownUser(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)

	err := svc.Add(context.Background(), uuid.New(), 10, entity.TransactionTypeBonus, "grant", nil)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreditServiceListTransactions(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)
	userId := seedAccount(factory, 100, false)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Add(context.Background(), userId, i+1, entity.TransactionTypeBonus, "grant", nil))
	}

	res, err := svc.ListTransactions(context.Background(), userId, 2)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
	// Newest first.
	assert.Equal(t, 3, res.Transactions[0].Amount)
	assert.Equal(t, 2, res.Transactions[1].Amount)
}

func TestCreditServiceListTransactionsClampsLimit(t *testing.T) {
	factory := newFakeFactory()
	svc := NewCreditService(factory)
	userId := seedAccount(factory, 100, false)

	res, err := svc.ListTransactions(context.Background(), userId, 0)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Limit)

	res, err = svc.ListTransactions(context.Background(), userId, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, res.Limit)
}
