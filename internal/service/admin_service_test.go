// FILE: internal/service/admin_service_test.go
package service

import (
	"context"
	"testing"

	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGrantCredits(t *testing.T) {
	factory := newFakeFactory()
	credits := NewCreditService(factory)
	svc := NewAdminService(factory, credits, nopLogger{})
	userId := seedAccount(factory, 5, false)

	err := svc.GrantCredits(context.Background(), &dto.AdminGrantCreditsRequest{
		UserId: userId,
		Amount: 20,
	})
	require.NoError(t, err)

	account, _ := credits.Account(context.Background(), userId)
	assert.Equal(t, 25, account.Balance)

	bonuses := factory.uow.credits.transactionsOf(entity.TransactionTypeBonus)
	require.Len(t, bonuses, 1)
	assert.Equal(t, "admin credit grant", bonuses[0].Description)
}

func TestAdminSweepRefundsOrphanedDebits(t *testing.T) {
	factory := newFakeFactory()
	credits := NewCreditService(factory)
	svc := NewAdminService(factory, credits, nopLogger{})
	userId := seedAccount(factory, 5, false)

	// A debit whose generation failed and whose refund never landed.
	genId := uuid.New()
	ok, err := credits.Deduct(context.Background(), userId, 3, "image generation", &genId)
	require.NoError(t, err)
	require.True(t, ok)

	res, err := svc.SweepOrphanedDebits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Repaired)

	account, _ := credits.Account(context.Background(), userId)
	assert.Equal(t, 5, account.Balance)

	// A second sweep is a no-op: the refund row now matches the debit.
	res, err = svc.SweepOrphanedDebits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Repaired)
}

func TestAdminSweepIgnoresRefundedDebits(t *testing.T) {
	factory := newFakeFactory()
	credits := NewCreditService(factory)
	svc := NewAdminService(factory, credits, nopLogger{})
	userId := seedAccount(factory, 5, false)

	genId := uuid.New()
	ok, err := credits.Deduct(context.Background(), userId, 3, "image generation", &genId)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, credits.Add(context.Background(), userId, 3, entity.TransactionTypeRefund, "refund", &genId))

	res, err := svc.SweepOrphanedDebits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Repaired)
}
