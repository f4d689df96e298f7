// FILE: internal/service/tools_service_test.go
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"pixfusion-be/internal/dto"
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/pkg/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedImage() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-image-bytes"))
}

func newToolsFixture(edit *stubEditProvider) (*fakeFactory, ICreditService, IToolsService) {
	factory := newFakeFactory()
	credits := NewCreditService(factory)
	svc := NewToolsService(credits, &fakeArtifactStore{}, nopLogger{},
		[]provider.ImageEditProvider{edit})
	return factory, credits, svc
}

func workingEditProvider() *stubEditProvider {
	return &stubEditProvider{name: "huggingface", fn: func() ([]byte, error) {
		return []byte("edited"), nil
	}}
}

func TestRemoveBackgroundChargesTwoCredits(t *testing.T) {
	factory, credits, svc := newToolsFixture(workingEditProvider())
	userId := seedAccount(factory, 10, false)

	res, err := svc.RemoveBackground(context.Background(), userId, &dto.RemoveBackgroundRequest{Image: encodedImage()})
	require.NoError(t, err)

	assert.Equal(t, 2, res.CreditsUsed)
	assert.Equal(t, 8, res.RemainingCredits)
	assert.NotEmpty(t, res.ImageUrl)

	account, _ := credits.Account(context.Background(), userId)
	assert.Equal(t, 8, account.Balance)
}

func TestStyleTransferChargesThreeCredits(t *testing.T) {
	factory, _, svc := newToolsFixture(workingEditProvider())
	userId := seedAccount(factory, 10, false)

	res, err := svc.StyleTransfer(context.Background(), userId, &dto.StyleTransferRequest{
		Image: encodedImage(),
		Style: "van gogh",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.CreditsUsed)
	assert.Equal(t, 7, res.RemainingCredits)
}

func TestToolsInsufficientCredits(t *testing.T) {
	edit := workingEditProvider()
	factory, _, svc := newToolsFixture(edit)
	userId := seedAccount(factory, 2, false)

	_, err := svc.StyleTransfer(context.Background(), userId, &dto.StyleTransferRequest{
		Image: encodedImage(),
		Style: "van gogh",
	})

	var ice *InsufficientCreditsError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, 3, ice.Required)
	assert.Equal(t, 2, ice.Available)
	assert.Zero(t, edit.calls)
}

func TestToolsRefundOnFailure(t *testing.T) {
	edit := &stubEditProvider{name: "huggingface", fn: func() ([]byte, error) {
		return nil, errors.New("model loading")
	}}
	factory, credits, svc := newToolsFixture(edit)
	userId := seedAccount(factory, 10, false)

	_, err := svc.RemoveBackground(context.Background(), userId, &dto.RemoveBackgroundRequest{Image: encodedImage()})

	var gfe *GenerationFailedError
	require.ErrorAs(t, err, &gfe)
	assert.True(t, gfe.Refunded)

	account, _ := credits.Account(context.Background(), userId)
	assert.Equal(t, 10, account.Balance)

	refunds := factory.uow.credits.transactionsOf(entity.TransactionTypeRefund)
	assert.Len(t, refunds, 1)
}

func TestToolsUnlimitedAccountNotCharged(t *testing.T) {
	factory, _, svc := newToolsFixture(workingEditProvider())
	userId := seedAccount(factory, 0, true)

	res, err := svc.RemoveBackground(context.Background(), userId, &dto.RemoveBackgroundRequest{Image: encodedImage()})
	require.NoError(t, err)
	assert.Equal(t, 0, res.CreditsUsed)
	assert.Empty(t, factory.uow.credits.txs)
}

func TestDecodeImageDataURL(t *testing.T) {
	raw := base64.StdEncoding.EncodeToString([]byte("payload"))

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"data url", "data:image/png;base64," + raw, false},
		{"bare base64", raw, false},
		{"empty", "", true},
		{"data url without base64 marker", "data:image/png," + raw, true},
		{"invalid base64", "data:image/png;base64,!!!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := decodeImageDataURL(tt.input)
			if tt.wantErr {
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []byte("payload"), data)
		})
	}
}
