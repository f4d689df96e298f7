package mapper

import (
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/model"
)

type CreditMapper struct{}

func NewCreditMapper() *CreditMapper {
	return &CreditMapper{}
}

func (m *CreditMapper) TransactionToEntity(t *model.CreditTransaction) *entity.CreditTransaction {
	if t == nil {
		return nil
	}
	return &entity.CreditTransaction{
		Id:           t.Id,
		UserId:       t.UserId,
		Type:         entity.TransactionType(t.Type),
		Amount:       t.Amount,
		Description:  t.Description,
		GenerationId: t.GenerationId,
		CreatedAt:    t.CreatedAt,
	}
}

func (m *CreditMapper) TransactionToModel(t *entity.CreditTransaction) *model.CreditTransaction {
	if t == nil {
		return nil
	}
	return &model.CreditTransaction{
		Id:           t.Id,
		UserId:       t.UserId,
		Type:         string(t.Type),
		Amount:       t.Amount,
		Description:  t.Description,
		GenerationId: t.GenerationId,
		CreatedAt:    t.CreatedAt,
	}
}
