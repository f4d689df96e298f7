package mapper

import (
	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/model"
)

type BillingMapper struct{}

func NewBillingMapper() *BillingMapper {
	return &BillingMapper{}
}

func (m *BillingMapper) PackageToEntity(p *model.CreditPackage) *entity.CreditPackage {
	if p == nil {
		return nil
	}
	return &entity.CreditPackage{
		Id:            p.Id,
		Name:          p.Name,
		Credits:       p.Credits,
		PriceCents:    p.PriceCents,
		StripePriceId: p.StripePriceId,
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
	}
}

func (m *BillingMapper) PurchaseToEntity(p *model.Purchase) *entity.Purchase {
	if p == nil {
		return nil
	}
	return &entity.Purchase{
		Id:              p.Id,
		UserId:          p.UserId,
		PackageId:       p.PackageId,
		StripeSessionId: p.StripeSessionId,
		Status:          entity.PurchaseStatus(p.Status),
		AmountCents:     p.AmountCents,
		Credits:         p.Credits,
		CompletedAt:     p.CompletedAt,
		CreatedAt:       p.CreatedAt,
	}
}

func (m *BillingMapper) PurchaseToModel(p *entity.Purchase) *model.Purchase {
	if p == nil {
		return nil
	}
	return &model.Purchase{
		Id:              p.Id,
		UserId:          p.UserId,
		PackageId:       p.PackageId,
		StripeSessionId: p.StripeSessionId,
		Status:          string(p.Status),
		AmountCents:     p.AmountCents,
		Credits:         p.Credits,
		CompletedAt:     p.CompletedAt,
		CreatedAt:       p.CreatedAt,
	}
}
