package contract

import (
	"context"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/repository/specification"
)

type BillingRepository interface {
	FindPackages(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPackage, error)
	FindPackage(ctx context.Context, specs ...specification.Specification) (*entity.CreditPackage, error)

	CreatePurchase(ctx context.Context, purchase *entity.Purchase) error
	UpdatePurchase(ctx context.Context, purchase *entity.Purchase) error
	FindPurchase(ctx context.Context, specs ...specification.Specification) (*entity.Purchase, error)
	FindPurchases(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error)
}
