package implementation

import (
	"context"
	"errors"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/mapper"
	"pixfusion-be/internal/model"
	"pixfusion-be/internal/repository/contract"
	"pixfusion-be/internal/repository/specification"

	"gorm.io/gorm"
)

type BillingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BillingMapper
}

func NewBillingRepository(db *gorm.DB) contract.BillingRepository {
	return &BillingRepositoryImpl{
		db:     db,
		mapper: mapper.NewBillingMapper(),
	}
}

func (r *BillingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BillingRepositoryImpl) FindPackages(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditPackage, error) {
	var modelPackages []*model.CreditPackage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelPackages).Error; err != nil {
		return nil, err
	}

	packages := make([]*entity.CreditPackage, 0, len(modelPackages))
	for _, mp := range modelPackages {
		packages = append(packages, r.mapper.PackageToEntity(mp))
	}
	return packages, nil
}

func (r *BillingRepositoryImpl) FindPackage(ctx context.Context, specs ...specification.Specification) (*entity.CreditPackage, error) {
	var modelPackage model.CreditPackage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelPackage).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PackageToEntity(&modelPackage), nil
}

func (r *BillingRepositoryImpl) CreatePurchase(ctx context.Context, purchase *entity.Purchase) error {
	modelPurchase := r.mapper.PurchaseToModel(purchase)
	if err := r.db.WithContext(ctx).Create(modelPurchase).Error; err != nil {
		return err
	}
	*purchase = *r.mapper.PurchaseToEntity(modelPurchase)
	return nil
}

func (r *BillingRepositoryImpl) UpdatePurchase(ctx context.Context, purchase *entity.Purchase) error {
	modelPurchase := r.mapper.PurchaseToModel(purchase)
	if err := r.db.WithContext(ctx).Save(modelPurchase).Error; err != nil {
		return err
	}
	*purchase = *r.mapper.PurchaseToEntity(modelPurchase)
	return nil
}

func (r *BillingRepositoryImpl) FindPurchase(ctx context.Context, specs ...specification.Specification) (*entity.Purchase, error) {
	var modelPurchase model.Purchase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelPurchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PurchaseToEntity(&modelPurchase), nil
}

func (r *BillingRepositoryImpl) FindPurchases(ctx context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	var modelPurchases []*model.Purchase
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelPurchases).Error; err != nil {
		return nil, err
	}

	purchases := make([]*entity.Purchase, 0, len(modelPurchases))
	for _, mp := range modelPurchases {
		purchases = append(purchases, r.mapper.PurchaseToEntity(mp))
	}
	return purchases, nil
}
