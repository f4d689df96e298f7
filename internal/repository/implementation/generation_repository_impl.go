package implementation

import (
	"context"
	"errors"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/mapper"
	"pixfusion-be/internal/model"
	"pixfusion-be/internal/repository/contract"
	"pixfusion-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GenerationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationMapper
}

func NewGenerationRepository(db *gorm.DB) contract.GenerationRepository {
	return &GenerationRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationMapper(),
	}
}

func (r *GenerationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationRepositoryImpl) Create(ctx context.Context, gen *entity.Generation) error {
	modelGen := r.mapper.ToModel(gen)
	if err := r.db.WithContext(ctx).Create(modelGen).Error; err != nil {
		return err
	}
	*gen = *r.mapper.ToEntity(modelGen)
	return nil
}

func (r *GenerationRepositoryImpl) Update(ctx context.Context, gen *entity.Generation) error {
	modelGen := r.mapper.ToModel(gen)
	if err := r.db.WithContext(ctx).Save(modelGen).Error; err != nil {
		return err
	}
	*gen = *r.mapper.ToEntity(modelGen)
	return nil
}

func (r *GenerationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Generation, error) {
	var modelGen model.Generation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelGen).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&modelGen), nil
}

func (r *GenerationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Generation, error) {
	var modelGens []*model.Generation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelGens).Error; err != nil {
		return nil, err
	}

	gens := make([]*entity.Generation, 0, len(modelGens))
	for _, mg := range modelGens {
		gens = append(gens, r.mapper.ToEntity(mg))
	}
	return gens, nil
}

func (r *GenerationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Generation{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GenerationRepositoryImpl) Delete(ctx context.Context, id, userId uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userId).
		Delete(&model.Generation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
