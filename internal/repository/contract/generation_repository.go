package contract

import (
	"context"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/repository/specification"

	"github.com/google/uuid"
)

type GenerationRepository interface {
	Create(ctx context.Context, gen *entity.Generation) error
	Update(ctx context.Context, gen *entity.Generation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Generation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Generation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Delete removes a generation scoped to its owner. It never touches the
	// ledger.
	Delete(ctx context.Context, id, userId uuid.UUID) error
}
