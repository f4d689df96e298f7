package unitofwork

import "context"

// RepositoryFactory hands out transaction-scoped units of work.
// Services hold the factory, never a bare *gorm.DB.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
