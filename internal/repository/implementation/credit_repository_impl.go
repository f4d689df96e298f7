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

type CreditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CreditMapper
}

func NewCreditRepository(db *gorm.DB) contract.CreditRepository {
	return &CreditRepositoryImpl{
		db:     db,
		mapper: mapper.NewCreditMapper(),
	}
}

func (r *CreditRepositoryImpl) FindAccount(ctx context.Context, userId uuid.UUID) (*entity.CreditAccount, error) {
	var modelUser model.User
	if err := r.db.WithContext(ctx).Where("id = ?", userId).First(&modelUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.CreditAccount{
		UserId:  modelUser.Id,
		Balance: modelUser.Credits,
		Admin:   modelUser.Role == string(entity.UserRoleAdmin),
	}, nil
}

// Deduct is a single conditional UPDATE. The WHERE clause re-checks the
// balance inside the statement, so two concurrent deductions for the same
// user can never both succeed when only one is covered.
func (r *CreditRepositoryImpl) Deduct(ctx context.Context, userId uuid.UUID, amount int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND credits >= ?", userId, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *CreditRepositoryImpl) Add(ctx context.Context, userId uuid.UUID, amount int) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userId).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *CreditRepositoryImpl) CreateTransaction(ctx context.Context, tx *entity.CreditTransaction) error {
	modelTx := r.mapper.TransactionToModel(tx)
	if err := r.db.WithContext(ctx).Create(modelTx).Error; err != nil {
		return err
	}
	*tx = *r.mapper.TransactionToEntity(modelTx)
	return nil
}

func (r *CreditRepositoryImpl) FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	var modelTxs []*model.CreditTransaction
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelTxs).Error; err != nil {
		return nil, err
	}

	txs := make([]*entity.CreditTransaction, 0, len(modelTxs))
	for _, mt := range modelTxs {
		txs = append(txs, r.mapper.TransactionToEntity(mt))
	}
	return txs, nil
}

func (r *CreditRepositoryImpl) SumAmountByType(ctx context.Context, txType entity.TransactionType) (int64, error) {
	var total *int64
	err := r.db.WithContext(ctx).Model(&model.CreditTransaction{}).
		Select("SUM(amount)").
		Where("type = ?", string(txType)).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// FindUnrefundedDebits selects generation debits whose generation ended up
// failed and that have no refund row pointing at the same generation.
func (r *CreditRepositoryImpl) FindUnrefundedDebits(ctx context.Context) ([]*entity.CreditTransaction, error) {
	var modelTxs []*model.CreditTransaction
	err := r.db.WithContext(ctx).
		Where("type = ?", string(entity.TransactionTypeGeneration)).
		Where("generation_id IN (?)",
			r.db.Model(&model.Generation{}).Select("id").Where("status = ?", string(entity.GenerationStatusFailed)),
		).
		Where("generation_id NOT IN (?)",
			r.db.Model(&model.CreditTransaction{}).Select("generation_id").
				Where("type = ? AND generation_id IS NOT NULL", string(entity.TransactionTypeRefund)),
		).
		Find(&modelTxs).Error
	if err != nil {
		return nil, err
	}

	txs := make([]*entity.CreditTransaction, 0, len(modelTxs))
	for _, mt := range modelTxs {
		txs = append(txs, r.mapper.TransactionToEntity(mt))
	}
	return txs, nil
}
