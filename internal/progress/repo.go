package progress

import (
	"context"

	"gorm.io/gorm"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
)

// Repository manages the fulfillment progress ledger. All writes go through
// the delete-then-insert replace pattern; there is no update operation on
// purpose. WithTx lets the transition engine order the delete strictly
// before the insert inside one transaction.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	DeleteByKey(ctx context.Context, orderExternalID, sku string) error
	DeleteByOrder(ctx context.Context, orderExternalID string) error
	Insert(ctx context.Context, record *models.ProgressRecord) error
	ListByOrderExternalIDs(ctx context.Context, orderExternalIDs []string) ([]models.ProgressRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a progress ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) DeleteByKey(ctx context.Context, orderExternalID, sku string) error {
	return r.db.WithContext(ctx).
		Where("order_external_id = ? AND sku = ?", orderExternalID, sku).
		Delete(&models.ProgressRecord{}).Error
}

func (r *repository) DeleteByOrder(ctx context.Context, orderExternalID string) error {
	return r.db.WithContext(ctx).
		Where("order_external_id = ?", orderExternalID).
		Delete(&models.ProgressRecord{}).Error
}

func (r *repository) Insert(ctx context.Context, record *models.ProgressRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) ListByOrderExternalIDs(ctx context.Context, orderExternalIDs []string) ([]models.ProgressRecord, error) {
	if len(orderExternalIDs) == 0 {
		return nil, nil
	}
	var records []models.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("order_external_id IN ?", orderExternalIDs).
		Order("updated_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
