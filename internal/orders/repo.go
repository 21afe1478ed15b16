package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListOrdersByStatus(ctx context.Context, status enums.OrderFulfillmentStatus) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("fulfillment_status = ?", status)
	}
	err := q.Order("placed_at ASC").Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListLineItemsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]models.OrderLineItem, error) {
	if len(orderIDs) == 0 {
		return nil, nil
	}
	var items []models.OrderLineItem
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindOrderByExternalID(ctx context.Context, externalID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
