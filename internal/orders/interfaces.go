package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
)

// Repository defines the read surface over ingested orders and line items.
// Ingestion owns the writes; the fulfillment core never mutates these tables.
type Repository interface {
	ListOrdersByStatus(ctx context.Context, status enums.OrderFulfillmentStatus) ([]models.Order, error)
	ListLineItemsByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) ([]models.OrderLineItem, error)
	FindOrderByExternalID(ctx context.Context, externalID string) (*models.Order, error)
}
