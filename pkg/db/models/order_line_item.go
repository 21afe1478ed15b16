package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem is one SKU within an imported order. The SKU is nullable:
// custom storefront products carry none and still flow through fulfillment.
// Ingestion refreshes these rows wholesale; the core treats them as immutable.
type OrderLineItem struct {
	ID                    uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID               uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ExternalID            string          `gorm:"column:external_id;not null" json:"external_id"`
	SKU                   *string         `gorm:"column:sku" json:"sku,omitempty"`
	Title                 string          `gorm:"column:title;not null" json:"title"`
	Quantity              int             `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice             decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null" json:"unit_price"`
	FulfillmentLocationID *string         `gorm:"column:fulfillment_location_id" json:"fulfillment_location_id,omitempty"`
	CreatedAt             time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
