package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
)

// Order is a storefront purchase imported by the ingestion pipeline.
// The fulfillment core reads orders and never mutates them.
type Order struct {
	ID                uuid.UUID                    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExternalID        string                       `gorm:"column:external_id;not null;uniqueIndex" json:"external_id"`
	OrderNumber       string                       `gorm:"column:order_number;not null" json:"order_number"`
	CustomerName      *string                      `gorm:"column:customer_name" json:"customer_name,omitempty"`
	CustomerEmail     *string                      `gorm:"column:customer_email" json:"customer_email,omitempty"`
	FulfillmentStatus enums.OrderFulfillmentStatus `gorm:"column:fulfillment_status;not null;default:'unfulfilled'" json:"fulfillment_status"`
	PlacedAt          time.Time                    `gorm:"column:placed_at;not null" json:"placed_at"`
	CreatedAt         time.Time                    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time                    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	LineItems []OrderLineItem `gorm:"foreignKey:OrderID" json:"line_items,omitempty"`
}
