package models

import (
	"time"

	"github.com/google/uuid"
)

// HDOrderLineItem is one parsed line of a Harley-Davidson dealer order
// upload. Re-uploading an HD order replaces its stored set wholesale,
// minus lines the exclusion ledger marks as checked in.
type HDOrderLineItem struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber string    `gorm:"column:order_number;not null;index" json:"order_number"`
	LineNumber  *int      `gorm:"column:line_number" json:"line_number,omitempty"`
	PartNumber  string    `gorm:"column:part_number;not null" json:"part_number"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	Quantity    int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (HDOrderLineItem) TableName() string {
	return "hd_order_line_items"
}
