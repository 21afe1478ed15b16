package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord is Pinnacle reference data keyed by part number. An external
// refresh job owns the table; the fulfillment core only reads it.
type StockRecord struct {
	PartNumber  string          `gorm:"column:part_number;primaryKey" json:"part_number"`
	QtyOnHand   int             `gorm:"column:qty_on_hand;not null;default:0" json:"qty_on_hand"`
	BinLocation *string         `gorm:"column:bin_location" json:"bin_location,omitempty"`
	UnitCost    decimal.Decimal `gorm:"column:unit_cost;type:numeric(12,2);not null;default:0" json:"unit_cost"`
	RefreshedAt time.Time       `gorm:"column:refreshed_at;autoUpdateTime" json:"refreshed_at"`
}

// TableName keeps the Pinnacle origin visible in the schema.
func (StockRecord) TableName() string {
	return "pinnacle_stock"
}
