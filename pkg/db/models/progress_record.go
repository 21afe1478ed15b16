package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
)

// ProgressRecord is the mutable fulfillment ledger entry for one
// (order external id, SKU) key. A status change replaces the row outright:
// delete by key, insert a fresh record. Fields the new record does not carry
// are gone, which several board flows rely on (notes are only preserved when
// re-supplied). The key is not unique when an order repeats a SKU across
// lines at different prices; all such lines share one ledger row.
type ProgressRecord struct {
	ID                 uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderExternalID    string               `gorm:"column:order_external_id;not null;index:idx_progress_key" json:"order_external_id"`
	SKU                string               `gorm:"column:sku;not null;index:idx_progress_key" json:"sku"`
	Status             enums.ProgressStatus `gorm:"column:status;not null" json:"status"`
	Notes              *string              `gorm:"column:notes" json:"notes,omitempty"`
	QuantityRequired   int                  `gorm:"column:quantity_required;not null;default:0" json:"quantity_required"`
	QuantityPicked     int                  `gorm:"column:quantity_picked;not null;default:0" json:"quantity_picked"`
	IsPartial          bool                 `gorm:"column:is_partial;not null;default:false" json:"is_partial"`
	DealerPONumber     *string              `gorm:"column:dealer_po_number" json:"dealer_po_number,omitempty"`
	PinnaclePartNumber *string              `gorm:"column:pinnacle_part_number" json:"pinnacle_part_number,omitempty"`
	CreatedAt          time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// LedgerKey is the composite lookup key used throughout reconciliation.
func (p ProgressRecord) LedgerKey() string {
	return p.OrderExternalID + "_" + p.SKU
}
