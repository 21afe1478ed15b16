package reconcile

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
)

// FulfillmentItem is the merged view of one order line item: identity from
// the line item, stock from Pinnacle, progress from the ledger. It is derived
// on every pass and never persisted.
type FulfillmentItem struct {
	LineItemID         uuid.UUID       `json:"line_item_id"`
	OrderID            uuid.UUID       `json:"order_id"`
	OrderExternalID    string          `json:"order_external_id"`
	OrderNumber        string          `json:"order_number"`
	CustomerName       *string         `json:"customer_name,omitempty"`
	LineItemExternalID string          `json:"line_item_external_id"`
	SKU                *string         `json:"sku,omitempty"`
	Title              string          `json:"title"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`

	InStock     bool             `json:"in_stock"`
	QtyOnHand   *int             `json:"qty_on_hand,omitempty"`
	BinLocation *string          `json:"bin_location,omitempty"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`

	Status             enums.ProgressStatus `json:"status"`
	Notes              *string              `json:"notes,omitempty"`
	QuantityRequired   int                  `json:"quantity_required"`
	QuantityPicked     int                  `json:"quantity_picked"`
	IsPartial          bool                 `json:"is_partial"`
	DealerPONumber     *string              `json:"dealer_po_number,omitempty"`
	PinnaclePartNumber *string              `json:"pinnacle_part_number,omitempty"`

	// HasProgress reports whether a ledger record exists for this item.
	// Filtering mode drops items where it is true.
	HasProgress bool `json:"has_progress"`
}

// OrderGroup is one order with the fulfillment items that survived a pass.
type OrderGroup struct {
	Order models.Order      `json:"order"`
	Items []FulfillmentItem `json:"items"`
}

// Board is the full-mode output grouped into status columns for the kanban
// view. Columns holds canonical status serializations in workflow order.
type Board struct {
	Columns []BoardColumn `json:"columns"`
	Total   int           `json:"total"`
}

type BoardColumn struct {
	Status enums.ProgressStatus `json:"status"`
	Items  []FulfillmentItem    `json:"items"`
}
