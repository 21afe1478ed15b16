package reconcile

import (
	"github.com/google/uuid"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
)

// ledgerKey builds the composite progress lookup key. The key is shared by
// every line of an order that repeats a SKU; last record in wins when the
// ledger holds duplicates.
func ledgerKey(orderExternalID, sku string) string {
	return orderExternalID + "_" + sku
}

// mergeItems joins line items with stock and progress. Exactly one
// FulfillmentItem comes out per line item; line items whose owning order is
// missing from the input are dropped silently.
func mergeItems(
	orders []models.Order,
	lineItems []models.OrderLineItem,
	stockRecords []models.StockRecord,
	progressRecords []models.ProgressRecord,
) []FulfillmentItem {
	ordersByID := make(map[uuid.UUID]models.Order, len(orders))
	for _, order := range orders {
		ordersByID[order.ID] = order
	}

	stockByPart := make(map[string]models.StockRecord, len(stockRecords))
	for _, record := range stockRecords {
		stockByPart[record.PartNumber] = record
	}

	progressByKey := make(map[string]models.ProgressRecord, len(progressRecords))
	for _, record := range progressRecords {
		progressByKey[record.LedgerKey()] = record
	}

	items := make([]FulfillmentItem, 0, len(lineItems))
	for _, line := range lineItems {
		order, ok := ordersByID[line.OrderID]
		if !ok {
			continue
		}

		item := FulfillmentItem{
			LineItemID:         line.ID,
			OrderID:            order.ID,
			OrderExternalID:    order.ExternalID,
			OrderNumber:        order.OrderNumber,
			CustomerName:       order.CustomerName,
			LineItemExternalID: line.ExternalID,
			SKU:                line.SKU,
			Title:              line.Title,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			Status:             enums.ProgressStatusToPick,
			QuantityRequired:   line.Quantity,
		}

		// a nil SKU lands in the ledger as the empty string, so the lookup
		// must use the same normalization or dispatched nil-SKU lines would
		// never pick up their records
		sku := ""
		if line.SKU != nil {
			sku = *line.SKU
		}
		var progress *models.ProgressRecord
		if record, ok := progressByKey[ledgerKey(order.ExternalID, sku)]; ok {
			progress = &record
		}
		if progress != nil {
			item.HasProgress = true
			item.Status = progress.Status
			item.Notes = progress.Notes
			item.QuantityRequired = progress.QuantityRequired
			item.QuantityPicked = progress.QuantityPicked
			item.IsPartial = progress.IsPartial
			item.DealerPONumber = progress.DealerPONumber
			item.PinnaclePartNumber = progress.PinnaclePartNumber
			if item.QuantityRequired == 0 {
				item.QuantityRequired = line.Quantity
			}
		}

		// a staff-matched Pinnacle part number overrides the SKU for stock lookup
		lookupPart := ""
		if item.PinnaclePartNumber != nil {
			lookupPart = *item.PinnaclePartNumber
		} else if line.SKU != nil {
			lookupPart = *line.SKU
		}
		if lookupPart != "" {
			if record, ok := stockByPart[lookupPart]; ok {
				qty := record.QtyOnHand
				cost := record.UnitCost
				item.InStock = qty > 0
				item.QtyOnHand = &qty
				item.BinLocation = record.BinLocation
				item.UnitCost = &cost
			}
		}

		items = append(items, item)
	}
	return items
}

// filterUnprogressed implements the legacy picklist mode: only items nobody
// has progressed yet survive.
func filterUnprogressed(items []FulfillmentItem) []FulfillmentItem {
	surviving := make([]FulfillmentItem, 0, len(items))
	for _, item := range items {
		if item.HasProgress {
			continue
		}
		surviving = append(surviving, item)
	}
	return surviving
}

// groupByOrder buckets items under their orders, dropping orders with no
// surviving items.
func groupByOrder(orders []models.Order, items []FulfillmentItem) []OrderGroup {
	itemsByOrder := make(map[uuid.UUID][]FulfillmentItem, len(orders))
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	groups := make([]OrderGroup, 0, len(orders))
	for _, order := range orders {
		bucket := itemsByOrder[order.ID]
		if len(bucket) == 0 {
			continue
		}
		order.LineItems = nil
		groups = append(groups, OrderGroup{Order: order, Items: bucket})
	}
	return groups
}

var boardColumnOrder = []enums.ProgressStatus{
	enums.ProgressStatusToPick,
	enums.ProgressStatusPicking,
	enums.ProgressStatusPicked,
	enums.ProgressStatusToOrder,
	enums.ProgressStatusOrdered,
	enums.ProgressStatusToDispatch,
	enums.ProgressStatusFulfilled,
}

// groupByStatus arranges full-mode items into the board's status columns.
// Status matching is case-insensitive to tolerate legacy ledger casing.
func groupByStatus(items []FulfillmentItem) Board {
	board := Board{Total: len(items)}
	for _, status := range boardColumnOrder {
		column := BoardColumn{Status: status, Items: []FulfillmentItem{}}
		for _, item := range items {
			if item.Status.Equals(status) {
				column.Items = append(column.Items, item)
			}
		}
		board.Columns = append(board.Columns, column)
	}
	return board
}
