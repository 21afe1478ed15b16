package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ridgelinemoto/dealerops-backend/internal/orders"
	"github.com/ridgelinemoto/dealerops-backend/internal/progress"
	"github.com/ridgelinemoto/dealerops-backend/internal/stock"
	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/metrics"
)

// Service produces the authoritative fulfillment view over unfulfilled
// orders. Both consumers disagree on filtering: the picking screen wants only
// untouched items, the board wants everything. Both modes stay separate.
type Service interface {
	Board(ctx context.Context) (*Board, error)
	Picklist(ctx context.Context) ([]OrderGroup, error)
}

type service struct {
	orders   orders.Repository
	stock    stock.Repository
	progress progress.Repository
	metrics  *metrics.FulfillmentMetrics
}

// NewService builds a reconciliation service with the required dependencies.
func NewService(ordersRepo orders.Repository, stockRepo stock.Repository, progressRepo progress.Repository, m *metrics.FulfillmentMetrics) (Service, error) {
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if stockRepo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if progressRepo == nil {
		return nil, fmt.Errorf("progress repository required")
	}
	return &service{
		orders:   ordersRepo,
		stock:    stockRepo,
		progress: progressRepo,
		metrics:  m,
	}, nil
}

func (s *service) Board(ctx context.Context) (*Board, error) {
	start := time.Now()
	items, _, err := s.reconcile(ctx)
	if err != nil {
		return nil, err
	}
	board := groupByStatus(items)
	s.metrics.ObserveReconcile("full", time.Since(start))
	return &board, nil
}

func (s *service) Picklist(ctx context.Context) ([]OrderGroup, error) {
	start := time.Now()
	items, orderList, err := s.reconcile(ctx)
	if err != nil {
		return nil, err
	}
	groups := groupByOrder(orderList, filterUnprogressed(items))
	s.metrics.ObserveReconcile("filtering", time.Since(start))
	return groups, nil
}

// reconcile runs the shared merge: any read failure fails the whole pass,
// no partial item list is ever returned.
func (s *service) reconcile(ctx context.Context) ([]FulfillmentItem, []models.Order, error) {
	orderList, err := s.orders.ListOrdersByStatus(ctx, enums.OrderFulfillmentStatusUnfulfilled)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list unfulfilled orders")
	}
	if len(orderList) == 0 {
		return nil, nil, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(orderList))
	orderExternalIDs := make([]string, 0, len(orderList))
	for _, order := range orderList {
		orderIDs = append(orderIDs, order.ID)
		orderExternalIDs = append(orderExternalIDs, order.ExternalID)
	}

	lineItems, err := s.orders.ListLineItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order line items")
	}

	progressRecords, err := s.progress.ListByOrderExternalIDs(ctx, orderExternalIDs)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list progress records")
	}

	stockRecords, err := s.stock.GetStock(ctx, collectPartNumbers(lineItems, progressRecords))
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch stock records")
	}

	return mergeItems(orderList, lineItems, stockRecords, progressRecords), orderList, nil
}

// collectPartNumbers gathers every part number the merge may look up: line
// SKUs plus any staff-matched Pinnacle overrides sitting in the ledger.
func collectPartNumbers(lineItems []models.OrderLineItem, progressRecords []models.ProgressRecord) []string {
	seen := make(map[string]struct{}, len(lineItems))
	parts := make([]string, 0, len(lineItems))
	add := func(part string) {
		if part == "" {
			return
		}
		if _, ok := seen[part]; ok {
			return
		}
		seen[part] = struct{}{}
		parts = append(parts, part)
	}
	for _, line := range lineItems {
		if line.SKU != nil {
			add(*line.SKU)
		}
	}
	for _, record := range progressRecords {
		if record.PinnaclePartNumber != nil {
			add(*record.PinnaclePartNumber)
		}
	}
	return parts
}
