package transition

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgelinemoto/dealerops-backend/internal/orders"
	"github.com/ridgelinemoto/dealerops-backend/internal/progress"
	"github.com/ridgelinemoto/dealerops-backend/internal/stock"
	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service validates and persists progress transitions. Every write is a
// ledger replace: delete the key's record(s), insert fresh ones. Fields the
// caller does not re-supply are dropped, which the board flows depend on.
type Service interface {
	ApplyTransition(ctx context.Context, input ApplyInput) (*ApplyResult, error)
}

// ApplyInput identifies the targeted item and carries transition-specific
// extras. CurrentStatus comes from the caller's reconciled view; an empty
// value means the implicit default To Pick.
type ApplyInput struct {
	OrderExternalID   string
	SKU               string
	LineQuantity      int
	CurrentStatus     enums.ProgressStatus
	Target            enums.ProgressStatus
	Notes             *string
	DealerPONumber    *string
	PartialQuantity   *int
	MatchedPartNumber *string
	ConfirmShortStock bool
	ConfirmCascade    bool
}

// ApplyResult reports what a transition wrote.
type ApplyResult struct {
	Status         enums.ProgressStatus `json:"status"`
	RecordsWritten int                  `json:"records_written"`
	Cascaded       bool                 `json:"cascaded"`
}

type service struct {
	progress progress.Repository
	stock    stock.Repository
	orders   orders.Repository
	tx       txRunner
	metrics  *metrics.FulfillmentMetrics
}

// NewService builds a transition service with the required dependencies.
func NewService(progressRepo progress.Repository, stockRepo stock.Repository, ordersRepo orders.Repository, tx txRunner, m *metrics.FulfillmentMetrics) (Service, error) {
	if progressRepo == nil {
		return nil, fmt.Errorf("progress repository required")
	}
	if stockRepo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		progress: progressRepo,
		stock:    stockRepo,
		orders:   ordersRepo,
		tx:       tx,
		metrics:  m,
	}, nil
}

func (s *service) ApplyTransition(ctx context.Context, input ApplyInput) (*ApplyResult, error) {
	result, err := s.apply(ctx, input)
	s.metrics.IncTransition(input.Target.String(), outcomeLabel(result, err))
	return result, err
}

func (s *service) apply(ctx context.Context, input ApplyInput) (*ApplyResult, error) {
	if input.OrderExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order external id required")
	}
	if !input.Target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown target status")
	}
	if input.Target != enums.ProgressStatusToDispatch && input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}

	current := input.CurrentStatus
	if current == "" {
		ledgerStatus, err := s.currentFromLedger(ctx, input)
		if err != nil {
			return nil, err
		}
		current = ledgerStatus
	}
	if current.Equals(input.Target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item already in requested status").
			WithDetails(map[string]any{"status": input.Target})
	}

	switch input.Target {
	case enums.ProgressStatusPicked:
		return s.applyPicked(ctx, input)
	case enums.ProgressStatusToOrder:
		return s.applyToOrder(ctx, input)
	case enums.ProgressStatusOrdered:
		return s.applyOrdered(ctx, input)
	case enums.ProgressStatusToDispatch:
		return s.applyDispatchCascade(ctx, input)
	default:
		// To Pick, Picking and Fulfilled are plain status moves carrying
		// only the fields the caller re-supplies.
		return s.replaceSingle(ctx, input, models.ProgressRecord{
			OrderExternalID:    input.OrderExternalID,
			SKU:                input.SKU,
			Status:             input.Target,
			Notes:              input.Notes,
			QuantityRequired:   input.LineQuantity,
			PinnaclePartNumber: input.MatchedPartNumber,
		})
	}
}

func (s *service) applyPicked(ctx context.Context, input ApplyInput) (*ApplyResult, error) {
	if input.LineQuantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
	}
	if err := s.checkStock(ctx, input, input.LineQuantity); err != nil {
		return nil, err
	}
	return s.replaceSingle(ctx, input, models.ProgressRecord{
		OrderExternalID:    input.OrderExternalID,
		SKU:                input.SKU,
		Status:             enums.ProgressStatusPicked,
		Notes:              input.Notes,
		QuantityRequired:   input.LineQuantity,
		QuantityPicked:     input.LineQuantity,
		IsPartial:          false,
		PinnaclePartNumber: input.MatchedPartNumber,
	})
}

func (s *service) applyToOrder(ctx context.Context, input ApplyInput) (*ApplyResult, error) {
	record := models.ProgressRecord{
		OrderExternalID:    input.OrderExternalID,
		SKU:                input.SKU,
		Status:             enums.ProgressStatusToOrder,
		Notes:              input.Notes,
		QuantityRequired:   input.LineQuantity,
		PinnaclePartNumber: input.MatchedPartNumber,
	}

	if input.PartialQuantity != nil {
		partial := *input.PartialQuantity
		if partial < 1 || partial > input.LineQuantity-1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "partial quantity out of range").
				WithDetails(map[string]any{"min": 1, "max": input.LineQuantity - 1})
		}
		if err := s.checkStock(ctx, input, partial); err != nil {
			return nil, err
		}
		// one row holds the split: the picked portion plus the remainder
		// marked for ordering
		record.QuantityPicked = partial
		record.IsPartial = true
	}

	return s.replaceSingle(ctx, input, record)
}

func (s *service) applyOrdered(ctx context.Context, input ApplyInput) (*ApplyResult, error) {
	if input.DealerPONumber == nil || strings.TrimSpace(*input.DealerPONumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "dealer PO number required to mark as Ordered")
	}
	return s.replaceSingle(ctx, input, models.ProgressRecord{
		OrderExternalID:    input.OrderExternalID,
		SKU:                input.SKU,
		Status:             enums.ProgressStatusOrdered,
		Notes:              input.Notes,
		QuantityRequired:   input.LineQuantity,
		DealerPONumber:     input.DealerPONumber,
		PinnaclePartNumber: input.MatchedPartNumber,
	})
}

// applyDispatchCascade fans out over the entire order: every line item gets a
// fresh To Dispatch record and any prior per-item state is wiped. The whole
// fan-out runs in one transaction so a mid-sequence failure rolls back
// instead of leaving a half-dispatched order.
func (s *service) applyDispatchCascade(ctx context.Context, input ApplyInput) (*ApplyResult, error) {
	if !input.ConfirmCascade {
		return nil, pkgerrors.New(pkgerrors.CodeConfirmationRequired, "dispatching replaces the status of every item in the order").
			WithDetails(map[string]any{"confirm_field": "confirm_cascade"})
	}

	order, err := s.orders.FindOrderByExternalID(ctx, input.OrderExternalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	lineItems, err := s.orders.ListLineItemsByOrderIDs(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order line items")
	}
	if len(lineItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order has no line items to dispatch")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.progress.WithTx(tx)
		if err := repo.DeleteByOrder(ctx, input.OrderExternalID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear order ledger")
		}
		for _, line := range lineItems {
			sku := ""
			if line.SKU != nil {
				sku = *line.SKU
			}
			record := models.ProgressRecord{
				OrderExternalID:  input.OrderExternalID,
				SKU:              sku,
				Status:           enums.ProgressStatusToDispatch,
				QuantityRequired: line.Quantity,
			}
			if err := repo.Insert(ctx, &record); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert dispatch record")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ApplyResult{
		Status:         enums.ProgressStatusToDispatch,
		RecordsWritten: len(lineItems),
		Cascaded:       true,
	}, nil
}

// replaceSingle performs the ledger replace for one key: delete strictly
// before insert, both inside one transaction.
func (s *service) replaceSingle(ctx context.Context, input ApplyInput, record models.ProgressRecord) (*ApplyResult, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.progress.WithTx(tx)
		if err := repo.DeleteByKey(ctx, input.OrderExternalID, input.SKU); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete prior ledger record")
		}
		if err := repo.Insert(ctx, &record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert ledger record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ApplyResult{Status: record.Status, RecordsWritten: 1}, nil
}

// currentFromLedger resolves the item's status when the caller omits it, so
// the no-op guard holds against the ledger instead of trusting the request.
// Last record in wins for a duplicated key, matching reconciliation.
func (s *service) currentFromLedger(ctx context.Context, input ApplyInput) (enums.ProgressStatus, error) {
	records, err := s.progress.ListByOrderExternalIDs(ctx, []string{input.OrderExternalID})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ledger for status check")
	}
	current := enums.ProgressStatusToPick
	for _, record := range records {
		if record.SKU == input.SKU {
			current = record.Status
		}
	}
	return current, nil
}

// checkStock enforces the soft warning: insufficient stock never blocks, but
// the caller must confirm before the write proceeds.
func (s *service) checkStock(ctx context.Context, input ApplyInput, requested int) error {
	if input.ConfirmShortStock {
		return nil
	}

	partNumber := input.SKU
	if input.MatchedPartNumber != nil && *input.MatchedPartNumber != "" {
		partNumber = *input.MatchedPartNumber
	}

	onHand := 0
	record, err := s.stock.FindByPartNumber(ctx, partNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check stock")
	}
	if record != nil {
		onHand = record.QtyOnHand
	}

	if onHand < requested {
		return pkgerrors.New(pkgerrors.CodeConfirmationRequired, "stock below requested quantity").
			WithDetails(map[string]any{
				"part_number":   partNumber,
				"on_hand":       onHand,
				"requested":     requested,
				"confirm_field": "confirm_short_stock",
			})
	}
	return nil
}

func outcomeLabel(result *ApplyResult, err error) string {
	if err == nil {
		if result != nil && result.Cascaded {
			return "cascaded"
		}
		return "applied"
	}
	if typed := pkgerrors.As(err); typed != nil {
		switch typed.Code() {
		case pkgerrors.CodeStateConflict:
			return "noop"
		case pkgerrors.CodeValidation, pkgerrors.CodeConfirmationRequired:
			return "rejected"
		}
	}
	return "error"
}
