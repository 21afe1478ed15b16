package hdimport

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
	pkgerrors "github.com/ridgelinemoto/dealerops-backend/pkg/errors"
	"github.com/ridgelinemoto/dealerops-backend/pkg/logger"
	"github.com/ridgelinemoto/dealerops-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service ingests HD order line uploads and manages the exclusion ledger.
type Service interface {
	ImportUpload(ctx context.Context, orderNumber string, r io.Reader) (*OrderResult, error)
	ImportBatch(ctx context.Context, batch []OrderLines) (*BatchResult, error)
	ListExclusions(ctx context.Context, orderNumber string) ([]models.ExclusionRecord, error)
	AddExclusion(ctx context.Context, input ExclusionInput) (*models.ExclusionRecord, error)
	RemoveExclusion(ctx context.Context, id uuid.UUID) error
}

// OrderLines is one HD order's parsed lines inside a batch ingestion call.
type OrderLines struct {
	OrderNumber string       `json:"order_number" validate:"required"`
	Lines       []ParsedLine `json:"lines" validate:"required,dive"`
}

// OrderResult reports one order's ingestion outcome.
type OrderResult struct {
	OrderNumber string `json:"order_number"`
	Stored      int    `json:"stored"`
	Excluded    int    `json:"excluded"`
}

// BatchResult aggregates a multi-order ingestion. Processed counts orders
// attempted, Replaced counts orders whose stored set was rewritten, Errors
// counts orders that failed and were skipped over.
type BatchResult struct {
	Processed int           `json:"processed"`
	Replaced  int           `json:"replaced"`
	Errors    int           `json:"errors"`
	Stored    int           `json:"stored"`
	Excluded  int           `json:"excluded"`
	Orders    []OrderResult `json:"orders"`
}

// ExclusionInput creates one exclusion ledger entry. At least one of
// LineNumber and PartNumber must be set for the record to ever match.
type ExclusionInput struct {
	OrderNumber string                `json:"order_number" validate:"required"`
	LineNumber  *int                  `json:"line_number,omitempty" validate:"omitempty,min=1"`
	PartNumber  *string               `json:"part_number,omitempty"`
	Reason      enums.ExclusionReason `json:"reason" validate:"required"`
}

type service struct {
	repo    Repository
	tx      txRunner
	logg    *logger.Logger
	metrics *metrics.FulfillmentMetrics
}

// NewService builds an HD import service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger, m *metrics.FulfillmentMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("hd import repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg, metrics: m}, nil
}

func (s *service) ImportUpload(ctx context.Context, orderNumber string, r io.Reader) (*OrderResult, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hd order number required")
	}

	lines, err := ParseUpload(r)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no usable lines in upload")
	}

	return s.replaceOrder(ctx, orderNumber, lines)
}

// ImportBatch processes each order independently: one order's failure is
// counted and logged, and the batch moves on to the next order number.
func (s *service) ImportBatch(ctx context.Context, batch []OrderLines) (*BatchResult, error) {
	if len(batch) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "batch is empty")
	}

	result := &BatchResult{}
	var errs error
	for _, order := range batch {
		result.Processed++
		orderResult, err := s.replaceOrder(ctx, strings.TrimSpace(order.OrderNumber), order.Lines)
		if err != nil {
			result.Errors++
			errs = multierr.Append(errs, fmt.Errorf("order %s: %w", order.OrderNumber, err))
			s.logg.Error(s.logg.WithHDOrderNumber(ctx, order.OrderNumber), "hd order ingestion failed", err)
			continue
		}
		result.Replaced++
		result.Stored += orderResult.Stored
		result.Excluded += orderResult.Excluded
		result.Orders = append(result.Orders, *orderResult)
	}

	if result.Replaced == 0 {
		// nothing succeeded, surface the collected failures to the caller
		return result, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "every order in the batch failed")
	}
	return result, nil
}

// replaceOrder applies the exclusion matcher and rewrites the order's stored
// line set. Delete and insert share one transaction scoped to this order
// number only.
func (s *service) replaceOrder(ctx context.Context, orderNumber string, lines []ParsedLine) (*OrderResult, error) {
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hd order number required")
	}

	exclusions, err := s.repo.ListExclusionsByOrderNumber(ctx, orderNumber)
	if err != nil {
		s.metrics.AddHDLines("error", len(lines))
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list exclusions")
	}

	matcher := newExclusionMatcher(orderNumber, exclusions)
	kept := make([]models.HDOrderLineItem, 0, len(lines))
	excluded := 0
	for _, line := range lines {
		if matcher.excluded(line) {
			excluded++
			continue
		}
		kept = append(kept, models.HDOrderLineItem{
			OrderNumber: orderNumber,
			LineNumber:  line.LineNumber,
			PartNumber:  line.PartNumber,
			Description: line.Description,
			Quantity:    line.Quantity,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteLinesByOrderNumber(ctx, orderNumber); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear stored lines")
		}
		if err := repo.InsertLines(ctx, kept); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert lines")
		}
		return nil
	})
	if err != nil {
		s.metrics.AddHDLines("error", len(lines))
		return nil, err
	}

	s.metrics.AddHDLines("stored", len(kept))
	s.metrics.AddHDLines("excluded", excluded)
	return &OrderResult{OrderNumber: orderNumber, Stored: len(kept), Excluded: excluded}, nil
}

func (s *service) ListExclusions(ctx context.Context, orderNumber string) ([]models.ExclusionRecord, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hd order number required")
	}
	records, err := s.repo.ListExclusionsByOrderNumber(ctx, strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list exclusions")
	}
	return records, nil
}

func (s *service) AddExclusion(ctx context.Context, input ExclusionInput) (*models.ExclusionRecord, error) {
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	if input.OrderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hd order number required")
	}
	if !input.Reason.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown exclusion reason")
	}
	if input.LineNumber == nil && (input.PartNumber == nil || strings.TrimSpace(*input.PartNumber) == "") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line number or part number required")
	}

	record := models.ExclusionRecord{
		OrderNumber: input.OrderNumber,
		LineNumber:  input.LineNumber,
		PartNumber:  input.PartNumber,
		Reason:      input.Reason,
	}
	if err := s.repo.InsertExclusion(ctx, &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert exclusion")
	}
	return &record, nil
}

func (s *service) RemoveExclusion(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "exclusion id required")
	}
	if err := s.repo.DeleteExclusion(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete exclusion")
	}
	return nil
}
