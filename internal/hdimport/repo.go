package hdimport

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
)

// Repository stores HD order lines and the exclusion ledger. Line storage is
// replace-only per order number; exclusions are append and delete, nothing
// updates them in place.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListLinesByOrderNumber(ctx context.Context, orderNumber string) ([]models.HDOrderLineItem, error)
	DeleteLinesByOrderNumber(ctx context.Context, orderNumber string) error
	InsertLines(ctx context.Context, lines []models.HDOrderLineItem) error
	ListExclusionsByOrderNumber(ctx context.Context, orderNumber string) ([]models.ExclusionRecord, error)
	InsertExclusion(ctx context.Context, record *models.ExclusionRecord) error
	DeleteExclusion(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an HD import repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListLinesByOrderNumber(ctx context.Context, orderNumber string) ([]models.HDOrderLineItem, error) {
	var lines []models.HDOrderLineItem
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		Order("line_number ASC").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) DeleteLinesByOrderNumber(ctx context.Context, orderNumber string) error {
	return r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		Delete(&models.HDOrderLineItem{}).Error
}

func (r *repository) InsertLines(ctx context.Context, lines []models.HDOrderLineItem) error {
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) ListExclusionsByOrderNumber(ctx context.Context, orderNumber string) ([]models.ExclusionRecord, error) {
	var records []models.ExclusionRecord
	err := r.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) InsertExclusion(ctx context.Context, record *models.ExclusionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) DeleteExclusion(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ExclusionRecord{}).Error
}
