package stock

import (
	"context"

	"gorm.io/gorm"

	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
)

// Repository is the read-only lookup over Pinnacle stock. Matching is by
// exact part number; fuzzy search lives in the manual lookup UI, not here.
type Repository interface {
	GetStock(ctx context.Context, partNumbers []string) ([]models.StockRecord, error)
	FindByPartNumber(ctx context.Context, partNumber string) (*models.StockRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a stock repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetStock(ctx context.Context, partNumbers []string) ([]models.StockRecord, error) {
	if len(partNumbers) == 0 {
		return nil, nil
	}
	var records []models.StockRecord
	err := r.db.WithContext(ctx).
		Where("part_number IN ?", partNumbers).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) FindByPartNumber(ctx context.Context, partNumber string) (*models.StockRecord, error) {
	var record models.StockRecord
	err := r.db.WithContext(ctx).
		Where("part_number = ?", partNumber).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
