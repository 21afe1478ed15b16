package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgelinemoto/dealerops-backend/pkg/enums"
)

// ExclusionRecord marks an HD order line as permanently skipped during
// re-import. Matching is by line number when present, otherwise by the
// order number + part number concatenation. Staff create and delete these;
// nothing expires them.
type ExclusionRecord struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber string                `gorm:"column:order_number;not null;index" json:"order_number"`
	LineNumber  *int                  `gorm:"column:line_number" json:"line_number,omitempty"`
	PartNumber  *string               `gorm:"column:part_number" json:"part_number,omitempty"`
	Reason      enums.ExclusionReason `gorm:"column:reason;not null" json:"reason"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ExclusionRecord) TableName() string {
	return "hd_exclusions"
}
