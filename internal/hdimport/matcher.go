package hdimport

import (
	"github.com/ridgelinemoto/dealerops-backend/pkg/db/models"
)

// exclusionMatcher answers whether a parsed line was previously checked in.
// Two lookup shapes exist side by side: exact line numbers, and the order
// number + part number concatenation for records carrying no line number.
type exclusionMatcher struct {
	orderNumber string
	lineNumbers map[int]struct{}
	partKeys    map[string]struct{}
}

func newExclusionMatcher(orderNumber string, records []models.ExclusionRecord) *exclusionMatcher {
	m := &exclusionMatcher{
		orderNumber: orderNumber,
		lineNumbers: make(map[int]struct{}, len(records)),
		partKeys:    make(map[string]struct{}, len(records)),
	}
	for _, record := range records {
		if record.LineNumber != nil {
			m.lineNumbers[*record.LineNumber] = struct{}{}
		}
		if record.PartNumber != nil && *record.PartNumber != "" {
			m.partKeys[record.OrderNumber+*record.PartNumber] = struct{}{}
		}
	}
	return m
}

func (m *exclusionMatcher) excluded(line ParsedLine) bool {
	if line.LineNumber != nil {
		if _, ok := m.lineNumbers[*line.LineNumber]; ok {
			return true
		}
	}
	_, ok := m.partKeys[m.orderNumber+line.PartNumber]
	return ok
}
