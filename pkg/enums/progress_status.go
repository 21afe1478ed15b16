package enums

import (
	"fmt"
	"strings"
)

// ProgressStatus is the fulfillment stage of one order line item. The ledger
// stores the canonical Title Case serialization; callers may submit any
// casing and must be normalized through ParseProgressStatus at the boundary.
type ProgressStatus string

const (
	ProgressStatusToPick     ProgressStatus = "To Pick"
	ProgressStatusPicking    ProgressStatus = "Picking"
	ProgressStatusPicked     ProgressStatus = "Picked"
	ProgressStatusToOrder    ProgressStatus = "To Order"
	ProgressStatusOrdered    ProgressStatus = "Ordered"
	ProgressStatusToDispatch ProgressStatus = "To Dispatch"
	ProgressStatusFulfilled  ProgressStatus = "Fulfilled"
)

var validProgressStatuses = []ProgressStatus{
	ProgressStatusToPick,
	ProgressStatusPicking,
	ProgressStatusPicked,
	ProgressStatusToOrder,
	ProgressStatusOrdered,
	ProgressStatusToDispatch,
	ProgressStatusFulfilled,
}

// String implements fmt.Stringer.
func (p ProgressStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known canonical ProgressStatus.
func (p ProgressStatus) IsValid() bool {
	for _, candidate := range validProgressStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// Equals compares two status values case-insensitively. Legacy ledger rows
// mix "To Pick" and "to pick"; comparisons at the boundary must not care.
func (p ProgressStatus) Equals(other ProgressStatus) bool {
	return strings.EqualFold(string(p), string(other))
}

// ParseProgressStatus normalizes raw input into the canonical serialization.
func ParseProgressStatus(value string) (ProgressStatus, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validProgressStatuses {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid progress status %q", value)
}
