package enums

import "fmt"

// OrderFulfillmentStatus mirrors the storefront's order-level status.
// Ingestion writes it; the fulfillment core only filters on it.
type OrderFulfillmentStatus string

const (
	OrderFulfillmentStatusUnfulfilled OrderFulfillmentStatus = "unfulfilled"
	OrderFulfillmentStatusPartial     OrderFulfillmentStatus = "partial"
	OrderFulfillmentStatusFulfilled   OrderFulfillmentStatus = "fulfilled"
)

var validOrderFulfillmentStatuses = []OrderFulfillmentStatus{
	OrderFulfillmentStatusUnfulfilled,
	OrderFulfillmentStatusPartial,
	OrderFulfillmentStatusFulfilled,
}

// String implements fmt.Stringer.
func (o OrderFulfillmentStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderFulfillmentStatus.
func (o OrderFulfillmentStatus) IsValid() bool {
	for _, candidate := range validOrderFulfillmentStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderFulfillmentStatus converts raw input into an OrderFulfillmentStatus.
func ParseOrderFulfillmentStatus(value string) (OrderFulfillmentStatus, error) {
	for _, candidate := range validOrderFulfillmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order fulfillment status %q", value)
}
