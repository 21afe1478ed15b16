package enums

import "fmt"

// ExclusionReason records why an HD order line is skipped on re-import.
type ExclusionReason string

const (
	ExclusionReasonCheckIn    ExclusionReason = "Check In"
	ExclusionReasonNotShopify ExclusionReason = "Not Shopify"
)

var validExclusionReasons = []ExclusionReason{
	ExclusionReasonCheckIn,
	ExclusionReasonNotShopify,
}

// String implements fmt.Stringer.
func (e ExclusionReason) String() string {
	return string(e)
}

// IsValid reports whether the value is a known ExclusionReason.
func (e ExclusionReason) IsValid() bool {
	for _, candidate := range validExclusionReasons {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExclusionReason converts raw input into an ExclusionReason.
func ParseExclusionReason(value string) (ExclusionReason, error) {
	for _, candidate := range validExclusionReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid exclusion reason %q", value)
}
