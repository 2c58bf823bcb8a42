package enums

import "fmt"

// AvailabilityStatus reflects how much of a variant's inventory is
// currently committed. RENTED and SOLD are terminal in the sense that
// quantity hitting zero never overwrites them with UNAVAILABLE.
type AvailabilityStatus string

const (
	AvailabilityAvailable       AvailabilityStatus = "AVAILABLE"
	AvailabilityPartiallyRented AvailabilityStatus = "PARTIALLY_RENTED"
	AvailabilityPartiallySold   AvailabilityStatus = "PARTIALLY_SOLD"
	AvailabilityRented          AvailabilityStatus = "RENTED"
	AvailabilitySold            AvailabilityStatus = "SOLD"
	AvailabilityUnavailable     AvailabilityStatus = "UNAVAILABLE"
)

var validAvailabilityStatuses = []AvailabilityStatus{
	AvailabilityAvailable,
	AvailabilityPartiallyRented,
	AvailabilityPartiallySold,
	AvailabilityRented,
	AvailabilitySold,
	AvailabilityUnavailable,
}

func (s AvailabilityStatus) String() string {
	return string(s)
}

func (s AvailabilityStatus) IsValid() bool {
	for _, v := range validAvailabilityStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// IsFullyCommitted reports whether the status marks stock as entirely
// rented out or sold through.
func (s AvailabilityStatus) IsFullyCommitted() bool {
	return s == AvailabilityRented || s == AvailabilitySold
}

func ParseAvailabilityStatus(value string) (AvailabilityStatus, error) {
	candidate := AvailabilityStatus(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid availability status: %q", value)
	}
	return candidate, nil
}
