package enums

import "fmt"

// BookingType distinguishes rental bookings from outright sales.
type BookingType string

const (
	BookingTypeRent BookingType = "RENT"
	BookingTypeSale BookingType = "SALE"
)

var validBookingTypes = []BookingType{
	BookingTypeRent,
	BookingTypeSale,
}

func (b BookingType) String() string {
	return string(b)
}

func (b BookingType) IsValid() bool {
	for _, v := range validBookingTypes {
		if b == v {
			return true
		}
	}
	return false
}

func ParseBookingType(value string) (BookingType, error) {
	candidate := BookingType(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid booking type: %q", value)
	}
	return candidate, nil
}
