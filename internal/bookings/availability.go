package bookings

import "github.com/rentalhq/rental-backend/pkg/enums"

// DeriveStatus computes the availability status for a variant after a
// quantity write. Pure function of the remaining quantity, the booking
// type driving the write (empty when there is no booking context, e.g.
// a manual stock adjustment) and the prior status.
func DeriveStatus(bookingType enums.BookingType, remaining int, prior enums.AvailabilityStatus) enums.AvailabilityStatus {
	if remaining <= 0 {
		switch bookingType {
		case enums.BookingTypeRent:
			return enums.AvailabilityRented
		case enums.BookingTypeSale:
			return enums.AvailabilitySold
		default:
			return enums.AvailabilityUnavailable
		}
	}

	switch bookingType {
	case enums.BookingTypeRent:
		return enums.AvailabilityPartiallyRented
	case enums.BookingTypeSale:
		return enums.AvailabilityPartiallySold
	default:
		if prior == enums.AvailabilityUnavailable || prior == "" {
			return enums.AvailabilityAvailable
		}
		return prior
	}
}
