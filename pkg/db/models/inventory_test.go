package models

import (
	"testing"

	"github.com/rentalhq/rental-backend/pkg/enums"
)

func TestInventoryNormalize(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		status   enums.AvailabilityStatus
		want     enums.AvailabilityStatus
	}{
		{"zero with no status", 0, "", enums.AvailabilityUnavailable},
		{"zero available", 0, enums.AvailabilityAvailable, enums.AvailabilityUnavailable},
		{"zero partially rented", 0, enums.AvailabilityPartiallyRented, enums.AvailabilityUnavailable},
		{"zero partially sold", 0, enums.AvailabilityPartiallySold, enums.AvailabilityUnavailable},
		{"zero rented survives", 0, enums.AvailabilityRented, enums.AvailabilityRented},
		{"zero sold survives", 0, enums.AvailabilitySold, enums.AvailabilitySold},
		{"positive unavailable lifts", 3, enums.AvailabilityUnavailable, enums.AvailabilityAvailable},
		{"positive no status defaults", 3, "", enums.AvailabilityAvailable},
		{"positive partially rented untouched", 3, enums.AvailabilityPartiallyRented, enums.AvailabilityPartiallyRented},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := Inventory{AvailableQuantity: tc.quantity, AvailabilityStatus: tc.status}
			inv.Normalize()
			if inv.AvailabilityStatus != tc.want {
				t.Fatalf("Normalize(qty=%d, status=%q) = %q, want %q", tc.quantity, tc.status, inv.AvailabilityStatus, tc.want)
			}
		})
	}
}
