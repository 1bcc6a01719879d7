// Package validate enforces required booking fields before create and full
// update. Partial update (merge) deliberately bypasses it, so a record can
// be driven out of the fully-populated state; that matches the documented
// behavior of the API rather than an oversight here.
package validate

import (
	"strings"

	"roombooker/internal/models"
)

// Booking trims firstName/lastName in place, then checks the six required
// fields for presence. It returns the missing field names in a stable
// order; an empty slice means the payload is acceptable.
//
// Presence is about the field being there, not type-correctness: a string
// field fails when absent, null, or empty after trimming; price and deposit
// fail only when absent or null.
func Booking(in *models.BookingInput) []string {
	if in.FirstName != nil {
		trimmed := strings.TrimSpace(*in.FirstName)
		in.FirstName = &trimmed
	}
	if in.LastName != nil {
		trimmed := strings.TrimSpace(*in.LastName)
		in.LastName = &trimmed
	}

	var missing []string
	if in.FirstName == nil || *in.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if in.LastName == nil || *in.LastName == "" {
		missing = append(missing, "lastName")
	}
	if in.TotalPrice == nil {
		missing = append(missing, "totalPrice")
	}
	if in.DepositPaid == nil {
		missing = append(missing, "depositPaid")
	}
	if in.BookingDates == nil || in.BookingDates.CheckIn == nil || strings.TrimSpace(*in.BookingDates.CheckIn) == "" {
		missing = append(missing, "bookingDates.checkIn")
	}
	if in.BookingDates == nil || in.BookingDates.CheckOut == nil || strings.TrimSpace(*in.BookingDates.CheckOut) == "" {
		missing = append(missing, "bookingDates.checkOut")
	}
	return missing
}
