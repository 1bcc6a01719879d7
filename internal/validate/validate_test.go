package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roombooker/internal/models"
)

func strPtr(s string) *string { return &s }

func fullInput() *models.BookingInput {
	price := models.FlexInt(111)
	deposit := models.FlexBool(true)
	return &models.BookingInput{
		FirstName:   strPtr("Sally"),
		LastName:    strPtr("Brown"),
		TotalPrice:  &price,
		DepositPaid: &deposit,
		BookingDates: &models.BookingDatesInput{
			CheckIn:  strPtr("2013-02-23"),
			CheckOut: strPtr("2014-10-23"),
		},
	}
}

func TestBookingComplete(t *testing.T) {
	assert.Empty(t, Booking(fullInput()))
}

func TestBookingTrimsNames(t *testing.T) {
	in := fullInput()
	in.FirstName = strPtr("  Jim ")
	in.LastName = strPtr("\tBrown  ")

	missing := Booking(in)

	assert.Empty(t, missing)
	assert.Equal(t, "Jim", *in.FirstName)
	assert.Equal(t, "Brown", *in.LastName)
}

func TestBookingMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.BookingInput)
		missing string
	}{
		{"absent firstName", func(in *models.BookingInput) { in.FirstName = nil }, "firstName"},
		{"whitespace firstName", func(in *models.BookingInput) { in.FirstName = strPtr("   ") }, "firstName"},
		{"absent lastName", func(in *models.BookingInput) { in.LastName = nil }, "lastName"},
		{"absent totalPrice", func(in *models.BookingInput) { in.TotalPrice = nil }, "totalPrice"},
		{"absent depositPaid", func(in *models.BookingInput) { in.DepositPaid = nil }, "depositPaid"},
		{"absent checkIn", func(in *models.BookingInput) { in.BookingDates.CheckIn = nil }, "bookingDates.checkIn"},
		{"absent checkOut", func(in *models.BookingInput) { in.BookingDates.CheckOut = nil }, "bookingDates.checkOut"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fullInput()
			tt.mutate(in)
			assert.Equal(t, []string{tt.missing}, Booking(in))
		})
	}
}

func TestBookingNoDatesAtAll(t *testing.T) {
	in := fullInput()
	in.BookingDates = nil

	missing := Booking(in)

	assert.Equal(t, []string{"bookingDates.checkIn", "bookingDates.checkOut"}, missing)
}

func TestBookingEverythingMissing(t *testing.T) {
	missing := Booking(&models.BookingInput{})
	assert.Len(t, missing, 6)
}
