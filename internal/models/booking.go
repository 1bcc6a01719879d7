package models

// Booking is the stored record for a single reservation. Dates are kept as
// the text the client sent; the render package canonicalizes them to
// CCYY-MM-DD on the way out.
type Booking struct {
	ID              int64
	FirstName       string
	LastName        string
	TotalPrice      int
	DepositPaid     bool
	BookingDates    BookingDates
	AdditionalNeeds *string
}

type BookingDates struct {
	CheckIn  string
	CheckOut string
}

// BookingFilter narrows a listing. Name matches are exact; CheckIn is a
// strict lower bound and CheckOut a strict upper bound on the stored dates.
type BookingFilter struct {
	FirstName *string
	LastName  *string
	CheckIn   *string
	CheckOut  *string
}
