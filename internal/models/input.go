package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BookingInput is a candidate booking payload as decoded from a request
// body. Pointer fields distinguish "absent" from "set", which drives both
// presence validation and partial merges.
type BookingInput struct {
	FirstName       *string            `json:"firstName"`
	LastName        *string            `json:"lastName"`
	TotalPrice      *FlexInt           `json:"totalPrice"`
	DepositPaid     *FlexBool          `json:"depositPaid"`
	BookingDates    *BookingDatesInput `json:"bookingDates"`
	AdditionalNeeds *string            `json:"additionalNeeds"`
}

type BookingDatesInput struct {
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
}

// Booking materializes a validated input into a record. Callers must run
// the validator first; required fields are dereferenced without checks.
func (in *BookingInput) Booking() Booking {
	return Booking{
		FirstName:   *in.FirstName,
		LastName:    *in.LastName,
		TotalPrice:  int(*in.TotalPrice),
		DepositPaid: bool(*in.DepositPaid),
		BookingDates: BookingDates{
			CheckIn:  *in.BookingDates.CheckIn,
			CheckOut: *in.BookingDates.CheckOut,
		},
		AdditionalNeeds: in.AdditionalNeeds,
	}
}

// FlexInt accepts whatever numeric-like value a client sends for a price:
// a JSON number, a fractional number (truncated), or a numeric string.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	return f.parse(s)
}

func (f *FlexInt) parse(s string) error {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt(n)
		return nil
	}
	fl, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("totalPrice %q is not numeric", s)
	}
	*f = FlexInt(int(fl))
	return nil
}

// ParseFlexInt converts a text field (form or XML payloads) to a FlexInt.
func ParseFlexInt(s string) (FlexInt, error) {
	var f FlexInt
	if err := f.parse(strings.TrimSpace(s)); err != nil {
		return 0, err
	}
	return f, nil
}

// FlexBool accepts a JSON bool, a "true"/"false"-style string, or a number
// (zero false, anything else true).
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		return f.parse(unquoted)
	}
	return f.parse(s)
}

func (f *FlexBool) parse(s string) error {
	s = strings.TrimSpace(s)
	if b, err := strconv.ParseBool(s); err == nil {
		*f = FlexBool(b)
		return nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		*f = n != 0
		return nil
	}
	return fmt.Errorf("depositPaid %q is not boolean", s)
}

// ParseFlexBool converts a text field (form or XML payloads) to a FlexBool.
func ParseFlexBool(s string) (FlexBool, error) {
	var f FlexBool
	if err := f.parse(s); err != nil {
		return false, err
	}
	return f, nil
}
