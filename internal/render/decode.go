package render

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"

	"roombooker/internal/models"
)

// DecodeBooking parses a request body into a BookingInput according to its
// Content-Type. XML payloads must be rooted at a booking element, which is
// unwrapped here so handlers see the same shape for every format. An
// unknown content type yields an empty input, not an error: the validator
// downstream reports it as missing fields, which is how the API has always
// answered bodies it cannot read.
func DecodeBooking(contentType string, body []byte) (*models.BookingInput, error) {
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch mediaType {
	case "text/xml", "application/xml":
		return decodeXMLBooking(body)
	case "application/x-www-form-urlencoded":
		return decodeFormBooking(body)
	case "application/json", "":
		return decodeJSONBooking(body)
	default:
		return &models.BookingInput{}, nil
	}
}

func decodeJSONBooking(body []byte) (*models.BookingInput, error) {
	var in models.BookingInput
	if len(strings.TrimSpace(string(body))) == 0 {
		return &in, nil
	}
	if err := json.Unmarshal(body, &in); err != nil {
		return nil, fmt.Errorf("decode json booking: %w", err)
	}
	return &in, nil
}

type xmlBookingInput struct {
	XMLName         xml.Name              `xml:"booking"`
	FirstName       *string               `xml:"firstName"`
	LastName        *string               `xml:"lastName"`
	TotalPrice      *string               `xml:"totalPrice"`
	DepositPaid     *string               `xml:"depositPaid"`
	BookingDates    *xmlBookingDatesInput `xml:"bookingDates"`
	AdditionalNeeds *string               `xml:"additionalNeeds"`
}

type xmlBookingDatesInput struct {
	CheckIn  *string `xml:"checkIn"`
	CheckOut *string `xml:"checkOut"`
}

func decodeXMLBooking(body []byte) (*models.BookingInput, error) {
	var raw xmlBookingInput
	if err := xml.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode xml booking: %w", err)
	}

	in := models.BookingInput{
		FirstName:       raw.FirstName,
		LastName:        raw.LastName,
		AdditionalNeeds: raw.AdditionalNeeds,
	}
	if raw.TotalPrice != nil {
		price, err := models.ParseFlexInt(*raw.TotalPrice)
		if err != nil {
			return nil, err
		}
		in.TotalPrice = &price
	}
	if raw.DepositPaid != nil {
		deposit, err := models.ParseFlexBool(*raw.DepositPaid)
		if err != nil {
			return nil, err
		}
		in.DepositPaid = &deposit
	}
	if raw.BookingDates != nil {
		in.BookingDates = &models.BookingDatesInput{
			CheckIn:  raw.BookingDates.CheckIn,
			CheckOut: raw.BookingDates.CheckOut,
		}
	}
	return &in, nil
}

func decodeFormBooking(body []byte) (*models.BookingInput, error) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("decode form booking: %w", err)
	}

	var in models.BookingInput
	if values.Has("firstName") {
		v := values.Get("firstName")
		in.FirstName = &v
	}
	if values.Has("lastName") {
		v := values.Get("lastName")
		in.LastName = &v
	}
	if values.Has("totalPrice") {
		price, err := models.ParseFlexInt(values.Get("totalPrice"))
		if err != nil {
			return nil, err
		}
		in.TotalPrice = &price
	}
	if values.Has("depositPaid") {
		deposit, err := models.ParseFlexBool(values.Get("depositPaid"))
		if err != nil {
			return nil, err
		}
		in.DepositPaid = &deposit
	}
	if values.Has("additionalNeeds") {
		v := values.Get("additionalNeeds")
		in.AdditionalNeeds = &v
	}
	if values.Has("bookingDates[checkIn]") || values.Has("bookingDates[checkOut]") {
		dates := models.BookingDatesInput{}
		if values.Has("bookingDates[checkIn]") {
			v := values.Get("bookingDates[checkIn]")
			dates.CheckIn = &v
		}
		if values.Has("bookingDates[checkOut]") {
			v := values.Get("bookingDates[checkOut]")
			dates.CheckOut = &v
		}
		in.BookingDates = &dates
	}
	return &in, nil
}
