package render

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"roombooker/internal/models"
)

// wireBooking is the canonical outbound shape shared by all formats.
type wireBooking struct {
	XMLName         xml.Name         `json:"-"               xml:"booking"`
	FirstName       string           `json:"firstName"       xml:"firstName"`
	LastName        string           `json:"lastName"        xml:"lastName"`
	TotalPrice      int              `json:"totalPrice"      xml:"totalPrice"`
	DepositPaid     bool             `json:"depositPaid"     xml:"depositPaid"`
	BookingDates    wireBookingDates `json:"bookingDates"    xml:"bookingDates"`
	AdditionalNeeds *string          `json:"additionalNeeds,omitempty" xml:"additionalNeeds,omitempty"`
}

type wireBookingDates struct {
	CheckIn  string `json:"checkIn"  xml:"checkIn"`
	CheckOut string `json:"checkOut" xml:"checkOut"`
}

type wireCreatedBooking struct {
	XMLName   xml.Name    `json:"-"         xml:"created-booking"`
	BookingID int64       `json:"bookingId" xml:"bookingId"`
	Booking   wireBooking `json:"booking"   xml:"booking"`
}

// Accepted date input layouts, broadest last. Stored values are usually
// already CCYY-MM-DD, but anything a client once managed to store gets
// reformatted on the way out.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	time.RFC1123,
	time.ANSIC,
}

func canonicalDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrBadDate, value)
}

func view(b models.Booking) (wireBooking, error) {
	checkIn, err := canonicalDate(b.BookingDates.CheckIn)
	if err != nil {
		return wireBooking{}, err
	}
	checkOut, err := canonicalDate(b.BookingDates.CheckOut)
	if err != nil {
		return wireBooking{}, err
	}

	return wireBooking{
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		TotalPrice:      b.TotalPrice,
		DepositPaid:     b.DepositPaid,
		BookingDates:    wireBookingDates{CheckIn: checkIn, CheckOut: checkOut},
		AdditionalNeeds: b.AdditionalNeeds,
	}, nil
}

// Booking renders a stored record in the negotiated format, canonicalizing
// dates to CCYY-MM-DD. AdditionalNeeds is omitted entirely when unset.
func Booking(f Format, b models.Booking) ([]byte, error) {
	v, err := view(b)
	if err != nil {
		return nil, err
	}

	switch f {
	case FormatXML:
		return marshalXML(v)
	case FormatForm:
		return []byte(formValues("", v).Encode()), nil
	default:
		return json.Marshal(v)
	}
}

// CreatedBooking renders the create-result wrapper: the new id alongside
// the full rendered booking, rooted at created-booking for XML.
func CreatedBooking(f Format, id int64, b models.Booking) ([]byte, error) {
	v, err := view(b)
	if err != nil {
		return nil, err
	}
	wrapper := wireCreatedBooking{BookingID: id, Booking: v}

	switch f {
	case FormatXML:
		return marshalXML(wrapper)
	case FormatForm:
		values := formValues("booking", v)
		values.Set("bookingId", strconv.FormatInt(id, 10))
		return []byte(values.Encode()), nil
	default:
		return json.Marshal(wrapper)
	}
}

// BookingIDs renders the lightweight listing: one {"bookingId": n} object
// per match, preserving store iteration order. Listing is always JSON.
func BookingIDs(ids []int64) ([]byte, error) {
	type entry struct {
		BookingID int64 `json:"bookingId"`
	}
	payload := make([]entry, 0, len(ids))
	for _, id := range ids {
		payload = append(payload, entry{BookingID: id})
	}
	return json.Marshal(payload)
}

func marshalXML(v any) ([]byte, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func formValues(prefix string, v wireBooking) url.Values {
	key := func(parts ...string) string {
		k := parts[0]
		if prefix != "" {
			k = prefix + "[" + parts[0] + "]"
		}
		for _, p := range parts[1:] {
			k += "[" + p + "]"
		}
		return k
	}

	values := url.Values{}
	values.Set(key("firstName"), v.FirstName)
	values.Set(key("lastName"), v.LastName)
	values.Set(key("totalPrice"), strconv.Itoa(v.TotalPrice))
	values.Set(key("depositPaid"), strconv.FormatBool(v.DepositPaid))
	values.Set(key("bookingDates", "checkIn"), v.BookingDates.CheckIn)
	values.Set(key("bookingDates", "checkOut"), v.BookingDates.CheckOut)
	if v.AdditionalNeeds != nil {
		values.Set(key("additionalNeeds"), *v.AdditionalNeeds)
	}
	return values
}
