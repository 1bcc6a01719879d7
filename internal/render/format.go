// Package render converts booking records to and from their wire
// representations: JSON, XML and form-encoded payloads.
package render

import (
	"errors"
	"fmt"
	"strings"
)

// Format is a negotiated output representation.
type Format int

const (
	FormatJSON Format = iota
	FormatXML
	FormatForm
)

// ErrUnsupportedFormat reports an Accept value outside the supported set.
// It is a distinct result so callers can tell "cannot produce this
// representation" apart from an empty body.
var ErrUnsupportedFormat = errors.New("unsupported representation")

// ErrBadDate reports a stored date value that cannot be canonicalized.
var ErrBadDate = errors.New("malformed booking date")

// Negotiate maps an Accept header to a Format. Matching is exact, the way
// the API has always behaved: no quality factors, no media-type lists. An
// absent header counts as the wildcard and renders JSON.
func Negotiate(accept string) (Format, error) {
	switch strings.TrimSpace(accept) {
	case "application/json", "*/*", "":
		return FormatJSON, nil
	case "application/xml":
		return FormatXML, nil
	case "application/x-www-form-urlencoded":
		return FormatForm, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, accept)
}

// ContentType returns the response media type for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatXML:
		return "application/xml"
	case FormatForm:
		return "application/x-www-form-urlencoded"
	default:
		return "application/json"
	}
}
