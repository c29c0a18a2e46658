package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateFormats lists the calendar date layouts the pipeline recognizes,
// tried in order. ISO first so already-normalized dates round-trip.
var DateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ISODate is the canonical date form dates are normalized to
const ISODate = "2006-01-02"

// ParseNumber attempts a plain numeric parse of the cell. Number cells
// succeed directly; text cells succeed when the trimmed literal parses as
// a finite float. Missing cells never parse.
func ParseNumber(c Cell) (float64, bool) {
	if c.IsMissing() {
		return 0, false
	}
	if n, ok := c.Float(); ok {
		return n, true
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(c.String()), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseDate attempts to parse the cell as a calendar date using DateFormats.
// Number cells never parse; a bare number is a quantity, not a date.
func ParseDate(c Cell) (time.Time, bool) {
	if c.IsMissing() || c.IsNumber() {
		return time.Time{}, false
	}
	literal := strings.TrimSpace(c.String())
	for _, format := range DateFormats {
		if t, err := time.Parse(format, literal); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
