package vault

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/keychain/internal/common"
)

const (
	inputLayout   = "2.1.2006"
	displayLayout = "02.01.2006"
	storageLayout = "2006-01-02"
)

// Date is a calendar day without time of day or zone.
// The zero Date means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, rejecting days that do not exist.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%w: no such date %04d-%02d-%02d", common.ErrorValidation, year, month, day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDate parses user input in day.month.year form.
// Parsing is strict: 31.02.2024 or trailing text is an error, not corrected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(inputLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: date must be dd.mm.yyyy", common.ErrorValidation)
	}
	return dateOf(t), nil
}

func dateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// IsZero reports whether d is the "no date" value.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Compare returns -1, 0 or +1. Both dates must be non-zero.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Date) time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as dd.mm.yyyy, or an empty string for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.time().Format(displayLayout)
}

// MarshalText stores the date as yyyy-mm-dd.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.time().Format(storageLayout)), nil
}

// UnmarshalText accepts yyyy-mm-dd or an empty string.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(storageLayout, string(b))
	if err != nil {
		return fmt.Errorf("%w: bad stored date %q", common.ErrMalformedVault, string(b))
	}
	*d = dateOf(t)
	return nil
}
