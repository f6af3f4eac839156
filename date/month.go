// Package date provides calendar months used to group ledger transactions.
package date

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MonthFormat is the format of a month, and the prefix of every timestamp in that month.
const MonthFormat = "2006-01"

const readMonthFormat = "2006-1" // Permissive read format (allows single-digit month).

// Month represents a calendar month.
type Month struct {
	y int
	m time.Month
}

// New returns a normalized Month.
func New(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{t.Year(), t.Month()}
}

// Of returns the month t belongs to, in t's location.
func Of(t time.Time) Month { return New(t.Year(), t.Month()) }

// ThisMonth returns the current month.
func ThisMonth() Month { return Of(time.Now()) }

// Parse parses a Month from a string. It is lenient and accepts "2025-7".
func Parse(str string) (Month, error) {
	t, err := time.Parse(readMonthFormat, strings.TrimSpace(str))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	return Of(t), nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Month {
	m, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m Month) Year() int           { return m.y }
func (m Month) Month() time.Month   { return m.m }
func (m Month) IsZero() bool        { return m.y == 0 && m.m == 0 }
func (m Month) time() time.Time     { return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC) }
func (m Month) Before(n Month) bool { return m.time().Before(n.time()) }

// Add returns the month n months after m (n can be negative).
func (m Month) Add(n int) Month { return New(m.y, m.m+time.Month(n)) }

// String formats the month as "2006-01".
func (m Month) String() string { return m.time().Format(MonthFormat) }

// Title returns a human readable title like "October 2026".
func (m Month) Title() string { return m.time().Format("January 2006") }

// Contains reports whether a "YYYY-MM-DD HH:MM" timestamp falls in m.
// It is a plain prefix comparison.
func (m Month) Contains(timestamp string) bool {
	return strings.HasPrefix(timestamp, m.String())
}

func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	v, err := Parse(str)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
