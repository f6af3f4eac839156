package finances

import (
	"time"

	"github.com/etnz/finances/date"
)

// TimestampFormat is the minute granularity format of transaction timestamps.
// Timestamps in this format sort chronologically with plain string comparison.
const TimestampFormat = "2006-01-02 15:04"

// idFormat is the layout of transaction IDs: the creation time down to the microsecond.
const idFormat = "20060102150405.000000"

// Timestamp is the moment a transaction was recorded, as "YYYY-MM-DD HH:MM".
//
// The zero Timestamp is the empty string, it is what a stored transaction
// without a date decodes to.
type Timestamp string

// NewTimestamp formats t as a Timestamp.
func NewTimestamp(t time.Time) Timestamp { return Timestamp(t.Format(TimestampFormat)) }

// IsZero reports whether the timestamp is missing.
func (ts Timestamp) IsZero() bool { return ts == "" }

// String returns the timestamp as stored.
func (ts Timestamp) String() string { return string(ts) }

// Time parses the timestamp in the local time zone.
func (ts Timestamp) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampFormat, string(ts), time.Local)
}

// In reports whether the timestamp belongs to month m.
func (ts Timestamp) In(m date.Month) bool { return m.Contains(string(ts)) }

// Before reports whether ts sorts before u.
func (ts Timestamp) Before(u Timestamp) bool { return ts < u }
