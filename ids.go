package finances

import (
	"strings"
	"time"
)

// idGenerator hands out transaction IDs derived from the creation time with
// microsecond precision. IDs are strictly increasing: when the clock does not
// move forward between two calls, the next microsecond is used.
type idGenerator struct {
	last time.Time
}

func formatID(t time.Time) string {
	return strings.Replace(t.Format(idFormat), ".", "", 1)
}

func parseID(id string) (time.Time, bool) {
	if len(id) != 20 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(idFormat, id[:14]+"."+id[14:], time.Local)
	return t, err == nil
}

// next returns a new ID for a transaction created at now.
func (g *idGenerator) next(now time.Time) string {
	now = now.Truncate(time.Microsecond)
	if !now.After(g.last) {
		now = g.last.Add(time.Microsecond)
	}
	g.last = now
	return formatID(now)
}

// observe makes sure future IDs sort after id.
func (g *idGenerator) observe(id string) {
	if t, ok := parseID(id); ok && t.After(g.last) {
		g.last = t
	}
}
