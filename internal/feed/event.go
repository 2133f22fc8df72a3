package feed

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// Fixed identity of the published feed.
const (
	Domain     = "365day.top"
	TimezoneID = "Asia/Shanghai"
	ProductID  = "-//365day.top//China Public Holidays 2.0//CN"
)

// iCalendar status and transparency codes used by this feed.
const (
	StatusConfirmed   = "CONFIRMED"
	StatusTentative   = "TENTATIVE"
	TranspOpaque      = "OPAQUE"
	TranspTransparent = "TRANSPARENT"
)

// Event is one entry of the feed. Start and End are wall-clock values in
// the fixed feed timezone; for all-day events End is exclusive, one day
// past the last covered day.
type Event struct {
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	AllDay      bool

	UID     string
	Created string // UTC stamp, 20060102T150405Z

	Status string
	Transp string

	// Alarm, when non-empty, adds a display reminder firing one day
	// before the event.
	Alarm string
}

// dtstart returns the serialized DTSTART value, which doubles as the
// chronological sort key: the fixed-width date/time string orders
// lexicographically.
func (e Event) dtstart() string {
	return formatDate(e.Start, e.AllDay)
}

func formatDate(t time.Time, allDay bool) string {
	if allDay {
		return t.Format("20060102")
	}
	return t.Format("20060102T150405")
}

// UID builds the deterministic identifier for holiday-block and workday
// events: a semantic suffix scoped to the start date.
func UID(date time.Time, suffix string) string {
	return date.Format("20060102") + "_" + suffix + "@" + Domain
}

// HashUID builds the identifier for all other events from a content hash
// of start date and title. Truncation to 12 hex digits keeps UIDs short;
// two distinct same-day titles colliding post-truncation is an accepted
// risk.
func HashUID(date time.Time, summary string) string {
	day := date.Format("20060102")
	sum := md5.Sum([]byte(day + "-" + summary))
	return UID(date, hex.EncodeToString(sum[:])[:12])
}

// Stamp formats a UTC iCalendar timestamp.
func Stamp(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
