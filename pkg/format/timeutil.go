package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultPeriod is the range served when a request names no end time.
const DefaultPeriod = 30 * 24 * time.Hour

// UnixMillis renders t as unix milliseconds in float notation,
// for example "1681234567000.0".
func UnixMillis(t time.Time) string {
	ms := float64(t.UnixMicro()) / 1000
	s := strconv.FormatFloat(ms, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a query parameter time. Values without a zone are
// read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid time %q", ErrArgument, s)
}

// Period is a query range. A nil Start leaves the range open below.
type Period struct {
	Start *time.Time
	End   time.Time
}

// DeterminePeriod fills in the range of a feature query. Without an end
// the last DefaultPeriod up to now is used, whatever start says.
func DeterminePeriod(start, end *time.Time, now time.Time) Period {
	if end == nil {
		from := now.Add(-DefaultPeriod)
		return Period{Start: &from, End: now}
	}
	return Period{Start: start, End: *end}
}
