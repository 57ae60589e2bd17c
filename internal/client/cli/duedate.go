package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const localLayout = "2006-01-02 15:04"

var errBadDueDate = errors.New(`use RFC 3339, "YYYY-MM-DD HH:MM" or a relative "+2h", "+3d"`)

// parseDueDate reads an absolute time or an offset from now. Local
// layouts are interpreted in loc.
func parseDueDate(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)

	if rest, ok := strings.CutPrefix(s, "+"); ok {
		d, err := parseOffset(rest)
		if err != nil {
			return time.Time{}, fmt.Errorf("due date %q: %w", s, errBadDueDate)
		}
		return now.Add(d), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("due date %q: %w", s, errBadDueDate)
}

// parseOffset extends time.ParseDuration with a whole-day "d" unit.
func parseOffset(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return 0, errBadDueDate
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errBadDueDate
	}
	return d, nil
}
