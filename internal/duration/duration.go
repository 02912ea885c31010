// Package duration parses retention periods such as "7d", "4w" or "3m"
// for vacuum --older-than. Go's time.ParseDuration has no day unit, so
// "30d" would otherwise have to be written "720h".
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const day = 24 * time.Hour

var (
	pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)
	units   = map[string]time.Duration{
		"h": time.Hour,
		"d": day,
		"w": 7 * day,
		"m": 30 * day,
	}
)

// Parse parses Nh (hours), Nd (days), Nw (weeks) or Nm (30-day months).
func Parse(s string) (time.Duration, error) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid duration %q (use e.g. 12h, 7d, 4w or 3m)", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return time.Duration(n) * units[m[2]], nil
}
