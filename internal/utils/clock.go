package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockPattern = regexp.MustCompile(`(\d{1,2})\s*[:hH.]\s*(\d{2})|(\d{1,2})\s*(?:hrs|am|pm|AM|PM)`)

// ParseClock extracts the first clock time from freeform text and anchors it
// to now's day in now's location. A time already in the past rolls over to the
// next day. Returns false when no plausible time is present; callers treat the
// schedule window as unconstrained in that case.
func ParseClock(text string, now time.Time) (time.Time, bool) {
	m := clockPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	var hour, minute int
	if m[1] != "" {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
	} else {
		hour, _ = strconv.Atoi(m[3])
	}

	if strings.Contains(strings.ToLower(m[0]), "pm") && hour < 12 {
		hour += 12
	}
	if hour > 23 || minute > 59 {
		return time.Time{}, false
	}

	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if at.Before(now) {
		at = at.Add(24 * time.Hour)
	}
	return at, true
}
