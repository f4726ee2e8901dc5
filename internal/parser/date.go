package parser

import (
	"regexp"
	"time"
)

var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ExtractDate returns the first valid YYYY-MM-DD date found in raw, or the
// calendar date of now when there is none. The result is midnight UTC.
func ExtractDate(raw string, now time.Time) time.Time {
	for _, s := range dateRe.FindAllString(raw, -1) {
		if d, err := time.Parse("2006-01-02", s); err == nil {
			return d
		}
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
