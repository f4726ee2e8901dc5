package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/botjournal/internal/domain/models"
)

// timestampLayout is the bot's fixed timestamp format, e.g. "2025-03-14 9:31:05 AM".
const timestampLayout = "2006-01-02 3:04:05 PM"

// Regex fragments shared by the line rules.
const (
	tsPattern    = `(\d{4}-\d{2}-\d{2} \d{1,2}:\d{2}:\d{2} [AaPp][Mm])`
	moneyPattern = `(-?\$\s?-?[\d,]*\d(?:\.\d+)?)`
	numPattern   = `(-?\d+(?:\.\d+)?)`
	intPattern   = `(\d+)`
	sep          = `\s*\|\s*`
)

// parseTimestamp parses the bot timestamp format as UTC.
func parseTimestamp(s string) (time.Time, bool) {
	t, err := time.Parse(timestampLayout, strings.ToUpper(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseMoney accepts "$1,234.50", "-$12.00" and "$-12.00".
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	neg := strings.Contains(s, "-")
	s = strings.NewReplacer("$", "", ",", "", "-", "", " ", "").Replace(s)
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	if neg {
		d = d.Neg()
	}
	return d.InexactFloat64(), true
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// fields collects numeric conversions so a rule can apply all of its values
// or none of them.
type fields struct {
	ok bool
}

func newFields() *fields { return &fields{ok: true} }

func (f *fields) money(s string) float64 {
	v, ok := parseMoney(s)
	f.ok = f.ok && ok
	return v
}

func (f *fields) number(s string) float64 {
	v, ok := parseNumber(s)
	f.ok = f.ok && ok
	return v
}

func (f *fields) integer(s string) int {
	v, ok := parseInt(s)
	f.ok = f.ok && ok
	return v
}

// optInt parses s when the optional group matched, leaving 0 otherwise.
func (f *fields) optInt(s string) int {
	if s == "" {
		return 0
	}
	return f.integer(s)
}

func (f *fields) timestamp(s string) time.Time {
	v, ok := parseTimestamp(s)
	f.ok = f.ok && ok
	return v
}

func (f *fields) direction(s string) models.Direction {
	v, ok := parseDirection(s)
	f.ok = f.ok && ok
	return v
}

func parseDirection(s string) (models.Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return models.Long, true
	case "short", "sell":
		return models.Short, true
	}
	return "", false
}
