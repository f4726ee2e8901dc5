// Package compare reconciles two parsed trading days.
//
// The bot renumbers trades when a session log is regenerated, so trades are
// correlated by content rather than by ID: first on an exact composite key,
// then on a minute-level bucket, and whatever is left is reported as added
// or removed.
package compare

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/botjournal/internal/domain/models"
)

// strictKey is (open time, direction, entry price to the cent, quantity).
func strictKey(t models.TradeRecord) string {
	return t.Time.UTC().Format(time.RFC3339) + "|" +
		string(t.Direction) + "|" +
		decimal.NewFromFloat(t.EntryPrice).StringFixed(2) + "|" +
		strconv.Itoa(t.Quantity)
}

// fuzzyKey is (open time truncated to the minute, direction).
func fuzzyKey(t models.TradeRecord) string {
	return t.Time.UTC().Truncate(time.Minute).Format(time.RFC3339) + "|" + string(t.Direction)
}

type match struct {
	base, compare int
}

// matcher tracks which trades on each side have been claimed.
type matcher struct {
	base, compare         []models.TradeRecord
	baseUsed, compareUsed []bool
	matches               []match
}

func newMatcher(base, compare []models.TradeRecord) *matcher {
	return &matcher{
		base:        base,
		compare:     compare,
		baseUsed:    make([]bool, len(base)),
		compareUsed: make([]bool, len(compare)),
	}
}

// pairBy groups the still-unmatched trades of both sides by key and pairs
// them positionally inside each group, in input order.
func (m *matcher) pairBy(key func(models.TradeRecord) string) {
	baseGroups := make(map[string][]int)
	for i, t := range m.base {
		if !m.baseUsed[i] {
			k := key(t)
			baseGroups[k] = append(baseGroups[k], i)
		}
	}
	for ci, t := range m.compare {
		if m.compareUsed[ci] {
			continue
		}
		k := key(t)
		queue := baseGroups[k]
		if len(queue) == 0 {
			continue
		}
		bi := queue[0]
		baseGroups[k] = queue[1:]
		m.baseUsed[bi] = true
		m.compareUsed[ci] = true
		m.matches = append(m.matches, match{base: bi, compare: ci})
	}
}

// Compare diffs two trade lists and their headlines.
//
// Strict matching always runs before fuzzy matching: the fuzzy tier only
// sees trades the strict tier left unmatched. Fuzzy pairing inside a bucket
// is positional and is a heuristic when a bucket holds several trades.
func Compare(base, compare []models.TradeRecord, baseHeadline, compareHeadline models.Headline) models.DiffResult {
	res := models.DiffResult{
		Added:            []models.TradeRecord{},
		Removed:          []models.TradeRecord{},
		Modified:         []models.TradeChange{},
		IDOnlyChanged:    []models.TradePair{},
		DailyStatChanges: []models.FieldChange{},
	}

	m := newMatcher(base, compare)
	m.pairBy(strictKey)
	m.pairBy(fuzzyKey)

	sort.Slice(m.matches, func(i, j int) bool { return m.matches[i].compare < m.matches[j].compare })
	for _, mt := range m.matches {
		b, c := base[mt.base], compare[mt.compare]
		changes := TradeChanges(b, c)
		switch {
		case len(changes) == 0:
		case len(changes) == 1 && changes[0].Field == "id":
			res.IDOnlyChanged = append(res.IDOnlyChanged, models.TradePair{Base: b, Compare: c})
		default:
			res.Modified = append(res.Modified, models.TradeChange{
				TradePair: models.TradePair{Base: b, Compare: c},
				Changes:   changes,
			})
		}
	}

	for ci, used := range m.compareUsed {
		if !used {
			res.Added = append(res.Added, compare[ci])
		}
	}
	for bi, used := range m.baseUsed {
		if !used {
			res.Removed = append(res.Removed, base[bi])
		}
	}

	res.DailyStatChanges = append(res.DailyStatChanges, HeadlineChanges(baseHeadline, compareHeadline)...)
	return res
}

// CompareDays diffs two full analyses. On top of Compare it reports session
// and protection counter changes in DailyStatChanges.
func CompareDays(base, compare models.DayAnalysis) models.DiffResult {
	res := Compare(base.Trades, compare.Trades, base.Headline, compare.Headline)
	res.DailyStatChanges = append(res.DailyStatChanges, sessionChanges(base.Sessions, compare.Sessions)...)
	res.DailyStatChanges = append(res.DailyStatChanges, protectionChanges(base.Protection, compare.Protection)...)
	return res
}
