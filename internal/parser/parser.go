// Package parser turns the trading bot's semi-structured log output into a
// models.DayAnalysis.
//
// Parsing is best effort: lines that match no known marker, or match one but
// fail numeric extraction, are skipped. Parse never fails.
package parser

import (
	"strings"

	"github.com/guttosm/botjournal/internal/domain/models"
)

// state is the accumulator for one Parse call.
type state struct {
	day  models.DayAnalysis
	open map[int]*tradeBuilder
}

// Parse extracts a DayAnalysis from raw log text in a single forward pass.
//
// Summary lines (totals, sessions, protection counters, near-stop misses)
// write into the analysis as they are found. Trade lines go through an
// open-trade working set keyed by the bot's trade ID; a trade is only
// emitted once its completion line is seen, so trades still open at the end
// of the input are discarded.
func Parse(logText string) models.DayAnalysis {
	s := &state{
		day:  models.NewDayAnalysis(),
		open: make(map[int]*tradeBuilder),
	}
	for _, line := range strings.Split(logText, "\n") {
		s.line(strings.TrimRight(line, "\r"))
	}
	return s.day
}

func (s *state) line(line string) {
	for _, r := range tradeRules {
		if !strings.Contains(line, r.marker) {
			continue
		}
		if m := r.re.FindStringSubmatch(line); m != nil {
			r.apply(m, line, s)
		}
		return
	}
	for _, r := range statRules {
		if !strings.Contains(line, r.marker) {
			continue
		}
		if m := r.re.FindStringSubmatch(line); m != nil {
			r.apply(m, &s.day)
		}
		return
	}
}
