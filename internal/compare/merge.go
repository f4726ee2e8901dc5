package compare

import "github.com/guttosm/botjournal/internal/domain/models"

// Merge applies the selected parts of compare onto base and returns the
// result. Neither input is modified.
//
//   - MergeAll: the result is a copy of compare.
//   - MergeTradeIDs: each compare trade with a listed ID replaces the base
//     trade with that ID, or is appended when base has none. IDs that do not
//     exist in compare are ignored.
//   - MergeDailyStats: headline, sessions, protection counters and near-stop
//     events are taken from compare wholesale.
func Merge(base, compare models.DayAnalysis, opts models.MergeOptions) models.DayAnalysis {
	if opts.MergeAll {
		return compare.Clone()
	}

	out := base.Clone()
	for _, id := range opts.MergeTradeIDs {
		src := indexByID(compare.Trades, id)
		if src < 0 {
			continue
		}
		tr := compare.Trades[src].Clone()
		if dst := indexByID(out.Trades, id); dst >= 0 {
			out.Trades[dst] = tr
		} else {
			out.Trades = append(out.Trades, tr)
		}
	}

	if opts.MergeDailyStats {
		stats := compare.Clone()
		out.Headline = stats.Headline
		out.Sessions = stats.Sessions
		out.Protection = stats.Protection
		out.NearStops = stats.NearStops
	}
	return out
}

func indexByID(trades []models.TradeRecord, id int) int {
	for i, t := range trades {
		if t.ID == id {
			return i
		}
	}
	return -1
}
