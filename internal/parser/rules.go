package parser

import (
	"regexp"
	"strings"

	"github.com/guttosm/botjournal/internal/domain/models"
)

// statRule extracts summary values from a single line. The marker is a
// cheap literal pre-check; the regex does the field extraction. apply must
// either write all of its values or none of them.
type statRule struct {
	marker string
	re     *regexp.Regexp
	apply  func(m []string, d *models.DayAnalysis) bool
}

var statRules = []statRule{
	{
		marker: "TOTAL PnL:",
		re:     regexp.MustCompile(`TOTAL PnL:\s*` + moneyPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			v := f.money(m[1])
			if f.ok {
				d.Headline.TotalPnL = v
			}
			return f.ok
		},
	},
	{
		marker: "TOTAL TRADES:",
		re: regexp.MustCompile(`TOTAL TRADES:\s*` + intPattern +
			sep + `WINS:\s*` + intPattern + `\s*\(` + numPattern + `%\)` +
			sep + `LOSSES:\s*` + intPattern + `\s*\(` + numPattern + `%\)` +
			`(?:\s*\[Big Wins:\s*` + intPattern + sep + `Big Losses:\s*` + intPattern + `\])?`),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			total, wins, winRate := f.integer(m[1]), f.integer(m[2]), f.number(m[3])
			losses, lossRate := f.integer(m[4]), f.number(m[5])
			bigWins, bigLosses := f.optInt(m[6]), f.optInt(m[7])
			if !f.ok {
				return false
			}
			h := &d.Headline
			h.TotalTrades, h.Wins, h.WinRate = total, wins, winRate
			h.Losses, h.LossRate = losses, lossRate
			h.BigWins, h.BigLosses = bigWins, bigLosses
			return true
		},
	},
	{
		marker: "TRAILING DRAWDOWN:",
		re:     regexp.MustCompile(`TRAILING DRAWDOWN:\s*` + moneyPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			v := f.money(m[1])
			if f.ok {
				d.Headline.TrailingDrawdown = v
			}
			return f.ok
		},
	},
	{
		marker: "CONTRACTS TRADED:",
		re: regexp.MustCompile(`CONTRACTS TRADED:\s*` + intPattern +
			sep + `Max Potential Gain per Contract:\s*` + moneyPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			contracts, potential := f.integer(m[1]), f.money(m[2])
			if f.ok {
				d.Headline.ContractsTraded = contracts
				d.Headline.MaxPotentialPerContract = potential
			}
			return f.ok
		},
	},
	{
		marker: "PnL PER TRADE:",
		re:     regexp.MustCompile(`PnL PER TRADE:\s*` + moneyPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			v := f.money(m[1])
			if f.ok {
				d.Headline.PnLPerTrade = v
			}
			return f.ok
		},
	},
	{
		marker: "MAX TRADE PROFIT:",
		re:     regexp.MustCompile(`MAX TRADE PROFIT:\s*` + moneyPattern + sep + `MAX TRADE RISK:\s*` + moneyPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			profit, risk := f.money(m[1]), f.money(m[2])
			if f.ok {
				d.Headline.MaxTradeProfit = profit
				d.Headline.MaxTradeRisk = risk
			}
			return f.ok
		},
	},
	{
		marker: "MAX DAILY GAIN:",
		re:     regexp.MustCompile(`MAX DAILY GAIN:\s*` + moneyPattern + sep + `MAX DAILY LOSS:\s*` + moneyPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			gain, loss := f.money(m[1]), f.money(m[2])
			if f.ok {
				d.Headline.MaxDailyGain = gain
				d.Headline.MaxDailyLoss = loss
			}
			return f.ok
		},
	},
	{
		marker: "Session - PnL:",
		re: regexp.MustCompile(`\b(Morning|Main|Midday|Afternoon|End) Session - PnL:\s*` + moneyPattern +
			sep + `Trades:\s*` + intPattern +
			sep + `Avg PnL per Trade:\s*` + moneyPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			s := models.SessionStats{
				PnL:            f.money(m[2]),
				Trades:         f.integer(m[3]),
				AvgPnLPerTrade: f.money(m[4]),
			}
			if f.ok {
				d.Sessions[strings.ToLower(m[1])] = s
			}
			return f.ok
		},
	},
	{
		marker: "BLOCKED BY ",
		re:     regexp.MustCompile(`BLOCKED BY ([A-Za-z ]+?):\s*` + intPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			return setCounter(d.Protection.Blocked, filterKey(m[1]), m[2])
		},
	},
	{
		marker: "FILL PROTECTION - ",
		re:     regexp.MustCompile(`FILL PROTECTION - ([A-Za-z ]+?):\s*` + intPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			return setCounter(d.Protection.FillProtection, filterKey(m[1]), m[2])
		},
	},
	{
		marker: "CHASE MODE - ",
		re:     regexp.MustCompile(`CHASE MODE - Trades:\s*` + intPattern + sep + `Restarts:\s*` + intPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			trades, restarts := f.integer(m[1]), f.integer(m[2])
			if f.ok {
				d.Protection.ChaseTrades = trades
				d.Protection.ChaseRestarts = restarts
			}
			return f.ok
		},
	},
	{
		marker: "NEAR SL MISS - ",
		re: regexp.MustCompile(`NEAR SL MISS - Trade #` + intPattern + `:\s*` + tsPattern +
			sep + `(?i:(long|short))` + sep + `Distance:\s*` + numPattern),
		apply: func(m []string, d *models.DayAnalysis) bool {
			f := newFields()
			ev := models.NearStopEvent{
				TradeID:   f.integer(m[1]),
				Time:      f.timestamp(m[2]),
				Direction: f.direction(m[3]),
				Distance:  f.number(m[4]),
			}
			if f.ok {
				d.NearStops = append(d.NearStops, ev)
			}
			return f.ok
		},
	},
}

// filterKey turns a display name like "Volatility Filter" into "volatility".
func filterKey(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.TrimSuffix(k, " filter")
	return strings.Join(strings.Fields(k), "_")
}

// setCounter only writes counters that already exist, so unknown names in the
// log cannot grow the fixed set.
func setCounter(counters map[string]int, key, raw string) bool {
	if _, known := counters[key]; !known {
		return false
	}
	v, ok := parseInt(raw)
	if !ok {
		return false
	}
	counters[key] = v
	return true
}
