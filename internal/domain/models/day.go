package models

import "time"

// Session names used by the bot's session summary lines.
const (
	SessionMorning   = "morning"
	SessionMain      = "main"
	SessionMidday    = "midday"
	SessionAfternoon = "afternoon"
	SessionEnd       = "end"
)

// Sessions lists the fixed trading sessions in chronological order.
var Sessions = []string{SessionMorning, SessionMain, SessionMidday, SessionAfternoon, SessionEnd}

// Protective filters that can block a trade from being opened.
var BlockFilters = []string{
	"max_daily_loss",
	"max_trades",
	"consecutive_losses",
	"time_window",
	"volatility",
	"spread",
	"news",
	"trend",
}

// Fill protection mechanisms that can alter or reject a fill.
var FillProtections = []string{
	"slippage_guard",
	"partial_fill_guard",
	"requote_guard",
	"price_improvement",
	"fill_timeout",
}

// Headline holds the day's summary totals printed by the bot.
//
// swagger:model Headline
type Headline struct {
	TotalPnL                float64 `json:"total_pnl"`
	TotalTrades             int     `json:"total_trades"`
	Wins                    int     `json:"wins"`
	Losses                  int     `json:"losses"`
	WinRate                 float64 `json:"win_rate"`
	LossRate                float64 `json:"loss_rate"`
	BigWins                 int     `json:"big_wins"`
	BigLosses               int     `json:"big_losses"`
	TrailingDrawdown        float64 `json:"trailing_drawdown"`
	ContractsTraded         int     `json:"contracts_traded"`
	MaxPotentialPerContract float64 `json:"max_potential_per_contract"`
	PnLPerTrade             float64 `json:"pnl_per_trade"`
	MaxTradeProfit          float64 `json:"max_trade_profit"`
	MaxTradeRisk            float64 `json:"max_trade_risk"`
	MaxDailyGain            float64 `json:"max_daily_gain"`
	MaxDailyLoss            float64 `json:"max_daily_loss"`
}

// SessionStats summarizes one trading session.
type SessionStats struct {
	PnL            float64 `json:"pnl"`
	Trades         int     `json:"trades"`
	AvgPnLPerTrade float64 `json:"avg_pnl_per_trade"`
}

// ProtectionStats counts how often the bot's risk controls fired.
type ProtectionStats struct {
	Blocked        map[string]int `json:"blocked"`
	FillProtection map[string]int `json:"fill_protection"`
	ChaseTrades    int            `json:"chase_trades"`
	ChaseRestarts  int            `json:"chase_restarts"`
}

// NearStopEvent records a trade that came within Distance points of its stop.
type NearStopEvent struct {
	Time      time.Time `json:"time"`
	TradeID   int       `json:"trade_id"`
	Direction Direction `json:"direction"`
	Distance  float64   `json:"distance"`
}

// DayAnalysis is everything extracted from one day's log text.
//
// swagger:model DayAnalysis
type DayAnalysis struct {
	Headline   Headline                `json:"headline"`
	Sessions   map[string]SessionStats `json:"sessions"`
	Protection ProtectionStats         `json:"protection"`
	NearStops  []NearStopEvent         `json:"near_stops"`
	Trades     []TradeRecord           `json:"trades"`
}

// NewDayAnalysis returns an empty analysis with every known session and
// counter present and zeroed.
func NewDayAnalysis() DayAnalysis {
	d := DayAnalysis{
		Sessions: make(map[string]SessionStats, len(Sessions)),
		Protection: ProtectionStats{
			Blocked:        make(map[string]int, len(BlockFilters)),
			FillProtection: make(map[string]int, len(FillProtections)),
		},
		NearStops: []NearStopEvent{},
		Trades:    []TradeRecord{},
	}
	for _, s := range Sessions {
		d.Sessions[s] = SessionStats{}
	}
	for _, f := range BlockFilters {
		d.Protection.Blocked[f] = 0
	}
	for _, f := range FillProtections {
		d.Protection.FillProtection[f] = 0
	}
	return d
}

// Clone returns a deep copy so callers can modify the result freely.
func (d DayAnalysis) Clone() DayAnalysis {
	out := DayAnalysis{
		Headline: d.Headline,
		Protection: ProtectionStats{
			ChaseTrades:   d.Protection.ChaseTrades,
			ChaseRestarts: d.Protection.ChaseRestarts,
		},
	}
	if d.Sessions != nil {
		out.Sessions = make(map[string]SessionStats, len(d.Sessions))
		for k, v := range d.Sessions {
			out.Sessions[k] = v
		}
	}
	if d.Protection.Blocked != nil {
		out.Protection.Blocked = make(map[string]int, len(d.Protection.Blocked))
		for k, v := range d.Protection.Blocked {
			out.Protection.Blocked[k] = v
		}
	}
	if d.Protection.FillProtection != nil {
		out.Protection.FillProtection = make(map[string]int, len(d.Protection.FillProtection))
		for k, v := range d.Protection.FillProtection {
			out.Protection.FillProtection[k] = v
		}
	}
	if d.NearStops != nil {
		out.NearStops = append([]NearStopEvent(nil), d.NearStops...)
	}
	if d.Trades != nil {
		out.Trades = make([]TradeRecord, len(d.Trades))
		for i, t := range d.Trades {
			out.Trades[i] = t.Clone()
		}
	}
	return out
}

// DayKind distinguishes the stored base analysis from a resubmitted one
// awaiting review.
type DayKind string

const (
	KindBase    DayKind = "base"
	KindCompare DayKind = "compare"
)

// Valid reports whether k is a known kind.
func (k DayKind) Valid() bool {
	return k == KindBase || k == KindCompare
}

// DaySummary is the listing view of a stored day.
type DaySummary struct {
	Date       time.Time `json:"date"`
	Kind       DayKind   `json:"kind"`
	TradeCount int       `json:"trade_count"`
	TotalPnL   float64   `json:"total_pnl"`
	UpdatedAt  time.Time `json:"updated_at"`
}
