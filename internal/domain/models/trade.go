package models

import "time"

// Direction is the side a trade was opened on.
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// ExitReason categorizes why (part of) a position was closed.
type ExitReason string

const (
	ExitTakeProfit ExitReason = "take_profit"
	ExitStopLoss   ExitReason = "stop_loss"
	ExitManual     ExitReason = "manual"
)

// ExitRecord is one partial or full exit of a trade.
//
// Quantity, PnL and Points are filled by the PnL update line that follows
// the close line, so a stub may carry zero values until then.
type ExitRecord struct {
	Price      float64    `json:"price"`
	Quantity   int        `json:"quantity"`
	PnL        float64    `json:"pnl"`
	Points     float64    `json:"points"`
	Reason     ExitReason `json:"reason"`
	ReasonText string     `json:"reason_text,omitempty"`
	Time       time.Time  `json:"time"`
}

// Equal reports whether two exits carry the same values.
func (e ExitRecord) Equal(o ExitRecord) bool {
	return e.Price == o.Price &&
		e.Quantity == o.Quantity &&
		e.PnL == o.PnL &&
		e.Points == o.Points &&
		e.Reason == o.Reason &&
		e.ReasonText == o.ReasonText &&
		e.Time.Equal(o.Time)
}

// TradeRecord represents one logical trade reconstructed from the bot log.
//
// ID is assigned by the bot and is not stable across resubmissions of the
// same session, so it must not be used as a correlation key on its own.
//
// swagger:model TradeRecord
type TradeRecord struct {
	ID         int          `json:"id" example:"12"`
	Time       time.Time    `json:"time"`
	Direction  Direction    `json:"direction" example:"long"`
	EntryPrice float64      `json:"entry_price" example:"5012.25"`
	TotalPnL   float64      `json:"total_pnl" example:"375.00"`
	Exits      []ExitRecord `json:"exits"`
	Quantity   int          `json:"quantity" example:"2"`
	Chase      bool         `json:"chase"`
	ExitTime   time.Time    `json:"exit_time"`
}

// ExitsEqual reports whether both trades hold the same exits in the same order.
func (t TradeRecord) ExitsEqual(o TradeRecord) bool {
	if len(t.Exits) != len(o.Exits) {
		return false
	}
	for i := range t.Exits {
		if !t.Exits[i].Equal(o.Exits[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the trade.
func (t TradeRecord) Clone() TradeRecord {
	out := t
	if t.Exits != nil {
		out.Exits = append([]ExitRecord(nil), t.Exits...)
	}
	return out
}
