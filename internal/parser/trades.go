package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/guttosm/botjournal/internal/domain/models"
)

const chaseMarker = "[CHASE]"

var (
	fillRe = regexp.MustCompile(`ORDER FILLED - Trade #` + intPattern + `:\s*` + tsPattern +
		sep + `(?i:(long|short))\s*@\s*` + numPattern)
	closeRe = regexp.MustCompile(`POSITION CLOSED - Trade #` + intPattern + `:\s*` + tsPattern +
		sep + `Exit @\s*` + numPattern +
		`(?:\s*\[(?i:(tp|sl|manual))\])?` +
		`(?:` + sep + `Reason:\s*(.*))?`)
	pnlUpdateRe = regexp.MustCompile(`PNL UPDATE - Trade #` + intPattern + `:\s*Qty:\s*` + intPattern +
		sep + `PnL:\s*` + moneyPattern +
		`(?:` + sep + `Points:\s*` + numPattern + `)?`)
	completedRe = regexp.MustCompile(`TRADE COMPLETED - Trade #` + intPattern + `:\s*` + tsPattern +
		sep + `Total PnL:\s*` + moneyPattern)
)

// tradeBuilder accumulates one trade across its fill, close, PnL update and
// completion lines.
type tradeBuilder struct {
	id         int
	opened     time.Time
	direction  models.Direction
	entryPrice float64
	exits      []models.ExitRecord
}

// build finalizes the trade, reporting false when required parts are missing.
func (b *tradeBuilder) build(closed time.Time, totalPnL float64, chase bool) (models.TradeRecord, bool) {
	if b.direction == "" || b.entryPrice == 0 || b.opened.IsZero() || len(b.exits) == 0 {
		return models.TradeRecord{}, false
	}
	qty := 0
	for _, e := range b.exits {
		qty += e.Quantity
	}
	return models.TradeRecord{
		ID:         b.id,
		Time:       b.opened,
		Direction:  b.direction,
		EntryPrice: b.entryPrice,
		TotalPnL:   totalPnL,
		Exits:      append([]models.ExitRecord(nil), b.exits...),
		Quantity:   qty,
		Chase:      chase,
		ExitTime:   closed,
	}, true
}

// tradeRule handles one of the per-trade marker lines.
type tradeRule struct {
	marker string
	re     *regexp.Regexp
	apply  func(m []string, line string, s *state)
}

var tradeRules = []tradeRule{
	{marker: "ORDER FILLED - ", re: fillRe, apply: onFill},
	{marker: "POSITION CLOSED - ", re: closeRe, apply: onClose},
	{marker: "PNL UPDATE - ", re: pnlUpdateRe, apply: onPnLUpdate},
	{marker: "TRADE COMPLETED - ", re: completedRe, apply: onCompleted},
}

// onFill opens a trade. A second fill for the same ID starts over.
func onFill(m []string, _ string, s *state) {
	f := newFields()
	b := &tradeBuilder{
		id:         f.integer(m[1]),
		opened:     f.timestamp(m[2]),
		direction:  f.direction(m[3]),
		entryPrice: f.number(m[4]),
	}
	if !f.ok {
		return
	}
	s.open[b.id] = b
}

// onClose appends an exit stub; quantity and PnL arrive with the next PnL update.
func onClose(m []string, _ string, s *state) {
	f := newFields()
	id := f.integer(m[1])
	at := f.timestamp(m[2])
	price := f.number(m[3])
	if !f.ok {
		return
	}
	b, ok := s.open[id]
	if !ok {
		return
	}
	text := strings.TrimSpace(m[5])
	b.exits = append(b.exits, models.ExitRecord{
		Price:      price,
		Reason:     classifyExit(m[4], text),
		ReasonText: text,
		Time:       at,
	})
}

// onPnLUpdate fills the most recent exit stub. Repeated updates overwrite it.
func onPnLUpdate(m []string, _ string, s *state) {
	f := newFields()
	id := f.integer(m[1])
	qty := f.integer(m[2])
	pnl := f.money(m[3])
	var points float64
	if m[4] != "" {
		points = f.number(m[4])
	}
	if !f.ok {
		return
	}
	b, ok := s.open[id]
	if !ok || len(b.exits) == 0 {
		return
	}
	last := &b.exits[len(b.exits)-1]
	last.Quantity = qty
	last.PnL = pnl
	last.Points = points
}

// onCompleted emits the trade when complete and drops it from the working set
// either way.
func onCompleted(m []string, line string, s *state) {
	f := newFields()
	id := f.integer(m[1])
	closed := f.timestamp(m[2])
	total := f.money(m[3])
	if !f.ok {
		return
	}
	b, ok := s.open[id]
	if !ok {
		return
	}
	delete(s.open, id)
	if tr, ok := b.build(closed, total, strings.Contains(line, chaseMarker)); ok {
		s.day.Trades = append(s.day.Trades, tr)
	}
}
