package models

// FieldChange is a single differing field between two records.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// TradePair links a base trade with the compare trade it was matched to.
type TradePair struct {
	Base    TradeRecord `json:"base"`
	Compare TradeRecord `json:"compare"`
}

// TradeChange is a matched pair with substantive differences.
type TradeChange struct {
	TradePair
	Changes []FieldChange `json:"changes"`
}

// DiffResult is the outcome of comparing a base day against a compare day.
//
// Every compare trade appears in exactly one of Added, Modified or
// IDOnlyChanged, or was matched to an identical base trade. Every base trade
// appears in Removed or was matched.
//
// swagger:model DiffResult
type DiffResult struct {
	Added            []TradeRecord `json:"added"`
	Removed          []TradeRecord `json:"removed"`
	Modified         []TradeChange `json:"modified"`
	IDOnlyChanged    []TradePair   `json:"id_only_changed"`
	DailyStatChanges []FieldChange `json:"daily_stat_changes"`
}

// HasChanges reports whether the diff found anything worth reviewing.
// ID-only changes do not count.
func (d DiffResult) HasChanges() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0 || len(d.Modified) > 0 || len(d.DailyStatChanges) > 0
}

// MergeOptions selects which parts of a compare day are applied onto base.
type MergeOptions struct {
	MergeAll        bool  `json:"merge_all"`
	MergeTradeIDs   []int `json:"merge_trade_ids"`
	MergeDailyStats bool  `json:"merge_daily_stats"`
}
