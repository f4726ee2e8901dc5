package compare

import (
	"reflect"
	"sort"
	"strings"

	"github.com/guttosm/botjournal/internal/domain/models"
)

// TradeChanges lists the fields that differ between two trades. A difference
// anywhere in the exits is reported once, as "exits".
func TradeChanges(a, b models.TradeRecord) []models.FieldChange {
	var out []models.FieldChange
	add := func(field string, from, to any) {
		out = append(out, models.FieldChange{Field: field, OldValue: from, NewValue: to})
	}

	if a.ID != b.ID {
		add("id", a.ID, b.ID)
	}
	if !a.Time.Equal(b.Time) {
		add("time", a.Time, b.Time)
	}
	if a.Direction != b.Direction {
		add("direction", a.Direction, b.Direction)
	}
	if a.EntryPrice != b.EntryPrice {
		add("entry_price", a.EntryPrice, b.EntryPrice)
	}
	if a.TotalPnL != b.TotalPnL {
		add("total_pnl", a.TotalPnL, b.TotalPnL)
	}
	if a.Quantity != b.Quantity {
		add("quantity", a.Quantity, b.Quantity)
	}
	if a.Chase != b.Chase {
		add("chase", a.Chase, b.Chase)
	}
	if !a.ExitTime.Equal(b.ExitTime) {
		add("exit_time", a.ExitTime, b.ExitTime)
	}
	if !a.ExitsEqual(b) {
		add("exits", a.Exits, b.Exits)
	}
	return out
}

// HeadlineChanges compares every headline field.
func HeadlineChanges(a, b models.Headline) []models.FieldChange {
	return structChanges("", a, b)
}

// structChanges walks the exported fields of two values of the same struct
// type and reports the ones that differ, named by their json tag.
func structChanges(prefix string, a, b any) []models.FieldChange {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	typ := va.Type()
	var out []models.FieldChange
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		x, y := va.Field(i).Interface(), vb.Field(i).Interface()
		if reflect.DeepEqual(x, y) {
			continue
		}
		out = append(out, models.FieldChange{Field: prefix + jsonName(f), OldValue: x, NewValue: y})
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func sessionChanges(a, b map[string]models.SessionStats) []models.FieldChange {
	var out []models.FieldChange
	for _, name := range unionKeys(a, b) {
		out = append(out, structChanges("sessions."+name+".", a[name], b[name])...)
	}
	return out
}

func protectionChanges(a, b models.ProtectionStats) []models.FieldChange {
	var out []models.FieldChange
	out = append(out, counterChanges("protection.blocked.", a.Blocked, b.Blocked)...)
	out = append(out, counterChanges("protection.fill_protection.", a.FillProtection, b.FillProtection)...)
	if a.ChaseTrades != b.ChaseTrades {
		out = append(out, models.FieldChange{Field: "protection.chase_trades", OldValue: a.ChaseTrades, NewValue: b.ChaseTrades})
	}
	if a.ChaseRestarts != b.ChaseRestarts {
		out = append(out, models.FieldChange{Field: "protection.chase_restarts", OldValue: a.ChaseRestarts, NewValue: b.ChaseRestarts})
	}
	return out
}

func counterChanges(prefix string, a, b map[string]int) []models.FieldChange {
	var out []models.FieldChange
	for _, k := range unionKeys(a, b) {
		if a[k] != b[k] {
			out = append(out, models.FieldChange{Field: prefix + k, OldValue: a[k], NewValue: b[k]})
		}
	}
	return out
}

// unionKeys returns the keys of both maps sorted, so change lists are stable.
func unionKeys[V any](a, b map[string]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		seen[k] = struct{}{}
	}
	for k := range b {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
