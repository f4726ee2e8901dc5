package parser

import (
	"testing"
	"time"
)

func TestExtractDate(t *testing.T) {
	now := time.Date(2025, 9, 20, 18, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		raw  string
		want time.Time
	}{
		{name: "first date wins", raw: "run 2025-03-14 ... 2025-03-15", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{name: "invalid date skipped", raw: "2025-13-40 then 2025-03-15", want: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "fallback to today", raw: "no dates here", want: time.Date(2025, 9, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractDate(tc.raw, now); !got.Equal(tc.want) {
				t.Fatalf("want %s got %s", tc.want, got)
			}
		})
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{in: "$1,234.50", want: 1234.5, ok: true},
		{in: "-$12.00", want: -12, ok: true},
		{in: "$-12.00", want: -12, ok: true},
		{in: "$", ok: false},
		{in: "$abc", ok: false},
	}
	for _, tc := range cases {
		got, ok := parseMoney(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("%q: want (%v,%v) got (%v,%v)", tc.in, tc.want, tc.ok, got, ok)
		}
	}
}
