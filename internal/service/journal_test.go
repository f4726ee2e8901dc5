package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guttosm/botjournal/internal/domain/models"
)

type dayKey struct {
	date string
	kind models.DayKind
}

type stubRepo struct {
	days    map[dayKey]models.DayAnalysis
	raw     map[dayKey]string
	deleted   []dayKey
	err       error
	deleteErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{days: map[dayKey]models.DayAnalysis{}, raw: map[dayKey]string{}}
}

func key(d time.Time, k models.DayKind) dayKey { return dayKey{d.Format("2006-01-02"), k} }

func (s *stubRepo) SaveDay(_ context.Context, d time.Time, k models.DayKind, day models.DayAnalysis, raw string) error {
	if s.err != nil {
		return s.err
	}
	s.days[key(d, k)] = day
	if raw != "" {
		s.raw[key(d, k)] = raw
	}
	return nil
}

func (s *stubRepo) GetDay(_ context.Context, d time.Time, k models.DayKind) (*models.DayAnalysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	day, ok := s.days[key(d, k)]
	if !ok {
		return nil, nil
	}
	return &day, nil
}

func (s *stubRepo) ListDays(_ context.Context, _ *time.Time, _ *time.Time) ([]models.DaySummary, error) {
	out := []models.DaySummary{}
	for k, d := range s.days {
		date, _ := time.Parse("2006-01-02", k.date)
		out = append(out, models.DaySummary{Date: date, Kind: k.kind, TradeCount: len(d.Trades)})
	}
	return out, s.err
}

func (s *stubRepo) DeleteDay(_ context.Context, d time.Time, k models.DayKind) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.days, key(d, k))
	s.deleted = append(s.deleted, key(d, k))
	return s.err
}

func (s *stubRepo) HasIngestionForDate(_ context.Context, _ time.Time) (bool, error) {
	return false, nil
}

func (s *stubRepo) UpsertIngestionLog(_ context.Context, _ time.Time, _ string, _ int) error {
	return nil
}

const baseLog = `2025-03-14
TOTAL PnL: $100.00
ORDER FILLED - Trade #1: 2025-03-14 9:31:05 AM | LONG @ 5000.00
POSITION CLOSED - Trade #1: 2025-03-14 9:40:00 AM | Exit @ 5004.00 [TP] | Reason: target
PNL UPDATE - Trade #1: Qty: 1 | PnL: $100.00 | Points: 4
TRADE COMPLETED - Trade #1: 2025-03-14 9:40:00 AM | Total PnL: $100.00
`

const compareLog = `2025-03-14
TOTAL PnL: $180.00
ORDER FILLED - Trade #1: 2025-03-14 9:31:05 AM | LONG @ 5000.00
POSITION CLOSED - Trade #1: 2025-03-14 9:40:00 AM | Exit @ 5004.00 [TP] | Reason: target
PNL UPDATE - Trade #1: Qty: 1 | PnL: $100.00 | Points: 4
TRADE COMPLETED - Trade #1: 2025-03-14 9:40:00 AM | Total PnL: $100.00
ORDER FILLED - Trade #2: 2025-03-14 10:00:00 AM | SHORT @ 5010.00
POSITION CLOSED - Trade #2: 2025-03-14 10:05:00 AM | Exit @ 5006.80 | Reason: take profit
PNL UPDATE - Trade #2: Qty: 1 | PnL: $80.00 | Points: 3.2
TRADE COMPLETED - Trade #2: 2025-03-14 10:05:00 AM | Total PnL: $80.00
`

var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

func newTestService(repo *stubRepo) *journalService {
	return &journalService{repo: repo, now: func() time.Time { return time.Date(2030, 1, 2, 15, 0, 0, 0, time.UTC) }}
}

func TestIngest(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		kind     models.DayKind
		wantErr  error
		wantDate time.Time
		wantKind models.DayKind
	}{
		{name: "default kind is base", text: baseLog, wantDate: day, wantKind: models.KindBase},
		{name: "compare kind", text: compareLog, kind: models.KindCompare, wantDate: day, wantKind: models.KindCompare},
		{name: "no date falls back to today", text: "TOTAL PnL: $5.00", wantDate: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC), wantKind: models.KindBase},
		{name: "bad kind", text: baseLog, kind: "draft", wantErr: ErrInvalidKind},
		{name: "empty text", text: "", wantErr: ErrEmptyLog},
		{name: "whitespace only", text: "  \n\t\r\n ", wantErr: ErrEmptyLog},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubRepo()
			svc := newTestService(repo)
			res, err := svc.Ingest(context.Background(), tc.text, tc.kind)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ingest: %v", err)
			}
			if !res.Date.Equal(tc.wantDate) || res.Kind != tc.wantKind {
				t.Fatalf("got date=%v kind=%s", res.Date, res.Kind)
			}
			if _, ok := repo.days[key(tc.wantDate, tc.wantKind)]; !ok {
				t.Fatalf("day not stored")
			}
		})
	}
}

func TestIngest_RepoError(t *testing.T) {
	repo := newStubRepo()
	repo.err = errors.New("db down")
	if _, err := newTestService(repo).Ingest(context.Background(), baseLog, models.KindBase); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGetDay(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.GetDay(ctx, day, models.KindBase); !errors.Is(err, ErrDayNotFound) {
		t.Fatalf("want ErrDayNotFound, got %v", err)
	}
	if _, err := svc.GetDay(ctx, day, "other"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("want ErrInvalidKind, got %v", err)
	}
	if _, err := svc.Ingest(ctx, baseLog, models.KindBase); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	got, err := svc.GetDay(ctx, day, models.KindBase)
	if err != nil || got == nil || len(got.Trades) != 1 {
		t.Fatalf("get: %+v %v", got, err)
	}
}

func TestDiff(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, baseLog, models.KindBase); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if _, err := svc.Diff(ctx, day); !errors.Is(err, ErrDayNotFound) {
		t.Fatalf("want ErrDayNotFound without compare day, got %v", err)
	}
	if _, err := svc.Ingest(ctx, compareLog, models.KindCompare); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	res, err := svc.Diff(ctx, day)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if len(res.Added) != 1 || res.Added[0].ID != 2 {
		t.Fatalf("want trade 2 added, got %+v", res.Added)
	}
	if len(res.Modified) != 0 || len(res.Removed) != 0 {
		t.Fatalf("unexpected diff %+v", res)
	}
	if len(res.DailyStatChanges) == 0 || res.DailyStatChanges[0].Field != "total_pnl" {
		t.Fatalf("want total_pnl change, got %+v", res.DailyStatChanges)
	}
}

func TestMerge(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Merge(ctx, day, models.MergeOptions{MergeAll: true}); !errors.Is(err, ErrDayNotFound) {
		t.Fatalf("want ErrDayNotFound, got %v", err)
	}

	_, _ = svc.Ingest(ctx, baseLog, models.KindBase)
	_, _ = svc.Ingest(ctx, compareLog, models.KindCompare)

	merged, err := svc.Merge(ctx, day, models.MergeOptions{MergeTradeIDs: []int{2}, MergeDailyStats: true})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(merged.Trades) != 2 || merged.Headline.TotalPnL != 180 {
		t.Fatalf("unexpected merged day: %+v", merged.Headline)
	}
	stored := repo.days[key(day, models.KindBase)]
	if len(stored.Trades) != 2 {
		t.Fatalf("merged day not stored as base")
	}
	if _, ok := repo.days[key(day, models.KindCompare)]; ok {
		t.Fatalf("compare copy should be deleted")
	}
	if repo.raw[key(day, models.KindBase)] != baseLog {
		t.Fatalf("base raw log should be kept")
	}
}

func TestMerge_DropFailureKeepsMergedBase(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	_, _ = svc.Ingest(ctx, baseLog, models.KindBase)
	_, _ = svc.Ingest(ctx, compareLog, models.KindCompare)
	repo.deleteErr = errors.New("connection reset")

	merged, err := svc.Merge(ctx, day, models.MergeOptions{MergeAll: true})
	if err != nil {
		t.Fatalf("merge should succeed once base is saved, got %v", err)
	}
	if len(merged.Trades) != 2 || len(repo.days[key(day, models.KindBase)].Trades) != 2 {
		t.Fatalf("merged base not stored")
	}
	if _, ok := repo.days[key(day, models.KindCompare)]; !ok {
		t.Fatalf("compare copy should still be present after a failed drop")
	}
}

func TestListAndDelete(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	_, _ = svc.Ingest(ctx, baseLog, models.KindBase)

	out, err := svc.ListDays(ctx, nil, nil)
	if err != nil || len(out) != 1 {
		t.Fatalf("list: %v %v", out, err)
	}
	if err := svc.DeleteDay(ctx, day, "bogus"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("want ErrInvalidKind, got %v", err)
	}
	if err := svc.DeleteDay(ctx, day, models.KindBase); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.days) != 0 {
		t.Fatalf("day not deleted")
	}
}

func TestCompareLogs(t *testing.T) {
	svc := NewJournalService(newStubRepo())
	if res := svc.CompareLogs(baseLog, baseLog); res.HasChanges() {
		t.Fatalf("identical logs should not differ: %+v", res)
	}
	res := svc.CompareLogs(baseLog, compareLog)
	if len(res.Added) != 1 {
		t.Fatalf("want 1 added, got %+v", res)
	}
}
