package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/guttosm/botjournal/internal/domain/models"
)

type dummyErr struct{}

func (dummyErr) Error() string { return "dummy" }

func newMockRepo(t *testing.T) (*daysRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &daysRepository{db: db}
	cleanup := func() { _ = db.Close() }
	return repo, mock, cleanup
}

func sampleDay() models.DayAnalysis {
	d := models.NewDayAnalysis()
	d.Headline.TotalPnL = 375
	d.Trades = append(d.Trades, models.TradeRecord{
		ID:         12,
		Time:       time.Date(2025, 3, 14, 9, 31, 5, 0, time.UTC),
		Direction:  models.Long,
		EntryPrice: 5012.25,
		TotalPnL:   375,
		Exits:      []models.ExitRecord{{Price: 5018.5, Quantity: 3, PnL: 375, Reason: models.ExitTakeProfit}},
		Quantity:   3,
	})
	return d
}

func TestSaveDay_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	day := sampleDay()

	mock.ExpectExec(`INSERT INTO trading_days \(trade_date, kind, analysis, raw_log, trade_count, total_pnl\)`).
		WithArgs(d, "base", sqlmock.AnyArg(), "raw", 1, 375.0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveDay(context.Background(), d, models.KindBase, day, "raw"); err != nil {
		t.Fatalf("SaveDay: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetDay_SQLMock(t *testing.T) {
	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(sampleDay())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	query := regexp.QuoteMeta("SELECT analysis FROM trading_days WHERE trade_date = $1 AND kind = $2")

	cases := []struct {
		name    string
		setup   func(m sqlmock.Sqlmock)
		wantNil bool
		wantErr bool
	}{
		{
			name: "found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WithArgs(d, "base").
					WillReturnRows(sqlmock.NewRows([]string{"analysis"}).AddRow(payload))
			},
		},
		{
			name: "not found",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WithArgs(d, "base").WillReturnError(sql.ErrNoRows)
			},
			wantNil: true,
		},
		{
			name: "db error",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WithArgs(d, "base").WillReturnError(dummyErr{})
			},
			wantNil: true,
			wantErr: true,
		},
		{
			name: "corrupt payload",
			setup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(query).WithArgs(d, "base").
					WillReturnRows(sqlmock.NewRows([]string{"analysis"}).AddRow([]byte("{not json")))
			},
			wantNil: true,
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()
			tc.setup(mock)

			out, err := repo.GetDay(context.Background(), d, models.KindBase)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
			if (out == nil) != tc.wantNil {
				t.Fatalf("out=%v wantNil=%v", out, tc.wantNil)
			}
			if out != nil && (len(out.Trades) != 1 || out.Trades[0].ID != 12) {
				t.Fatalf("unexpected decoded day: %+v", out)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestListDays_SQLMock(t *testing.T) {
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
	selectRegex := `SELECT trade_date, kind, trade_count, total_pnl, updated_at\s+FROM trading_days`

	cases := []struct {
		name  string
		start *time.Time
		end   *time.Time
		args  []interface{}
	}{
		{name: "no dates", args: nil},
		{name: "with start", start: &day, args: []interface{}{day}},
		{name: "with range", start: &day, end: &day2, args: []interface{}{day, day2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, done := newMockRepo(t)
			defer done()

			rows := sqlmock.NewRows([]string{"trade_date", "kind", "trade_count", "total_pnl", "updated_at"}).
				AddRow(day, "base", 3, 120.5, day).
				AddRow(day, "compare", 4, 140.0, day)
			q := mock.ExpectQuery(selectRegex)
			if len(tc.args) > 0 {
				var args []driver.Value
				for _, a := range tc.args {
					args = append(args, a)
				}
				q = q.WithArgs(args...)
			}
			q.WillReturnRows(rows)

			out, err := repo.ListDays(context.Background(), tc.start, tc.end)
			if err != nil {
				t.Fatalf("ListDays: %v", err)
			}
			if len(out) != 2 || out[1].Kind != models.KindCompare || out[0].TradeCount != 3 {
				t.Fatalf("unexpected summaries: %+v", out)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("unmet expectations: %v", err)
			}
		})
	}
}

func TestIngestionLogAndDelete_SQLMock(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()
	ctx := context.Background()

	d := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_date = $1)")).
		WithArgs(d).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	ok, err := repo.HasIngestionForDate(ctx, d)
	if err != nil || !ok {
		t.Fatalf("HasIngestionForDate: ok=%v err=%v", ok, err)
	}

	mock.ExpectExec(`INSERT INTO ingestion_log \(file_date, filename, trade_count\)`).
		WithArgs(d, "2025-03-14.txt", 10).WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.UpsertIngestionLog(ctx, d, "2025-03-14.txt", 10); err != nil {
		t.Fatalf("UpsertIngestionLog: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM trading_days WHERE trade_date = $1 AND kind = $2")).
		WithArgs(d, "compare").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.DeleteDay(ctx, d, models.KindCompare); err != nil {
		t.Fatalf("DeleteDay: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHasIngestionForDate_Error(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery("SELECT EXISTS").WillReturnError(dummyErr{})
	if _, err := repo.HasIngestionForDate(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewDaysRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if r := NewDaysRepository(db); r == nil {
		t.Fatalf("expected non-nil repository")
	}
}
