package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/guttosm/botjournal/internal/domain/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DaysRepository defines contract for DB operations on parsed trading days.
type DaysRepository interface {
	SaveDay(ctx context.Context, date time.Time, kind models.DayKind, day models.DayAnalysis, rawLog string) error
	GetDay(ctx context.Context, date time.Time, kind models.DayKind) (*models.DayAnalysis, error)
	ListDays(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.DaySummary, error)
	DeleteDay(ctx context.Context, date time.Time, kind models.DayKind) error
	HasIngestionForDate(ctx context.Context, date time.Time) (bool, error)
	UpsertIngestionLog(ctx context.Context, date time.Time, filename string, tradeCount int) error
}

type daysRepository struct {
	db *sql.DB
}

func NewDaysRepository(db *sql.DB) DaysRepository {
	return &daysRepository{db: db}
}

// SaveDay inserts or replaces the analysis stored for (date, kind).
// An empty rawLog keeps the previously stored text.
func (r *daysRepository) SaveDay(ctx context.Context, date time.Time, kind models.DayKind, day models.DayAnalysis, rawLog string) error {
	payload, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO trading_days (trade_date, kind, analysis, raw_log, trade_count, total_pnl)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (trade_date, kind)
		DO UPDATE SET analysis = EXCLUDED.analysis,
					  raw_log = COALESCE(NULLIF(EXCLUDED.raw_log, ''), trading_days.raw_log),
					  trade_count = EXCLUDED.trade_count,
					  total_pnl = EXCLUDED.total_pnl,
					  updated_at = NOW()
	`, date, string(kind), payload, rawLog, len(day.Trades), day.Headline.TotalPnL)
	return err
}

// GetDay returns the stored analysis, or nil when there is none.
func (r *daysRepository) GetDay(ctx context.Context, date time.Time, kind models.DayKind) (*models.DayAnalysis, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT analysis FROM trading_days WHERE trade_date = $1 AND kind = $2`,
		date, string(kind),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var day models.DayAnalysis
	if err := json.Unmarshal(payload, &day); err != nil {
		return nil, fmt.Errorf("decode analysis for %s: %w", date.Format("2006-01-02"), err)
	}
	return &day, nil
}

// ListDays returns stored day summaries ordered by date, then kind.
func (r *daysRepository) ListDays(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.DaySummary, error) {
	// Build dynamic conditions for date range filters.
	conditions := "TRUE"
	var args []interface{}
	if startDate != nil {
		args = append(args, *startDate)
		conditions += fmt.Sprintf(" AND trade_date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		conditions += fmt.Sprintf(" AND trade_date <= $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT trade_date, kind, trade_count, total_pnl, updated_at
		FROM trading_days
		WHERE %s
		ORDER BY trade_date, kind
	`, conditions)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []models.DaySummary{}
	for rows.Next() {
		var s models.DaySummary
		var kind string
		if err := rows.Scan(&s.Date, &kind, &s.TradeCount, &s.TotalPnL, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Kind = models.DayKind(kind)
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteDay removes the analysis stored for (date, kind).
func (r *daysRepository) DeleteDay(ctx context.Context, date time.Time, kind models.DayKind) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trading_days WHERE trade_date = $1 AND kind = $2`, date, string(kind))
	return err
}

// HasIngestionForDate checks if a log file was already ingested for a given day.
func (r *daysRepository) HasIngestionForDate(ctx context.Context, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a given day.
func (r *daysRepository) UpsertIngestionLog(ctx context.Context, date time.Time, filename string, tradeCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_log (file_date, filename, trade_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_date)
		DO UPDATE SET filename = EXCLUDED.filename,
					  trade_count = EXCLUDED.trade_count,
					  ingested_at = NOW()
	`, date, filename, tradeCount)
	return err
}
