package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/botjournal/internal/compare"
	"github.com/guttosm/botjournal/internal/domain/models"
	"github.com/guttosm/botjournal/internal/logger"
	"github.com/guttosm/botjournal/internal/parser"
	"github.com/guttosm/botjournal/internal/storage"
)

var (
	// ErrDayNotFound is returned when a requested (date, kind) has no stored analysis.
	ErrDayNotFound = errors.New("day not found")
	// ErrInvalidKind is returned for a kind other than base or compare.
	ErrInvalidKind = errors.New("invalid day kind")
	// ErrEmptyLog is returned when the submitted text is blank.
	ErrEmptyLog = errors.New("log text is empty")
)

// IngestResult describes a freshly parsed and stored day.
type IngestResult struct {
	Date     time.Time          `json:"date"`
	Kind     models.DayKind     `json:"kind"`
	Analysis models.DayAnalysis `json:"analysis"`
}

// JournalService is the business layer between HTTP handlers and the
// repository. It owns parsing, diffing and merging of trading days.
type JournalService interface {
	Ingest(ctx context.Context, rawText string, kind models.DayKind) (*IngestResult, error)
	GetDay(ctx context.Context, date time.Time, kind models.DayKind) (*models.DayAnalysis, error)
	ListDays(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.DaySummary, error)
	DeleteDay(ctx context.Context, date time.Time, kind models.DayKind) error
	Diff(ctx context.Context, date time.Time) (*models.DiffResult, error)
	Merge(ctx context.Context, date time.Time, opts models.MergeOptions) (*models.DayAnalysis, error)
	CompareLogs(baseText, compareText string) models.DiffResult
}

type journalService struct {
	repo storage.DaysRepository
	now  func() time.Time
}

func NewJournalService(repo storage.DaysRepository) JournalService {
	return &journalService{repo: repo, now: time.Now}
}

// Ingest parses rawText and stores it under the date found in the text.
// An empty kind means base.
func (s *journalService) Ingest(ctx context.Context, rawText string, kind models.DayKind) (*IngestResult, error) {
	if kind == "" {
		kind = models.KindBase
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if strings.TrimSpace(rawText) == "" {
		return nil, ErrEmptyLog
	}

	day := parser.Parse(rawText)
	date := parser.ExtractDate(rawText, s.now())

	if err := s.repo.SaveDay(ctx, date, kind, day, rawText); err != nil {
		return nil, fmt.Errorf("save %s %s: %w", date.Format("2006-01-02"), kind, err)
	}

	logger.L().Info().
		Str("date", date.Format("2006-01-02")).
		Str("kind", string(kind)).
		Int("trades", len(day.Trades)).
		Msg("day ingested")

	return &IngestResult{Date: date, Kind: kind, Analysis: day}, nil
}

func (s *journalService) GetDay(ctx context.Context, date time.Time, kind models.DayKind) (*models.DayAnalysis, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	day, err := s.repo.GetDay(ctx, date, kind)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrDayNotFound
	}
	return day, nil
}

func (s *journalService) ListDays(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.DaySummary, error) {
	return s.repo.ListDays(ctx, startDate, endDate)
}

func (s *journalService) DeleteDay(ctx context.Context, date time.Time, kind models.DayKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return s.repo.DeleteDay(ctx, date, kind)
}

// Diff compares the stored compare day against the stored base day.
func (s *journalService) Diff(ctx context.Context, date time.Time) (*models.DiffResult, error) {
	base, other, err := s.loadPair(ctx, date)
	if err != nil {
		return nil, err
	}
	res := compare.CompareDays(*base, *other)
	return &res, nil
}

// Merge applies the selected parts of the compare day onto base, stores the
// result as the new base and drops the compare copy. The save and the drop
// are separate statements; a failed drop is logged and does not fail the merge.
func (s *journalService) Merge(ctx context.Context, date time.Time, opts models.MergeOptions) (*models.DayAnalysis, error) {
	base, other, err := s.loadPair(ctx, date)
	if err != nil {
		return nil, err
	}

	merged := compare.Merge(*base, *other, opts)
	if err := s.repo.SaveDay(ctx, date, models.KindBase, merged, ""); err != nil {
		return nil, fmt.Errorf("save merged day: %w", err)
	}
	// base is already saved at this point
	if err := s.repo.DeleteDay(ctx, date, models.KindCompare); err != nil {
		logger.L().Warn().Err(err).Str("date", date.Format("2006-01-02")).Msg("compare day not dropped after merge")
	}

	logger.L().Info().
		Str("date", date.Format("2006-01-02")).
		Bool("merge_all", opts.MergeAll).
		Ints("trade_ids", opts.MergeTradeIDs).
		Bool("daily_stats", opts.MergeDailyStats).
		Msg("day merged")

	return &merged, nil
}

// CompareLogs diffs two raw log texts without touching storage.
func (s *journalService) CompareLogs(baseText, compareText string) models.DiffResult {
	return compare.CompareDays(parser.Parse(baseText), parser.Parse(compareText))
}

func (s *journalService) loadPair(ctx context.Context, date time.Time) (*models.DayAnalysis, *models.DayAnalysis, error) {
	base, err := s.repo.GetDay(ctx, date, models.KindBase)
	if err != nil {
		return nil, nil, err
	}
	other, err := s.repo.GetDay(ctx, date, models.KindCompare)
	if err != nil {
		return nil, nil, err
	}
	if base == nil || other == nil {
		return nil, nil, ErrDayNotFound
	}
	return base, other, nil
}
