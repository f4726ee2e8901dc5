package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/guttosm/botjournal/internal/domain/models"
	"github.com/guttosm/botjournal/internal/logger"
	"github.com/guttosm/botjournal/internal/parser"
	"github.com/guttosm/botjournal/internal/storage"
)

const (
	DefaultGlob     = "**/*.txt"
	maxParallel     = 8
	defaultDebounce = 500 * time.Millisecond
)

// Options controls how a directory of bot logs is ingested.
type Options struct {
	Glob     string        // doublestar pattern relative to the directory
	Parallel int           // files processed at once; 0 means min(NumCPU, 8)
	Force    bool          // re-ingest dates already present in ingestion_log
	Debounce time.Duration // Watch only: quiet period before a changed file is read
}

func (o Options) withDefaults() Options {
	if o.Glob == "" {
		o.Glob = DefaultGlob
	}
	if o.Parallel <= 0 {
		o.Parallel = runtime.NumCPU()
	}
	if o.Parallel > maxParallel {
		o.Parallel = maxParallel
	}
	if o.Debounce <= 0 {
		o.Debounce = defaultDebounce
	}
	return o
}

// nowFunc supplies the fallback date for logs that carry none; tests override it.
var nowFunc = time.Now

// ProcessDirectory ingests every log under dir matching opts.Glob as a base day.
//
// Behavior:
//   - Files are matched with doublestar and processed in lexical order, at most
//     opts.Parallel at a time.
//   - The trading date comes from the log text, then the file name, then today.
//   - A date already recorded in ingestion_log is skipped unless opts.Force.
//   - The first failing file cancels the remaining ones and its error is returned.
func ProcessDirectory(ctx context.Context, dir string, repo storage.DaysRepository, opts Options) error {
	log := logger.Component("ingestion")
	opts = opts.withDefaults()
	if !doublestar.ValidatePattern(opts.Glob) {
		return fmt.Errorf("invalid glob pattern %q", opts.Glob)
	}
	if info, err := os.Stat(dir); err != nil {
		return fmt.Errorf("input dir: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("input dir %s is not a directory", dir)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), opts.Glob, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("glob %q: %w", opts.Glob, err)
	}
	sort.Strings(matches)

	if len(matches) == 0 {
		log.Warn().Str("dir", dir).Str("glob", opts.Glob).Msg("no log files found")
		return nil
	}

	log.Info().
		Int("files", len(matches)).
		Str("dir", dir).
		Int("max_parallel", opts.Parallel).
		Bool("force", opts.Force).
		Msg("ingestion start")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)

	for i, rel := range matches {
		idx := i
		rel := rel
		path := filepath.Join(dir, filepath.FromSlash(rel))
		g.Go(func() error {
			start := time.Now()
			res, err := ingestFile(gctx, path, repo, opts.Force)
			if err != nil {
				log.Error().Str("file", rel).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", path, err)
			}
			log.Info().
				Int("idx", idx+1).
				Int("total", len(matches)).
				Str("file", rel).
				Str("date", res.date.Format("2006-01-02")).
				Int("trades", res.trades).
				Bool("skipped", res.skipped).
				Dur("elapsed", time.Since(start)).
				Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

type fileResult struct {
	date    time.Time
	trades  int
	skipped bool
}

// ingestFile parses one log file and stores it as the base day for its date.
func ingestFile(ctx context.Context, path string, repo storage.DaysRepository, force bool) (fileResult, error) {
	if err := ctx.Err(); err != nil {
		return fileResult{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fileResult{}, fmt.Errorf("read: %w", err)
	}
	text := string(raw)
	name := filepath.Base(path)

	// content first so an in-log date always beats the file name
	date := parser.ExtractDate(text+"\n"+name, nowFunc())
	res := fileResult{date: date}

	exists, err := repo.HasIngestionForDate(ctx, date)
	if err != nil {
		return res, fmt.Errorf("check ingestion log: %w", err)
	}
	if exists && !force {
		res.skipped = true
		return res, nil
	}

	day := parser.Parse(text)
	res.trades = len(day.Trades)

	if err := repo.SaveDay(ctx, date, models.KindBase, day, text); err != nil {
		return res, fmt.Errorf("save day: %w", err)
	}
	if err := repo.UpsertIngestionLog(ctx, date, name, res.trades); err != nil {
		return res, fmt.Errorf("upsert ingestion log: %w", err)
	}
	return res, nil
}
