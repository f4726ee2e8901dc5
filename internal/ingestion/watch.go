package ingestion

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/guttosm/botjournal/internal/logger"
	"github.com/guttosm/botjournal/internal/storage"
)

// Watch ingests log files as they are written into dir, until ctx is done.
//
// Create and Write events for names matching opts.Glob are collected and a
// file is ingested once it has been quiet for opts.Debounce. Watched files
// always overwrite the stored base day, so the latest file for a date wins.
// Only dir itself is watched, not its subdirectories.
func Watch(ctx context.Context, dir string, repo storage.DaysRepository, opts Options) error {
	log := logger.Component("watcher")
	opts = opts.withDefaults()
	if !doublestar.ValidatePattern(opts.Glob) {
		return fmt.Errorf("invalid glob pattern %q", opts.Glob)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info().Str("dir", dir).Str("glob", opts.Glob).Msg("watching for logs")

	pending := map[string]time.Time{}
	tick := time.NewTicker(opts.Debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !matchesGlob(dir, ev.Name, opts.Glob) {
				continue
			}
			pending[ev.Name] = time.Now()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case now := <-tick.C:
			for path, last := range pending {
				if now.Sub(last) < opts.Debounce {
					continue
				}
				delete(pending, path)
				res, err := ingestFile(ctx, path, repo, true)
				if err != nil {
					log.Error().Str("file", path).Err(err).Msg("watched file failed")
					continue
				}
				log.Info().
					Str("file", filepath.Base(path)).
					Str("date", res.date.Format("2006-01-02")).
					Int("trades", res.trades).
					Msg("watched file ingested")
			}
		}
	}
}

func matchesGlob(dir, path, pattern string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	ok, err := doublestar.Match(pattern, filepath.ToSlash(rel))
	return err == nil && ok
}
