package main

//
//  @title           botjournal API
//  @version         1.0
//  @description     Trading bot log journal: parses daily bot logs, stores them and diffs resubmitted days.
//  @termsOfService  https://github.com/guttosm/botjournal
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/botjournal
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        logs
//  @tag.description Submit and compare raw bot logs
//
//  @tag.name        days
//  @tag.description Stored trading days, diff and merge
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/botjournal/config"
	_ "github.com/guttosm/botjournal/docs" // swagger docs
	"github.com/guttosm/botjournal/internal/app"
	"github.com/guttosm/botjournal/internal/ingestion"
	"github.com/guttosm/botjournal/internal/logger"
	"github.com/guttosm/botjournal/internal/storage"
)

// startServer runs the HTTP server in a goroutine and returns it.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown blocks until ctx is cancelled, then shuts server down
// within 10 seconds and runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	<-ctx.Done()
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// ingestOptions builds ingestion options from config, with flag overrides.
func ingestOptions(cfg config.JournalConfig, glob string, parallel int, force bool) ingestion.Options {
	opts := ingestion.Options{
		Glob:     cfg.InputGlob,
		Parallel: cfg.Parallel,
		Force:    force,
		Debounce: cfg.WatchDebounce,
	}
	if glob != "" {
		opts.Glob = glob
	}
	if parallel > 0 {
		opts.Parallel = parallel
	}
	return opts
}

// main is the entry point of botjournal.
//
// Modes (--mode):
//   - ingest: parse every matching log under --dir once and store it as the base day.
//   - watch:  keep ingesting logs as they land in --dir until interrupted.
//   - api:    serve the REST API.
func main() {
	config.LoadConfig()
	logger.Init()

	cfg := config.AppConfig
	mode := flag.String("mode", "api", "Mode: ingest, watch or api")
	dir := flag.String("dir", cfg.Journal.InputDir, "Directory with bot log files")
	glob := flag.String("glob", "", "Doublestar pattern for log files (default from JOURNAL_INPUT_GLOB)")
	parallel := flag.Int("parallel", 0, "Files processed concurrently (0 = config or CPU count, max 8)")
	force := flag.Bool("force", false, "Re-ingest dates already recorded in the ingestion log")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := ingestOptions(cfg.Journal, *glob, *parallel, *force)

	switch *mode {
	case "ingest", "watch":
		db, err := app.InitPostgres(cfg)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()
		repo := storage.NewDaysRepository(db)

		if *mode == "ingest" {
			logger.L().Info().Str("dir", *dir).Msg("running ingestion")
			if err := ingestion.ProcessDirectory(ctx, *dir, repo, opts); err != nil {
				logger.L().Error().Err(err).Msg("ingestion failed")
				return
			}
			logger.L().Info().Msg("ingestion completed successfully")
			return
		}

		if err := ingestion.Watch(ctx, *dir, repo, opts); err != nil {
			logger.L().Error().Err(err).Msg("watch failed")
			return
		}
		logger.L().Info().Msg("watcher stopped")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
