package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/botjournal/config"
	"github.com/guttosm/botjournal/internal/api"
	"github.com/guttosm/botjournal/internal/service"
	"github.com/guttosm/botjournal/internal/storage"
)

// InitializeApp wires the API mode: Postgres, the days repository, the
// journal service, HTTP handlers, router and health probes.
//
// Returns the router, a cleanup func closing the database, and any
// initialization error.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	repo := storage.NewDaysRepository(db)
	svc := service.NewJournalService(repo)
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler, api.RouterOptions{
		RateLimit:      cfg.Server.RateLimit,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	api.NewHealthHandler(db.PingContext).Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}
