package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adiwahyudi/board-api/internal/apperr"
	"github.com/adiwahyudi/board-api/internal/application"
	apptasks "github.com/adiwahyudi/board-api/internal/application/tasks"
	"github.com/adiwahyudi/board-api/internal/config"
	domain "github.com/adiwahyudi/board-api/internal/domain/tasks"
	mysqlp "github.com/adiwahyudi/board-api/internal/infra/db/mysql"
	postgresp "github.com/adiwahyudi/board-api/internal/infra/db/postgres"
	"github.com/adiwahyudi/board-api/internal/infra/httpserver"
	"github.com/adiwahyudi/board-api/internal/logging"
	"github.com/adiwahyudi/board-api/internal/middleware"
	"github.com/adiwahyudi/board-api/internal/telemetry"
)

func main() {
	// optional .env for local development
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		logging.New("").Error("config load error", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging.Level)

	// telemetry pipeline first, so even startup failures get reported
	resolver, err := telemetry.NewResolver(
		cfg.Telemetry.BoardID,
		cfg.Telemetry.CollectorURL,
		cfg.Telemetry.HostPattern,
	)
	if err != nil {
		logger.Error("invalid tenant host pattern", "error", err)
		os.Exit(1)
	}
	dispatcher := telemetry.NewDispatcher(cfg.Telemetry.CollectorURL, logger)
	interceptor := telemetry.NewInterceptor(resolver, dispatcher, logger)

	// fatal reports the startup failure fire-and-forget, then exits
	fatal := func(err error) {
		interceptor.HandleStartupFailure(err)
		os.Exit(1)
	}

	ctx := context.Background()

	// connect store per configured driver
	var (
		db   *sql.DB
		repo domain.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			fatal(apperr.Wrap(err, apperr.WithKind("DatabaseError")))
		}
		if err := postgresp.Migrate(db); err != nil {
			fatal(apperr.Wrap(err, apperr.WithKind("MigrationError")))
		}
		repo = postgresp.NewTaskRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			fatal(apperr.Wrap(err, apperr.WithKind("DatabaseError")))
		}
		if err := mysqlp.Migrate(db); err != nil {
			fatal(apperr.Wrap(err, apperr.WithKind("MigrationError")))
		}
		repo = mysqlp.NewTaskRepository(db)
	}
	defer db.Close()

	// init service
	svc := &apptasks.Service{
		Repo:  repo,
		Clock: application.SystemClock{},
	}

	// init router
	checkers := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}
	mux := httpserver.NewRouter(svc, interceptor, resolver, checkers, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(apperr.Wrap(err, apperr.WithKind("ServerError")))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
