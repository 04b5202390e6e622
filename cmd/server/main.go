package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/grievance-hub/grievance-hub/internal/api/http"
	"github.com/grievance-hub/grievance-hub/internal/application/alert"
	"github.com/grievance-hub/grievance-hub/internal/application/grievance"
	"github.com/grievance-hub/grievance-hub/internal/config"
	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
	"github.com/grievance-hub/grievance-hub/internal/domain/oracle"
	"github.com/grievance-hub/grievance-hub/internal/infrastructure/directory"
	"github.com/grievance-hub/grievance-hub/internal/infrastructure/ledger"
	"github.com/grievance-hub/grievance-hub/internal/infrastructure/postgres"
	"github.com/grievance-hub/grievance-hub/internal/registry"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()

	var archive grievance.Archiver
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool, "internal/migrations"); err != nil {
			log.Fatalf("migration error: %v", err)
		}
		archive = postgres.NewArchiveRepository(pool)
	} else {
		logger.Warn().Msg("DATABASE_URL unset, archive mirror disabled")
	}

	dir := directory.New(
		complaint.Principal(cfg.Administrator),
		complaint.Principal(cfg.Treasury),
	)
	for _, p := range cfg.Participants {
		_ = dir.Register(complaint.Principal(p))
	}
	if cfg.AdminSecret != "" {
		if err := dir.SetAdminSecret(cfg.AdminSecret); err != nil {
			log.Fatalf("admin secret error: %v", err)
		}
	} else {
		logger.Warn().Msg("ADMIN_SECRET unset, admin API disabled")
	}

	funds := ledger.New()

	reg := registry.New(oracle.NewLogicalClock(cfg.StartHeight), dir, funds, registry.Config{
		Administrator: complaint.Principal(cfg.Administrator),
		Treasury:      complaint.Principal(cfg.Treasury),
		EscalationFee: cfg.EscalationFee,
	})

	alerts, err := alert.Parse(cfg.AlertRules)
	if err != nil {
		log.Fatalf("alert rules error: %v", err)
	}

	svc := grievance.NewService(reg, archive, alerts, logger)
	apiServer := httpapi.NewServer(svc, dir, funds, logger)

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      apiServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
