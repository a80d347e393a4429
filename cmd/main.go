package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brightside/internal/ai"
	"brightside/internal/auth"
	"brightside/internal/config"
	"brightside/internal/database"
	"brightside/internal/inspiration"
	"brightside/internal/news"
	"brightside/internal/rest"
	"brightside/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	aiClient := initAIClient(ctx, cfg.APIKey, log)

	var (
		searcher    ai.Searcher
		illustrator ai.Illustrator
		narrator    ai.Narrator
		muse        ai.Muse
	)
	if aiClient != nil {
		searcher = aiClient
		illustrator = aiClient
		narrator = aiClient
		muse = aiClient
	}

	prefetcher := news.NewPrefetcher(db, illustrator, log)
	defer prefetcher.Stop()

	newsSvc := news.NewService(db, searcher, illustrator, narrator, prefetcher, log)
	authSvc := auth.New(db, cfg.JWTSecret, cfg.TokenTTL, log)
	inspSvc := inspiration.New(db, muse, log)

	sched := scheduler.New(ctx, db, prefetcher, inspSvc, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"imageSweepSpec", scheduler.HourlyImageSweepSpec,
			"maintenanceSpec", scheduler.NightlyMaintenanceSpec)

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"imageSweepSpec", scheduler.HourlyImageSweepSpec,
		"maintenanceSpec", scheduler.NightlyMaintenanceSpec)

	server := rest.New(newsSvc, authSvc, inspSvc, db, log)

	go func() {
		if serveErr := server.Start(cfg.Addr); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Server stopped",
				"error", serveErr,
				"addr", cfg.Addr)

			cancel()
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"addr", cfg.Addr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down server",
			"error", err)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initAIClient(ctx context.Context, apiKey string, log *slog.Logger) *ai.Client {
	if apiKey == "" {
		log.WarnContext(ctx, "API key is missing so generation is disabled",
			"envVars", "BRIGHTSIDE_API_KEY, OPENAI_API_KEY, API_KEY")

		return nil
	}

	client, err := ai.NewClient(apiKey, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to create AI client so generation is disabled",
			"error", err)

		return nil
	}

	log.InfoContext(ctx, "AI client is initialized",
		"provider", "openai")

	return client
}
