package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/nutrilog/backend/config"
	"github.com/pageza/nutrilog/backend/internal/api"
	"github.com/pageza/nutrilog/backend/internal/database"
	"github.com/pageza/nutrilog/backend/internal/logging"
	"github.com/pageza/nutrilog/backend/internal/server"
	"github.com/pageza/nutrilog/backend/internal/service"
	"github.com/pageza/nutrilog/backend/internal/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
	logger.Info().Msg("server stopped")
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := database.NewBackend(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	state, err := store.Open(ctx, backend, cfg.StateKey, logger)
	if err != nil {
		_ = backend.Close()
		return fmt.Errorf("failed to load state: %w", err)
	}
	defer state.Close()

	ai := service.NewGeminiService(service.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiAPIURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.AITimeout,
	}, logger)
	if cfg.GeminiAPIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set, AI features will fail")
	}
	tasks := service.NewTaskRunner(cfg.AITimeout, logger)

	srv := server.New(cfg, api.Services{
		Profile:         service.NewProfileService(state, logger),
		FoodLog:         service.NewFoodLogService(state, ai, tasks, logger),
		Health:          service.NewHealthService(state, ai, tasks, logger),
		Recommendations: service.NewRecommendationService(state, ai, tasks, logger),
		Data:            service.NewDataService(state, logger),
		Tasks:           tasks,
	}, state, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return shutdown(shutdownCtx, srv, tasks, logger)
	})
	return g.Wait()
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdown stops the server, then drains running tasks even when the server
// did not stop cleanly, so the store outlives every task that writes to it.
func shutdown(ctx context.Context, srv, tasks shutdowner, logger zerolog.Logger) error {
	srvErr := srv.Shutdown(ctx)
	if err := tasks.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("abandoned running tasks")
	}
	if srvErr != nil {
		return fmt.Errorf("server shutdown: %w", srvErr)
	}
	return nil
}
