package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/anthropic"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/api"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/config"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/hermes"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/insight"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/processor"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/scheduler"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("speaks starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready")

	// Anthropic client — optional. Without a key the insight generator falls
	// back to rule-based suggestions, so analysis keeps working.
	llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.LLMTimeout)
	if cfg.AnthropicAPIKey == "" {
		slog.Warn("ANTHROPIC_API_KEY not set — using rule-based insights only")
	} else {
		slog.Info("anthropic client ready", "model", cfg.AnthropicModel)
	}

	insights := insight.New(llm, slog.Default())

	// NATS/Hermes — optional. Without it the HTTP endpoints still work, there
	// is just no event-driven triggering or completion fan-out.
	var events processor.Publisher
	hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Warn("NATS unavailable — running HTTP-only", "error", err)
	} else {
		defer hermesClient.Close()
		events = hermesClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	}

	// Processor — the two analysis pipelines
	proc := processor.New(db, insights, events, slog.Default())

	if hermesClient != nil {
		if err := hermesClient.Subscribe(hermes.SubjectAnalysisRequested, proc.HandleCallAnalysisRequested); err != nil {
			slog.Error("failed to subscribe to analysis requests", "error", err)
			os.Exit(1)
		}
	}

	// Daily row hygiene
	maint := scheduler.New(db, cfg.ActivityRetention, cfg.PromptHistoryKeep, slog.Default())
	if err := maint.Start(); err != nil {
		slog.Error("failed to start maintenance scheduler", "error", err)
		os.Exit(1)
	}
	defer maint.Stop()

	// HTTP API
	srv := api.NewServer(cfg.Port, proc, db, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("speaks ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("speaks stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
