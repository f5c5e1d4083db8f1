package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/export"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/ingest"
	"github.com/joseph-ayodele/biodata-intake/internal/llm/openai"
	"github.com/joseph-ayodele/biodata-intake/internal/pipeline"
	"github.com/joseph-ayodele/biodata-intake/internal/repository"
	"github.com/joseph-ayodele/biodata-intake/internal/rules"
	"github.com/joseph-ayodele/biodata-intake/internal/server"
)

func main() {
	// Logger
	zlog, _ := zap.NewProduction()
	defer func() { _ = zlog.Sync() }()
	log := zlog.Sugar()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Store
	store, closeStore, err := repository.OpenStore(ctx, cfg.Database, slogger)
	if err != nil {
		log.Fatalf("opening store: %v", err)
	}
	defer closeStore()

	// Extraction chain: model first when configured, rules always last
	strategies := []extract.FieldExtractor{}
	if cfg.LLM.APIKey != "" {
		strategies = append(strategies, openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, slogger))
	} else {
		log.Infow("no API key configured, rules-only extraction")
	}
	strategies = append(strategies, rules.NewExtractor(slogger))
	chain := extract.NewChain(slogger, strategies...)

	svc := pipeline.NewService(store, chain, cfg.Pipeline, slogger)
	ing := ingest.NewFSIngestor(store.Intakes, slogger)
	exp := export.NewService(store.Profiles, slogger)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.New(svc, ing, exp, zlog).Handler(),
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Infow("bye")
}
