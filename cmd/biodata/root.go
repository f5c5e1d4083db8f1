package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joseph-ayodele/biodata-intake/internal/common"
	"github.com/joseph-ayodele/biodata-intake/internal/extract"
	"github.com/joseph-ayodele/biodata-intake/internal/llm/openai"
	"github.com/joseph-ayodele/biodata-intake/internal/pipeline"
	"github.com/joseph-ayodele/biodata-intake/internal/repository"
	"github.com/joseph-ayodele/biodata-intake/internal/rules"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "biodata",
	Short: "Biodata intake and normalization",
	Long: `Turns free-form matrimonial biodata text into structured profiles.

The parse step sanitizes the text, extracts the field record (model
first, deterministic rules as fallback), and prints the review preview.
The accept step takes reviewer-corrected fields and stores the final
profile, feeding the correction back as few-shot context for later
parses.`,
	Version: version,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db-driver", "", "storage backend: sqlite or postgres")
	pf.String("db-url", "", "database DSN (file path for sqlite)")
	pf.String("model", "", "model name for the LLM extractor")
	pf.Bool("no-llm", false, "skip the model extractor, rules only")

	viper.SetEnvPrefix("BIODATA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("db-driver", pf.Lookup("db-driver"))
	_ = viper.BindPFlag("db-url", pf.Lookup("db-url"))
	_ = viper.BindPFlag("model", pf.Lookup("model"))
	_ = viper.BindPFlag("no-llm", pf.Lookup("no-llm"))
}

// loadConfig merges env config with flag/BIODATA_* overrides.
func loadConfig() *common.Config {
	cfg := common.LoadConfig()
	if v := viper.GetString("db-driver"); v != "" {
		cfg.Database.Driver = v
	}
	if v := viper.GetString("db-url"); v != "" {
		cfg.Database.DSN = v
	}
	if v := viper.GetString("model"); v != "" {
		cfg.LLM.Model = v
	}
	if viper.GetBool("no-llm") {
		cfg.LLM.APIKey = ""
	}
	return cfg
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// app bundles everything a subcommand needs.
type app struct {
	cfg     *common.Config
	logger  *slog.Logger
	store   *repository.Store
	service *pipeline.Service
	close   func()
}

func newApp(ctx context.Context) (*app, error) {
	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := newLogger()

	store, closeFn, err := repository.OpenStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	chain := newChain(cfg, logger)
	svc := pipeline.NewService(store, chain, cfg.Pipeline, logger)

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		service: svc,
		close:   closeFn,
	}, nil
}

// newChain builds the extraction chain: model first when an API key is
// configured, deterministic rules always last.
func newChain(cfg *common.Config, logger *slog.Logger) *extract.Chain {
	strategies := []extract.FieldExtractor{}
	if cfg.LLM.APIKey != "" {
		strategies = append(strategies, openai.NewClient(openai.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		}, logger))
	}
	strategies = append(strategies, rules.NewExtractor(logger))
	return extract.NewChain(logger, strategies...)
}
