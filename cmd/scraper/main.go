package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/courtdata/flashfeed/external/flashscore"
	"github.com/courtdata/flashfeed/internal/config"
	"github.com/courtdata/flashfeed/internal/decoder"
	"github.com/courtdata/flashfeed/internal/export"
	"github.com/courtdata/flashfeed/internal/platform/logging"
	"github.com/courtdata/flashfeed/internal/platform/resilience"
	"github.com/courtdata/flashfeed/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SnapshotDir != "" {
		if err := os.MkdirAll(cfg.SnapshotDir, 0o755); err != nil {
			logger.Error("create snapshot dir", "dir", cfg.SnapshotDir, "error", err)
			os.Exit(1)
		}
	}

	client := flashscore.NewClient(flashscore.ClientConfig{
		HTTPClient: &http.Client{Timeout: cfg.FeedTimeout},
		MaxRetries: cfg.FeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
		SnapshotDir: cfg.SnapshotDir,
	})

	service := usecase.NewIngestionService(client, usecase.IngestionConfig{
		TournamentIndexURL: cfg.TournamentIndexURL,
		ArchiveBaseURL:     cfg.ArchiveBaseURL,
		LinkBases:          decoder.DefaultLinkBases(),
		Workers:            cfg.Workers,
	}, logger)

	result, err := service.Ingest(ctx)
	if err != nil {
		logger.Error("ingestion failed", "error", err)
		os.Exit(1)
	}

	if err := writeOutputs(cfg.OutputDir, result); err != nil {
		logger.Error("write outputs failed", "dir", cfg.OutputDir, "error", err)
		os.Exit(1)
	}

	logger.Info("scrape complete",
		"tournaments", len(result.Tournaments),
		"matches", result.MatchCount,
		"failed_editions", result.FailedEditions,
		"output_dir", cfg.OutputDir,
	)
}

// writeOutputs renders one CSV per tournament edition and a combined JSON of
// every row.
func writeOutputs(dir string, result usecase.IngestionResult) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var combined []map[string]string
	for _, tournament := range result.Tournaments {
		rows := tournament.Rows()
		combined = append(combined, rows...)

		name := fmt.Sprintf("%s_%s.csv", tournament.Slug, tournament.Year)
		if err := writeFile(filepath.Join(dir, name), func(f *os.File) error {
			return export.WriteCSV(f, rows)
		}); err != nil {
			return err
		}
	}

	return writeFile(filepath.Join(dir, "matches.json"), func(f *os.File) error {
		return export.WriteJSON(f, combined)
	})
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
