package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-entities/internal/config"
	"github.com/jonathan/resume-entities/internal/db"
	"github.com/jonathan/resume-entities/internal/extraction"
	"github.com/jonathan/resume-entities/internal/feedback"
	"github.com/jonathan/resume-entities/internal/ingestion"
	"github.com/jonathan/resume-entities/internal/logger"
	"github.com/jonathan/resume-entities/internal/metrics"
	"github.com/jonathan/resume-entities/internal/segmentation"
	"github.com/jonathan/resume-entities/internal/sqlitestore"
	"github.com/jonathan/resume-entities/internal/verification"
)

// Set by setup before any command runs.
var (
	appConfig *config.Config
	log       zerolog.Logger
	registry  *prometheus.Registry
	collector *metrics.Collector
)

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		if _, err := logger.ParseLevel(logLevel); err != nil {
			return err
		}
		cfg.Logger.Level = logLevel
	}
	if logFormat != "" {
		if logFormat != logger.FormatJSON && logFormat != logger.FormatPretty {
			return fmt.Errorf("--log-format must be %q or %q", logger.FormatJSON, logger.FormatPretty)
		}
		cfg.Logger.Format = logFormat
	}

	appConfig = cfg
	log = logger.New(cfg.Logger, cmd.ErrOrStderr())
	registry = prometheus.NewRegistry()
	collector, err = metrics.NewCollector(registry)
	if err != nil {
		return err
	}
	return nil
}

func dumpMetrics(cmd *cobra.Command, _ []string) error {
	if !printMetrics {
		return nil
	}
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(cmd.ErrOrStderr(), mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func newPipeline() *extraction.Pipeline {
	return extraction.NewPipeline(
		extraction.WithSegmenter(segmentation.New(appConfig.SegmentationOptions())),
		extraction.WithExtractor(extraction.NewExtractor(appConfig.ExtractionOptions())),
		extraction.WithLogger(log),
		extraction.WithMetrics(collector),
	)
}

func newVerifier() *verification.Verifier {
	return verification.New(appConfig.VerificationOptions(),
		verification.WithLogger(log),
		verification.WithMetrics(collector),
	)
}

// openStore picks PostgreSQL, SQLite or an in-memory store from the config. The returned
// function releases the store.
func openStore(ctx context.Context) (feedback.Store, func(), error) {
	switch {
	case appConfig.DatabaseURL != "":
		pg, err := db.Connect(ctx, appConfig.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		pg.SetVersionRetries(appConfig.VersionRetries)
		return pg, pg.Close, nil

	case appConfig.SQLitePath != "":
		s, err := sqlitestore.Open(ctx, appConfig.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		s.SetVersionRetries(appConfig.VersionRetries)
		return s, func() { _ = s.Close() }, nil

	default:
		log.Warn().Msg("no database_url or sqlite_path configured; records live only for this process")
		return feedback.NewMemoryStore(), func() {}, nil
	}
}

func newService(store feedback.Store) *feedback.Service {
	return feedback.NewService(store, newPipeline(), newVerifier(), log)
}

// readDocument ingests a resume file. An empty file is a valid, empty document.
func readDocument(path string) (string, *ingestion.Metadata, error) {
	text, meta, err := ingestion.IngestFromFile(path)
	if errors.Is(err, ingestion.ErrEmptyInput) {
		format, _ := ingestion.DetectFormat(path)
		return "", ingestion.NewMetadata("", path, format), nil
	}
	return text, meta, err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// writeOutput writes v as JSON to path, or to w when path is empty.
func writeOutput(path string, w io.Writer, v any) error {
	if path == "" {
		return writeJSON(w, v)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeJSON(f, v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func sectionErrors(failures []*extraction.SectionError) []error {
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return errs
}
