// Command recommender serves crop recommendations over HTTP and, when
// KAFKA_ENABLED is set, answers field-condition messages from Kafka.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/crop-recommender/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/crop-recommender/internal/adapter/kafka"
	"github.com/couchcryptid/crop-recommender/internal/catalog"
	"github.com/couchcryptid/crop-recommender/internal/config"
	"github.com/couchcryptid/crop-recommender/internal/domain"
	"github.com/couchcryptid/crop-recommender/internal/observability"
	"github.com/couchcryptid/crop-recommender/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	cat := loadCatalog(cfg.CatalogPath, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		checks []httpadapter.ReadinessChecker
		reader *kafkaadapter.Reader
		writer *kafkaadapter.Writer
		done   = make(chan struct{})
	)
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		writer = kafkaadapter.NewWriter(cfg, logger)
		transformer := pipeline.NewTransformer(cat, logger, metrics)
		p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)
		checks = append(checks, p)

		go func() {
			defer close(done)
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
	} else {
		close(done)
		logger.Info("kafka streaming disabled")
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, logger, metrics, checks...)
	srv.SetCatalog(cat)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	select {
	case <-done:
	case <-shutdownCtx.Done():
		logger.Warn("pipeline did not stop before shutdown timeout")
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadCatalog reads the catalog once at startup. An unreadable file is logged
// and the service continues with whatever was parsed, possibly nothing.
func loadCatalog(path string, logger *slog.Logger, metrics *observability.Metrics) *domain.Catalog {
	res, err := catalog.LoadFile(path)
	if err != nil {
		logger.Warn("catalog unavailable, continuing with partial catalog",
			"path", path,
			"error", err,
			"crops", len(res.Crops),
		)
	}

	if len(res.Skipped) > 0 {
		logger.Warn("catalog lines skipped", "path", path, "count", len(res.Skipped))
		for _, s := range res.Skipped {
			logger.Debug("skipped catalog line", "line", s.Line, "reason", s.Reason)
		}
	}
	for _, w := range catalog.Inspect(res.Crops) {
		logger.Warn("catalog entry will not behave as expected", "crop", w.Crop, "problem", w.Message)
	}

	metrics.ObserveCatalog(len(res.Crops), len(res.Skipped))
	logger.Info("catalog loaded", "path", path, "crops", len(res.Crops), "skipped", len(res.Skipped))
	return res.Catalog()
}
