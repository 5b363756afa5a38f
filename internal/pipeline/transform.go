package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/crop-recommender/internal/domain"
	"github.com/couchcryptid/crop-recommender/internal/observability"
)

// RecommendationTransformer implements Transformer by running each
// field-condition message through the catalog filter.
type RecommendationTransformer struct {
	catalog *domain.Catalog
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a RecommendationTransformer over a read-only catalog.
func NewTransformer(catalog *domain.Catalog, logger *slog.Logger, metrics *observability.Metrics) *RecommendationTransformer {
	return &RecommendationTransformer{
		catalog: catalog,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *RecommendationTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	cond, err := domain.ParseFieldConditions(raw)
	if err != nil {
		t.metrics.Recommendations.WithLabelValues(observability.SourceStream, observability.OutcomeBadInput).Inc()
		return domain.OutputEvent{}, err
	}

	start := time.Now()
	rec := domain.Recommend(t.catalog, cond)
	t.metrics.RecommendationDuration.WithLabelValues(observability.SourceStream).Observe(time.Since(start).Seconds())
	t.metrics.ObserveRecommendation(observability.SourceStream, rec.Matched)

	t.logger.Debug("recommendation issued",
		"id", rec.ID,
		"field_id", rec.FieldID,
		"matched", rec.Matched,
	)

	return domain.SerializeRecommendation(rec)
}
