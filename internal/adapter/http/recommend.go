package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/crop-recommender/internal/domain"
	"github.com/couchcryptid/crop-recommender/internal/observability"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
)

const noMatchMessage = "no suitable crops found"

type requestIDKey struct{}

type recommendResponse struct {
	RequestID string            `json:"request_id"`
	Query     domain.Query      `json:"query"`
	Count     int               `json:"count"`
	Crops     []domain.CropView `json:"crops"`
	Message   string            `json:"message,omitempty"`
}

type cropsResponse struct {
	RequestID string            `json:"request_id"`
	Count     int               `json:"count"`
	Crops     []domain.CropView `json:"crops"`
}

type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     string `json:"error"`
}

// withRequestID tags the request with a fresh UUID, echoes it in the response
// header, and logs the request once the handler returns.
func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(RequestIDHeader, id)
		start := time.Now()

		next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		s.logger.Debug("request served",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"duration", time.Since(start),
		)
	}
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	id := requestID(r.Context())

	q, err := parseQuery(r)
	if err != nil {
		s.metrics.Recommendations.WithLabelValues(observability.SourceHTTP, observability.OutcomeBadInput).Inc()
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{RequestID: id, Error: err.Error()})
		return
	}

	start := time.Now()
	matches := s.catalog.Load().Recommend(q)
	s.metrics.RecommendationDuration.WithLabelValues(observability.SourceHTTP).Observe(time.Since(start).Seconds())
	s.metrics.ObserveRecommendation(observability.SourceHTTP, len(matches))

	resp := recommendResponse{
		RequestID: id,
		Query:     q,
		Count:     len(matches),
		Crops:     domain.Views(matches),
	}
	if len(matches) == 0 {
		resp.Message = noMatchMessage
	}

	s.logger.Info("recommendation served",
		"request_id", id,
		"ph", q.PH,
		"temperature", q.Temperature,
		"rainfall", q.Rainfall,
		"season", q.Season,
		"matched", len(matches),
	)
	sharedobs.WriteJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCrops(w http.ResponseWriter, r *http.Request) {
	crops := s.catalog.Load().Crops()
	sharedobs.WriteJSON(w, http.StatusOK, cropsResponse{
		RequestID: requestID(r.Context()),
		Count:     len(crops),
		Crops:     domain.Views(crops),
	})
}

// parseQuery reads ph, temperature, rainfall, and season from the URL. Type
// parsing is the only validation; out-of-range values simply match nothing.
func parseQuery(r *http.Request) (domain.Query, error) {
	v := r.URL.Query()

	ph, err := strconv.ParseFloat(v.Get("ph"), 64)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid ph %q: must be a number", v.Get("ph"))
	}
	temp, err := strconv.ParseFloat(v.Get("temperature"), 64)
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid temperature %q: must be a number", v.Get("temperature"))
	}
	rain, err := strconv.Atoi(v.Get("rainfall"))
	if err != nil {
		return domain.Query{}, fmt.Errorf("invalid rainfall %q: must be an integer", v.Get("rainfall"))
	}

	season := domain.SeasonAny
	if s := v.Get("season"); s != "" {
		season = domain.ParseSeason(s)
	}

	return domain.Query{PH: ph, Temperature: temp, Rainfall: rain, Season: season}, nil
}
