package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ParseFieldConditions deserializes a RawEvent's value into FieldConditions.
// When the payload carries no field_id, the message key is used instead.
func ParseFieldConditions(raw RawEvent) (FieldConditions, error) {
	var cond FieldConditions
	if err := json.Unmarshal(raw.Value, &cond); err != nil {
		return FieldConditions{}, fmt.Errorf("parse field conditions: %w", err)
	}
	if cond.FieldID == "" {
		cond.FieldID = string(raw.Key)
	}
	return cond, nil
}

// Recommend runs the catalog filter for one field and stamps the result with
// the package clock.
func Recommend(catalog *Catalog, cond FieldConditions) Recommendation {
	q := cond.Query()
	crops := catalog.Recommend(q)
	issuedAt := clock.Now().UTC()
	return Recommendation{
		ID:       generateID(cond.FieldID, q, issuedAt),
		FieldID:  cond.FieldID,
		Query:    q,
		Matched:  len(crops),
		Crops:    Views(crops),
		IssuedAt: issuedAt,
	}
}

// SerializeRecommendation marshals a Recommendation into an OutputEvent keyed
// by field ID so every recommendation for a field lands on one partition.
func SerializeRecommendation(rec Recommendation) (OutputEvent, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize recommendation: %w", err)
	}
	return OutputEvent{
		Key:   []byte(rec.FieldID),
		Value: data,
		Headers: map[string]string{
			"field_id":  rec.FieldID,
			"matched":   strconv.Itoa(rec.Matched),
			"issued_at": rec.IssuedAt.Format(time.RFC3339),
		},
	}, nil
}

// generateID derives a deterministic ID from the field, the query and the
// issue time, so replaying a message at the same instant yields the same ID.
func generateID(fieldID string, q Query, issuedAt time.Time) string {
	input := fmt.Sprintf("%s|%g|%g|%d|%s|%d", fieldID, q.PH, q.Temperature, q.Rainfall, q.Season, issuedAt.UnixNano())
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if fieldID == "" {
		return short
	}
	return fieldID + "-" + short
}
