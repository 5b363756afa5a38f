package domain

import (
	"context"
	"time"
)

// FieldConditions is the message shape consumed from the source topic: the
// measured conditions of one field for which recommendations are wanted.
type FieldConditions struct {
	FieldID     string  `json:"field_id"`
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
	Rainfall    int     `json:"rainfall"`
	Season      string  `json:"season"`
}

// Query converts the message into a filter query. An empty season is the
// wildcard.
func (f FieldConditions) Query() Query {
	season := ParseSeason(f.Season)
	if season == "" {
		season = SeasonAny
	}
	return Query{
		PH:          f.PH,
		Temperature: f.Temperature,
		Rainfall:    f.Rainfall,
		Season:      season,
	}
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Recommendation is the event published for each FieldConditions message.
type Recommendation struct {
	ID       string     `json:"id"`
	FieldID  string     `json:"field_id,omitempty"`
	Query    Query      `json:"query"`
	Matched  int        `json:"matched"`
	Crops    []CropView `json:"crops"`
	IssuedAt time.Time  `json:"issued_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
