package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// SyncCursor is the persisted checkpoint for one external source. Exactly
// one row exists per source type; the cursor value is opaque, source-shaped
// JSON (pagination token, last-processed id, updated-at watermark).
type SyncCursor struct {
	SourceType    string          `json:"source_type"`
	CursorValue   json.RawMessage `json:"cursor_value,omitempty"`
	LastSuccessAt *NullableTime   `json:"last_success_at,omitempty"`
	LastError     *NullableString `json:"last_error,omitempty"`
	ItemsSynced   int64           `json:"items_synced"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CursorField reads a string field out of the opaque cursor value by gjson
// path. Returns "" when the cursor value is empty or the path is absent.
func (c *SyncCursor) CursorField(path string) string {
	if len(c.CursorValue) == 0 {
		return ""
	}
	return gjson.GetBytes(c.CursorValue, path).String()
}

// UpdateCursorParams is the upsert payload for a cursor row. ItemsSyncedDelta
// accumulates onto the stored counter, never overwrites it. SyncError, when
// non-empty, records the batch failure without advancing last_success_at;
// the cursor value still advances to the supplied position either way.
type UpdateCursorParams struct {
	SourceType       string
	CursorValue      json.RawMessage
	ItemsSyncedDelta int64
	SyncError        string
}

// BatchStats is the per-batch metrics accumulator. Each job run owns its own
// instance; it is threaded through the run and returned, never shared.
type BatchStats struct {
	Fetched   int `json:"fetched"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Linked    int `json:"linked"`
	Unlinked  int `json:"unlinked"`
	Ambiguous int `json:"ambiguous"`
	Errors    int `json:"errors"`
}

// Count records one resolver outcome.
func (s *BatchStats) Count(action ResolveAction) {
	switch action {
	case ResolveActionCreated:
		s.Created++
	case ResolveActionUpdated:
		s.Updated++
	case ResolveActionLinked:
		s.Linked++
	case ResolveActionAmbiguous:
		s.Ambiguous++
	}
}

// Add merges another accumulator into this one.
func (s *BatchStats) Add(other *BatchStats) {
	s.Fetched += other.Fetched
	s.Created += other.Created
	s.Updated += other.Updated
	s.Linked += other.Linked
	s.Unlinked += other.Unlinked
	s.Ambiguous += other.Ambiguous
	s.Errors += other.Errors
}

// Processed returns the number of records that produced a resolver decision.
func (s *BatchStats) Processed() int {
	return s.Created + s.Updated + s.Linked + s.Ambiguous
}

// SourceRecord is one raw provider record reduced to its identifying fields.
type SourceRecord struct {
	Input   ResolveInput
	Address *Address
}

// SourcePage is one page of records from a provider fetch function, plus the
// cursor position to persist once the page has been processed.
type SourcePage struct {
	Records    []SourceRecord
	NextCursor json.RawMessage
	HasMore    bool
}

// PageFetcher pulls one page of raw records from a provider, starting at the
// given cursor position (nil means from the beginning). Provider HTTP
// clients implement this; the sync runner stays provider-agnostic.
type PageFetcher func(ctx context.Context, cursor json.RawMessage) (*SourcePage, error)
