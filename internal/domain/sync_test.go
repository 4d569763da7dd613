package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchStatsCount(t *testing.T) {
	stats := &BatchStats{}
	stats.Count(ResolveActionCreated)
	stats.Count(ResolveActionCreated)
	stats.Count(ResolveActionUpdated)
	stats.Count(ResolveActionLinked)
	stats.Count(ResolveActionAmbiguous)

	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 1, stats.Linked)
	assert.Equal(t, 1, stats.Ambiguous)
	assert.Equal(t, 5, stats.Processed())
}

func TestBatchStatsAdd(t *testing.T) {
	a := &BatchStats{Fetched: 10, Created: 3, Errors: 1}
	b := &BatchStats{Fetched: 5, Updated: 2, Unlinked: 1}
	a.Add(b)

	assert.Equal(t, 15, a.Fetched)
	assert.Equal(t, 3, a.Created)
	assert.Equal(t, 2, a.Updated)
	assert.Equal(t, 1, a.Unlinked)
	assert.Equal(t, 1, a.Errors)
}

func TestSyncCursorField(t *testing.T) {
	cursor := &SyncCursor{
		SourceType:  "storefront",
		CursorValue: json.RawMessage(`{"page_token":"abc","watermark":"2026-01-01T00:00:00Z"}`),
	}

	assert.Equal(t, "abc", cursor.CursorField("page_token"))
	assert.Equal(t, "2026-01-01T00:00:00Z", cursor.CursorField("watermark"))
	assert.Equal(t, "", cursor.CursorField("missing"))

	empty := &SyncCursor{SourceType: "storefront"}
	assert.Equal(t, "", empty.CursorField("page_token"))
}
