package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harborcrm/harbor/internal/domain"
)

func TestCursorPosition(t *testing.T) {
	t.Run("page token wins when present", func(t *testing.T) {
		c := &domain.SyncCursor{
			SourceType:  "storefront",
			CursorValue: json.RawMessage(`{"page_token":"abc","watermark":"2026-01-01T00:00:00Z"}`),
		}
		assert.Equal(t, "abc", cursorPosition(c))
	})

	t.Run("falls through to watermark then last id", func(t *testing.T) {
		c := &domain.SyncCursor{
			SourceType:  "billing",
			CursorValue: json.RawMessage(`{"watermark":"2026-01-01T00:00:00Z"}`),
		}
		assert.Equal(t, "2026-01-01T00:00:00Z", cursorPosition(c))

		c.CursorValue = json.RawMessage(`{"last_id":"42"}`)
		assert.Equal(t, "42", cursorPosition(c))
	})

	t.Run("empty cursor has no position", func(t *testing.T) {
		c := &domain.SyncCursor{SourceType: "billing"}
		assert.Equal(t, "", cursorPosition(c))
	})
}
