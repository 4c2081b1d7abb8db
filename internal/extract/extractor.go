// Package extract converts per-event text chunks into validated, typed
// calendar event records.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/textcal/textcal/internal/llm"
	"github.com/textcal/textcal/internal/logger"
	"github.com/textcal/textcal/pkg/event"
)

// Extractor turns one chunk of text describing exactly one event into an
// ExtractedEventData record.
type Extractor struct {
	completer llm.Completer
}

// NewExtractor creates an Extractor on top of a model completer.
func NewExtractor(c llm.Completer) *Extractor {
	return &Extractor{completer: c}
}

// ExtractOne extracts a single event from chunk. A ValidationError means
// the chunk should be skipped; model transport errors pass through
// unwrapped so the caller can distinguish them.
func (x *Extractor) ExtractOne(ctx context.Context, chunk event.SegmentChunk, opts event.Options) (*event.ExtractedEventData, error) {
	text := strings.TrimSpace(chunk.Text)
	if text == "" {
		return nil, &ValidationError{Message: "chunk has no text"}
	}

	raw, err := x.completer.Complete(ctx, buildPrompt(opts), text, opts.Model)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed for chunk %s: %w", chunk.ID, err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(llm.TrimFences(raw)), &payload); err != nil {
		logger.Debug("chunk response is not JSON", "chunk", chunk.ID, "error", err)
		return nil, &ValidationError{Message: "Invalid response format from AI service"}
	}

	rec, err := validateAndEnhance(payload, opts)
	if err != nil {
		return nil, err
	}

	rec.OriginalText = text
	return rec, nil
}
