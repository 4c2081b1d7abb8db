package extract

import (
	"context"
	"errors"
	"sync"

	"github.com/textcal/textcal/internal/llm"
	"github.com/textcal/textcal/internal/logger"
	"github.com/textcal/textcal/internal/sanitize"
	"github.com/textcal/textcal/internal/segment"
	"github.com/textcal/textcal/pkg/event"
)

// maxEvents caps the aggregated result list. Segmentation already caps
// chunk count, so this is a belt on top of that invariant.
const maxEvents = 10

// ErrEmptyInput is returned when the input is blank after sanitization,
// before any model invocation.
var ErrEmptyInput = errors.New("text input is required")

// ErrNoEvents is returned when every chunk failed extraction.
var ErrNoEvents = errors.New("no events could be extracted")

// Service drives the full pipeline: sanitize, segment, extract each chunk
// in parallel, aggregate in chunk order.
type Service struct {
	segmenter *segment.Engine
	extractor *Extractor
}

// NewService wires the pipeline on top of a model completer.
func NewService(c llm.Completer) *Service {
	return &Service{
		segmenter: segment.NewEngine(c),
		extractor: NewExtractor(c),
	}
}

// ExtractEvents extracts every event described by text, in input order.
// Failures in individual chunks are isolated; the call fails only when
// segmentation fails or no chunk yields a valid event.
func (s *Service) ExtractEvents(ctx context.Context, text string, opts event.Options) ([]event.ExtractedEventData, error) {
	opts = opts.WithDefaults()

	text = sanitize.Clean(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	chunks, err := s.segmenter.Segment(ctx, text, opts)
	if err != nil {
		return nil, err
	}

	// Fan out one extraction per chunk; the results slice is indexed by
	// chunk position, so aggregation preserves segmentation order and a
	// failed chunk cannot disturb its siblings.
	results := make([]*event.ExtractedEventData, len(chunks))
	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk event.SegmentChunk) {
			defer wg.Done()
			rec, err := s.extractor.ExtractOne(ctx, chunk, opts)
			if err != nil {
				logger.Debug("chunk skipped",
					"chunk", chunk.ID,
					"start_line", chunk.StartLine,
					"end_line", chunk.EndLine,
					"error", err)
				return
			}
			results[i] = rec
		}(i, chunk)
	}
	wg.Wait()

	events := make([]event.ExtractedEventData, 0, len(results))
	for _, rec := range results {
		if rec != nil {
			events = append(events, *rec)
		}
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	if len(events) > maxEvents {
		events = events[:maxEvents]
	}
	return events, nil
}

// ExtractEventDetails is the single-event convenience path: it sanitizes,
// skips segmentation, and extracts the whole input as one chunk using the
// same prompt and validation as the multi-event path.
func (s *Service) ExtractEventDetails(ctx context.Context, text string, opts event.Options) (*event.ExtractedEventData, error) {
	opts = opts.WithDefaults()

	text = sanitize.Clean(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	return s.extractor.ExtractOne(ctx, event.SegmentChunk{ID: "0", Text: text, StartLine: 1}, opts)
}
