// Package segment splits multi-event text into per-event line ranges.
package segment

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/textcal/textcal/internal/llm"
	"github.com/textcal/textcal/internal/logger"
	"github.com/textcal/textcal/pkg/event"
)

// maxChunks caps how many events one segmentation run may produce.
const maxChunks = 10

// detailLineRe matches lines that supply details for a preceding event and
// therefore can never start a chunk.
var detailLineRe = regexp.MustCompile(`(?i)^\s*(?:when|where|location|time|date|details)\s*:`)

// SegmentationError indicates the model's segmentation response could not
// be used. It is fatal to the whole extraction call.
type SegmentationError struct {
	Reason string
	Raw    string
}

func (e *SegmentationError) Error() string {
	return "invalid response from segmentation: " + e.Reason
}

// Engine determines where each distinct event starts in raw text.
type Engine struct {
	completer llm.Completer
}

// NewEngine creates a segmentation engine on top of a model completer.
func NewEngine(c llm.Completer) *Engine {
	return &Engine{completer: c}
}

// Segment splits text into ordered per-event chunks. Chunk IDs are the
// stringified 0-based positional index and are stable within one run.
func (e *Engine) Segment(ctx context.Context, text string, opts event.Options) ([]event.SegmentChunk, error) {
	lines := splitLines(text)

	var sb strings.Builder
	for i, line := range lines {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(": ")
		sb.WriteString(line)
		if i < len(lines)-1 {
			sb.WriteString("\n")
		}
	}

	raw, err := e.completer.Complete(ctx, systemPrompt, sb.String(), opts.Model)
	if err != nil {
		return nil, fmt.Errorf("segmentation request failed: %w", err)
	}

	starts, err := parseStarts(raw)
	if err != nil {
		return nil, err
	}

	starts = normalizeStarts(starts, lines)
	logger.Debug("segmentation complete", "lines", len(lines), "starts", starts)

	return buildChunks(lines, starts), nil
}

// splitLines splits on line breaks, tolerating CRLF input.
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// parseStarts decodes the segmentation wire format. A response that is not
// a JSON object or lacks a "starts" array is a SegmentationError.
func parseStarts(raw string) ([]int, error) {
	cleaned := llm.TrimFences(raw)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, &SegmentationError{Reason: "not valid JSON", Raw: raw}
	}

	startsRaw, ok := obj["starts"]
	if !ok {
		return nil, &SegmentationError{Reason: `missing "starts" array`, Raw: raw}
	}

	var values []float64
	if err := json.Unmarshal(startsRaw, &values); err != nil {
		return nil, &SegmentationError{Reason: `"starts" is not an array of numbers`, Raw: raw}
	}

	starts := make([]int, 0, len(values))
	for _, v := range values {
		if v == float64(int(v)) {
			starts = append(starts, int(v))
		}
	}
	return starts, nil
}

// normalizeStarts re-enforces the mechanical segmentation rules on
// whatever the model returned: in-bounds, no detail or blank lines as
// starts, deduplicated, ascending, at most maxChunks, never empty.
func normalizeStarts(starts []int, lines []string) []int {
	seen := make(map[int]bool, len(starts))
	out := make([]int, 0, len(starts))
	for _, s := range starts {
		if s < 1 || s > len(lines) || seen[s] {
			continue
		}
		line := lines[s-1]
		if strings.TrimSpace(line) == "" || detailLineRe.MatchString(line) {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Ints(out)
	if len(out) > maxChunks {
		out = out[:maxChunks]
	}
	if len(out) == 0 {
		// Treat the entire input as one event.
		out = []int{1}
	}
	return out
}

// buildChunks derives contiguous chunks from consecutive start indices,
// with a sentinel end of len(lines)+1.
func buildChunks(lines []string, starts []int) []event.SegmentChunk {
	bounds := append(append([]int{}, starts...), len(lines)+1)

	chunks := make([]event.SegmentChunk, 0, len(starts))
	for i := 0; i < len(starts); i++ {
		start, end := bounds[i], bounds[i+1]-1
		chunks = append(chunks, event.SegmentChunk{
			ID:        strconv.Itoa(i),
			Text:      strings.Join(lines[start-1:end], "\n"),
			StartLine: start,
			EndLine:   end,
		})
	}
	return chunks
}
