package segment

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/textcal/textcal/pkg/event"
)

// scriptedCompleter returns canned responses and records prompts.
type scriptedCompleter struct {
	response string
	err      error
	calls    int
	lastUser string
}

func (s *scriptedCompleter) Complete(_ context.Context, _, user, _ string) (string, error) {
	s.calls++
	s.lastUser = user
	return s.response, s.err
}

func TestSegment_TwoEventsBlankLineSeparated(t *testing.T) {
	c := &scriptedCompleter{response: `{"starts": [1, 3]}`}
	e := NewEngine(c)

	chunks, err := e.Segment(context.Background(),
		"Meeting 1 at 2pm in Room A\n\nMeeting 2 at 4pm in Room B", event.Options{})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}

	want := []event.SegmentChunk{
		{ID: "0", Text: "Meeting 1 at 2pm in Room A\n", StartLine: 1, EndLine: 2},
		{ID: "1", Text: "Meeting 2 at 4pm in Room B", StartLine: 3, EndLine: 3},
	}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("chunks = %+v, want %+v", chunks, want)
	}
}

func TestSegment_LineEnumeration(t *testing.T) {
	c := &scriptedCompleter{response: `{"starts": [1]}`}
	e := NewEngine(c)

	if _, err := e.Segment(context.Background(), "first\nsecond", event.Options{}); err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	if c.lastUser != "1: first\n2: second" {
		t.Errorf("enumerated prompt = %q", c.lastUser)
	}
}

func TestSegment_DetailLineNeverStartsChunk(t *testing.T) {
	// Even if the model wrongly proposes the detail lines as starts, the
	// normalizer demotes them and the whole text stays one chunk.
	c := &scriptedCompleter{response: `{"starts": [1, 2, 3]}`}
	e := NewEngine(c)

	text := "Alex's birthday dinner!\nWhen: Sat July 20, 7pm\nWhere: 42 Main St"
	chunks, err := e.Segment(context.Background(), text, event.Options{})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].StartLine != 1 || chunks[0].EndLine != 3 {
		t.Errorf("chunk span = [%d,%d], want [1,3]", chunks[0].StartLine, chunks[0].EndLine)
	}
}

func TestSegment_Idempotent(t *testing.T) {
	text := "Breakfast at 8\nMeeting at 10\nDinner at 7"
	first, err := NewEngine(&scriptedCompleter{response: `{"starts": [1, 2, 3]}`}).
		Segment(context.Background(), text, event.Options{})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	second, err := NewEngine(&scriptedCompleter{response: `{"starts": [1, 2, 3]}`}).
		Segment(context.Background(), text, event.Options{})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical input and responses produced different chunks:\n%+v\n%+v", first, second)
	}
}

func TestSegment_InvalidJSONResponse(t *testing.T) {
	c := &scriptedCompleter{response: "I could not find any events, sorry!"}
	e := NewEngine(c)

	_, err := e.Segment(context.Background(), "some text", event.Options{})
	var segErr *SegmentationError
	if !errors.As(err, &segErr) {
		t.Fatalf("expected SegmentationError, got %v", err)
	}
}

func TestSegment_MissingStartsKey(t *testing.T) {
	c := &scriptedCompleter{response: `{"lines": [1]}`}
	e := NewEngine(c)

	_, err := e.Segment(context.Background(), "some text", event.Options{})
	var segErr *SegmentationError
	if !errors.As(err, &segErr) {
		t.Fatalf("expected SegmentationError, got %v", err)
	}
}

func TestSegment_FencedResponseAccepted(t *testing.T) {
	c := &scriptedCompleter{response: "```json\n{\"starts\": [1]}\n```"}
	e := NewEngine(c)

	chunks, err := e.Segment(context.Background(), "Lunch tomorrow at noon", event.Options{})
	if err != nil {
		t.Fatalf("Segment() error = %v", err)
	}
	if len(chunks) != 1 {
		t.Errorf("got %d chunks, want 1", len(chunks))
	}
}

func TestSegment_CompleterErrorPropagates(t *testing.T) {
	wantErr := errors.New("model unavailable")
	c := &scriptedCompleter{err: wantErr}
	e := NewEngine(c)

	_, err := e.Segment(context.Background(), "some text", event.Options{})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped completer error, got %v", err)
	}
}

func TestNormalizeStarts(t *testing.T) {
	lines := []string{
		"Event one at 2pm",
		"When: tomorrow",
		"",
		"Event two at 4pm",
		"Event three at 6pm",
	}

	tests := []struct {
		name   string
		starts []int
		want   []int
	}{
		{"sorted and deduplicated", []int{4, 1, 4, 1}, []int{1, 4}},
		{"out of bounds dropped", []int{0, 1, 6, -2, 99}, []int{1}},
		{"detail line demoted", []int{1, 2}, []int{1}},
		{"blank line demoted", []int{1, 3, 4}, []int{1, 4}},
		{"empty defaults to first line", []int{}, []int{1}},
		{"all invalid defaults to first line", []int{2, 3, 42}, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeStarts(tt.starts, lines); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("normalizeStarts(%v) = %v, want %v", tt.starts, got, tt.want)
			}
		})
	}
}

func TestNormalizeStarts_CapsAtTen(t *testing.T) {
	lines := make([]string, 30)
	starts := make([]int, 0, 15)
	for i := range lines {
		lines[i] = "Event at 2pm"
	}
	for i := 1; i <= 15; i++ {
		starts = append(starts, i)
	}

	got := normalizeStarts(starts, lines)
	if len(got) != 10 {
		t.Fatalf("got %d starts, want 10", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("starts not strictly ascending: %v", got)
		}
	}
}

func TestParseStarts_NonIntegerValuesDropped(t *testing.T) {
	starts, err := parseStarts(`{"starts": [1, 2.5, 3]}`)
	if err != nil {
		t.Fatalf("parseStarts() error = %v", err)
	}
	if !reflect.DeepEqual(starts, []int{1, 3}) {
		t.Errorf("starts = %v, want [1 3]", starts)
	}
}
