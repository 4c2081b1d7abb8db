package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/textcal/textcal/pkg/event"
)

// routingCompleter answers segmentation and extraction prompts from
// separate scripts, keyed on the prompt's opening line.
type routingCompleter struct {
	segmentResponse string
	// extractResponses maps a substring of the chunk text to the canned
	// extraction response; "" is the catch-all.
	extractResponses map[string]string
	calls            atomic.Int32
}

func (r *routingCompleter) Complete(_ context.Context, system, user, _ string) (string, error) {
	r.calls.Add(1)
	if strings.HasPrefix(system, "You will be given arbitrary text") {
		return r.segmentResponse, nil
	}
	for key, resp := range r.extractResponses {
		if key != "" && strings.Contains(user, key) {
			return resp, nil
		}
	}
	return r.extractResponses[""], nil
}

func eventJSON(title, start, end string) string {
	return fmt.Sprintf(`{
		"title": %q,
		"description": "",
		"startDate": %q,
		"endDate": %q,
		"location": "",
		"timezone": "America/New_York",
		"summary": "",
		"confidence": 0.9,
		"recurrence": null,
		"isAllDay": false
	}`, title, start, end)
}

func TestExtractEvents_MultiEventOrderPreserved(t *testing.T) {
	c := &routingCompleter{
		segmentResponse: `{"starts": [1, 3]}`,
		extractResponses: map[string]string{
			"Meeting 1": eventJSON("Meeting 1", "2025-06-12T14:00:00-04:00", "2025-06-12T15:00:00-04:00"),
			"Meeting 2": eventJSON("Meeting 2", "2025-06-12T16:00:00-04:00", "2025-06-12T17:00:00-04:00"),
		},
	}
	s := NewService(c)

	events, err := s.ExtractEvents(context.Background(),
		"Meeting 1 at 2pm in Room A\n\nMeeting 2 at 4pm in Room B",
		event.Options{Timezone: "America/New_York"})
	if err != nil {
		t.Fatalf("ExtractEvents() error = %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Title != "Meeting 1" || events[1].Title != "Meeting 2" {
		t.Errorf("events out of order: %q, %q", events[0].Title, events[1].Title)
	}
	if events[0].OriginalText == "" || !strings.Contains(events[0].OriginalText, "Meeting 1") {
		t.Errorf("originalText = %q", events[0].OriginalText)
	}
}

func TestExtractEvents_FailedChunkIsolated(t *testing.T) {
	c := &routingCompleter{
		segmentResponse: `{"starts": [1, 3]}`,
		extractResponses: map[string]string{
			"Meeting 1": "this is not JSON at all",
			"Meeting 2": eventJSON("Meeting 2", "2025-06-12T16:00:00-04:00", "2025-06-12T17:00:00-04:00"),
		},
	}
	s := NewService(c)

	events, err := s.ExtractEvents(context.Background(),
		"Meeting 1 at 2pm\n\nMeeting 2 at 4pm", event.Options{})
	if err != nil {
		t.Fatalf("ExtractEvents() error = %v", err)
	}
	if len(events) != 1 || events[0].Title != "Meeting 2" {
		t.Errorf("expected only the valid chunk to survive, got %+v", events)
	}
}

func TestExtractEvents_AllChunksFail(t *testing.T) {
	c := &routingCompleter{
		segmentResponse:  `{"starts": [1, 3]}`,
		extractResponses: map[string]string{"": "not JSON"},
	}
	s := NewService(c)

	_, err := s.ExtractEvents(context.Background(),
		"Meeting 1 at 2pm\n\nMeeting 2 at 4pm", event.Options{})
	if !errors.Is(err, ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}
}

func TestExtractEvents_EmptyInputRejectedBeforeModelCall(t *testing.T) {
	c := &routingCompleter{}
	s := NewService(c)

	for _, input := range []string{"", "   \n\t  ", "<script>x()</script>"} {
		_, err := s.ExtractEvents(context.Background(), input, event.Options{})
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("input %q: expected ErrEmptyInput, got %v", input, err)
		}
	}
	if got := c.calls.Load(); got != 0 {
		t.Errorf("model invoked %d times for empty input, want 0", got)
	}
}

func TestExtractEvents_SegmentationFailureFatal(t *testing.T) {
	c := &routingCompleter{segmentResponse: "no json here"}
	s := NewService(c)

	_, err := s.ExtractEvents(context.Background(), "Meeting at 2pm", event.Options{})
	if err == nil {
		t.Fatal("expected segmentation failure to be fatal")
	}
	if errors.Is(err, ErrNoEvents) {
		t.Errorf("segmentation failure must not be reported as ErrNoEvents: %v", err)
	}
}

func TestExtractEvents_SanitizesBeforeSegmentation(t *testing.T) {
	c := &routingCompleter{
		segmentResponse: `{"starts": [1]}`,
		extractResponses: map[string]string{
			"": eventJSON("Meeting", "2025-06-12T14:00:00-04:00", "2025-06-12T15:00:00-04:00"),
		},
	}
	s := NewService(c)

	events, err := s.ExtractEvents(context.Background(),
		"<script>steal()</script>Meeting at 2pm", event.Options{})
	if err != nil {
		t.Fatalf("ExtractEvents() error = %v", err)
	}
	if strings.Contains(events[0].OriginalText, "script") {
		t.Errorf("sanitizer did not run before pipeline: %q", events[0].OriginalText)
	}
}

func TestExtractEventDetails_SingleEvent(t *testing.T) {
	c := &routingCompleter{
		extractResponses: map[string]string{
			"": eventJSON("Team meeting", "2025-06-12T14:00:00-04:00", "2025-06-12T15:00:00-04:00"),
		},
	}
	s := NewService(c)

	ev, err := s.ExtractEventDetails(context.Background(),
		"Team meeting tomorrow at 2pm in Conference Room A",
		event.Options{Timezone: "America/New_York", CurrentDate: time.Date(2025, 6, 11, 17, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("ExtractEventDetails() error = %v", err)
	}

	if !strings.Contains(strings.ToLower(ev.Title), "meeting") {
		t.Errorf("title = %q", ev.Title)
	}
	if got := ev.EndDate.Sub(ev.StartDate); got != time.Hour {
		t.Errorf("duration = %v, want 60m", got)
	}
	if got := c.calls.Load(); got != 1 {
		t.Errorf("model invoked %d times, want 1 (no segmentation)", got)
	}
}

func TestExtractEventDetails_ValidationErrorSurfaces(t *testing.T) {
	c := &routingCompleter{extractResponses: map[string]string{"": "not JSON"}}
	s := NewService(c)

	_, err := s.ExtractEventDetails(context.Background(), "Meeting at 2pm", event.Options{})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestExtractOne_EmptyChunkSkippedWithoutModelCall(t *testing.T) {
	c := &routingCompleter{}
	x := NewExtractor(c)

	_, err := x.ExtractOne(context.Background(), event.SegmentChunk{ID: "0", Text: "  \n "}, event.Options{}.WithDefaults())
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := c.calls.Load(); got != 0 {
		t.Errorf("model invoked %d times for empty chunk, want 0", got)
	}
}

func TestExtractOne_PromptCarriesContext(t *testing.T) {
	var capturedSystem string
	c := completerFunc(func(_ context.Context, system, _, _ string) (string, error) {
		capturedSystem = system
		return eventJSON("X", "2025-06-12T14:00:00-04:00", "2025-06-12T15:00:00-04:00"), nil
	})
	x := NewExtractor(c)

	opts := event.Options{
		Timezone:    "America/New_York",
		CurrentDate: time.Date(2025, 6, 11, 17, 0, 0, 0, time.UTC),
	}
	opts.UserPreferences.DefaultDuration = 45

	if _, err := x.ExtractOne(context.Background(), event.SegmentChunk{ID: "0", Text: "Meeting"}, opts.WithDefaults()); err != nil {
		t.Fatalf("ExtractOne() error = %v", err)
	}

	for _, want := range []string{"America/New_York", "2025-06-11T17:00:00Z", "45 minutes"} {
		if !strings.Contains(capturedSystem, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

// completerFunc adapts a function to the Completer interface.
type completerFunc func(ctx context.Context, system, user, model string) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, user, model string) (string, error) {
	return f(ctx, system, user, model)
}
