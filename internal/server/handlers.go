package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gin-gonic/gin"

	"github.com/textcal/textcal/internal/extract"
	"github.com/textcal/textcal/internal/llm"
	"github.com/textcal/textcal/internal/logger"
	"github.com/textcal/textcal/internal/sanitize"
	"github.com/textcal/textcal/internal/segment"
	"github.com/textcal/textcal/pkg/event"
)

type parseRequest struct {
	// Text is decoded loosely so a non-string value maps to the same 400
	// as a missing one instead of a generic decode failure.
	Text    any             `json:"text"`
	Options *requestOptions `json:"options"`
}

type requestOptions struct {
	Timezone        string `json:"timezone"`
	CurrentDate     string `json:"currentDate"`
	Model           string `json:"model"`
	HTML            bool   `json:"html"`
	UserPreferences *struct {
		DefaultDuration int `json:"defaultDuration"`
	} `json:"userPreferences"`
}

// eventDTO is the multi-event wire shape: confidence collapses to the
// scalar overall value.
type eventDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Location    string  `json:"location"`
	Timezone    string  `json:"timezone"`
	Summary     string  `json:"summary"`
	Confidence  float64 `json:"confidence"`
}

// singleEventDTO is the single-event wire shape: the full per-field
// confidence object is preserved.
type singleEventDTO struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	StartDate   string                `json:"startDate"`
	EndDate     string                `json:"endDate"`
	Location    string                `json:"location"`
	Timezone    string                `json:"timezone"`
	IsAllDay    bool                  `json:"isAllDay"`
	Recurrence  *string               `json:"recurrence"`
	Confidence  event.ConfidenceScore `json:"confidence"`
}

func (s *Server) handleParse(c *gin.Context) {
	started := time.Now()

	text, opts, ok := s.bindRequest(c)
	if !ok {
		return
	}

	events, err := s.pipeline.ExtractEvents(c.Request.Context(), text, opts)
	if err != nil {
		s.writeError(c, err)
		return
	}

	dtos := make([]eventDTO, 0, len(events))
	for _, ev := range events {
		dtos = append(dtos, eventDTO{
			Title:       ev.Title,
			Description: ev.Description,
			StartDate:   ev.StartDate.Format(time.RFC3339),
			EndDate:     ev.EndDate.Format(time.RFC3339),
			Location:    ev.Location,
			Timezone:    ev.Timezone,
			Summary:     ev.Summary,
			Confidence:  ev.Confidence.Overall,
		})
	}

	resp := gin.H{
		"success":          true,
		"events":           dtos,
		"processingTimeMs": time.Since(started).Milliseconds(),
	}
	if !s.cfg.Production {
		resp["debug"] = debugPayload(events)
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleParseOne(c *gin.Context) {
	started := time.Now()

	text, opts, ok := s.bindRequest(c)
	if !ok {
		return
	}

	ev, err := s.pipeline.ExtractEventDetails(c.Request.Context(), text, opts)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"event": singleEventDTO{
			ID:          "1",
			Title:       ev.Title,
			Description: ev.Description,
			StartDate:   ev.StartDate.Format(time.RFC3339),
			EndDate:     ev.EndDate.Format(time.RFC3339),
			Location:    ev.Location,
			Timezone:    ev.Timezone,
			IsAllDay:    ev.IsAllDay,
			Recurrence:  ev.Recurrence,
			Confidence:  ev.Confidence,
		},
		"processingTimeMs": time.Since(started).Milliseconds(),
	})
}

// bindRequest decodes the body and validates the text field before any
// model work happens. It writes the error response itself when ok=false.
func (s *Server) bindRequest(c *gin.Context) (string, event.Options, bool) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, err)
		return "", event.Options{}, false
	}

	text, isString := req.Text.(string)
	if !isString || strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text input is required"})
		return "", event.Options{}, false
	}

	opts := event.Options{MultiEvent: true}
	if req.Options != nil {
		opts.Timezone = req.Options.Timezone
		opts.Model = req.Options.Model
		if req.Options.CurrentDate != "" {
			if t, err := dateparse.ParseAny(req.Options.CurrentDate); err == nil {
				opts.CurrentDate = t
			}
		}
		if req.Options.UserPreferences != nil {
			opts.UserPreferences.DefaultDuration = req.Options.UserPreferences.DefaultDuration
		}
		if req.Options.HTML {
			converted, err := sanitize.HTMLToText(text)
			if err == nil && converted != "" {
				text = converted
			}
		}
	}

	return strings.TrimSpace(text), opts, true
}

// writeError maps pipeline failures onto the documented status classes.
// Callers always see a structured error object, never a stack trace.
func (s *Server) writeError(c *gin.Context, err error) {
	status, message := statusFor(err)
	logger.Error("request failed",
		"status", status,
		"request_id", c.GetString("request_id"),
		"error", err)
	c.JSON(status, gin.H{"error": message})
}

func statusFor(err error) (int, string) {
	var (
		cfgErr *llm.ConfigurationError
		apiErr *llm.APIError
		valErr *extract.ValidationError
		segErr *segment.SegmentationError
	)

	switch {
	case errors.Is(err, extract.ErrEmptyInput):
		return http.StatusBadRequest, "Text input is required"
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, "AI service not configured properly"
	case errors.As(err, &apiErr) && (apiErr.StatusCode == 429 || apiErr.StatusCode >= 500),
		errors.Is(err, llm.ErrEmptyResponse),
		errors.Is(err, llm.ErrMaxRetries):
		return http.StatusTooManyRequests, "AI service temporarily unavailable. Please try again in a moment."
	case errors.As(err, &valErr), errors.As(err, &segErr), errors.Is(err, extract.ErrNoEvents):
		return http.StatusUnprocessableEntity, "Could not parse the text. Please try rephrasing or providing more specific details."
	default:
		return http.StatusInternalServerError, "Failed to process text. Please try again."
	}
}

// debugPayload renders each event with its source snippet for inspection
// outside production mode.
func debugPayload(events []event.ExtractedEventData) string {
	type entry struct {
		OriginalText string                   `json:"originalText"`
		Event        event.ExtractedEventData `json:"event"`
	}
	entries := make([]entry, 0, len(events))
	for _, ev := range events {
		entries = append(entries, entry{OriginalText: ev.OriginalText, Event: ev})
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return ""
	}
	return string(b)
}
