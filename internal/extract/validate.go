package extract

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"

	"github.com/textcal/textcal/pkg/event"
)

// ValidationError marks a per-event payload that is malformed or
// semantically invalid. The orchestrator recovers from it by dropping the
// chunk; only the single-event path surfaces it to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid response from extraction: " + e.Message
}

var validate = validator.New()

// confidenceFields enumerates the per-field keys of a ConfidenceScore in
// wire order.
var confidenceFields = []string{
	"title", "description", "startDate", "endDate", "location", "timezone", "overall",
}

// validateAndEnhance turns a decoded model payload into a fully valid
// typed record or a ValidationError. Nothing partially valid passes this
// boundary.
func validateAndEnhance(payload map[string]any, opts event.Options) (*event.ExtractedEventData, error) {
	startDate, err := parseInstant(payload["startDate"])
	if err != nil {
		return nil, &ValidationError{Message: "Invalid date format"}
	}
	endDate, err := parseInstant(payload["endDate"])
	if err != nil {
		return nil, &ValidationError{Message: "Invalid date format"}
	}
	if !endDate.After(startDate) {
		return nil, &ValidationError{Message: "End date must be after start date"}
	}

	confidence, err := normalizeConfidence(payload["confidence"])
	if err != nil {
		return nil, err
	}

	rec := &event.ExtractedEventData{
		Title:       stringOr(payload["title"], ""),
		Description: stringOr(payload["description"], ""),
		StartDate:   startDate,
		EndDate:     endDate,
		Location:    stringOr(payload["location"], ""),
		Timezone:    stringOr(payload["timezone"], "UTC"),
		Summary:     stringOr(payload["summary"], ""),
		Confidence:  confidence,
		IsAllDay:    boolOr(payload["isAllDay"]),
		Recurrence:  recurrenceOr(payload["recurrence"]),
	}

	if err := validate.Struct(rec); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	return rec, nil
}

// parseInstant parses a model-emitted timestamp, preserving any offset the
// model included rather than normalizing to UTC.
func parseInstant(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}, fmt.Errorf("missing date")
	}
	return dateparse.ParseAny(s)
}

// normalizeConfidence accepts the two wire forms of the confidence field:
// a single scalar that broadcasts to every sub-field, or the full
// per-field object. Absent or malformed values default everything to 0.5.
func normalizeConfidence(v any) (event.ConfidenceScore, error) {
	switch c := v.(type) {
	case float64:
		if c < 0 || c > 1 {
			return event.ConfidenceScore{}, &ValidationError{Message: "Invalid confidence score for overall"}
		}
		return event.Uniform(c), nil
	case map[string]any:
		score := event.Uniform(0.5)
		for _, field := range confidenceFields {
			raw, present := c[field]
			if !present {
				continue
			}
			n, ok := raw.(float64)
			if !ok || n < 0 || n > 1 {
				return event.ConfidenceScore{}, &ValidationError{Message: fmt.Sprintf("Invalid confidence score for %s", field)}
			}
			setConfidenceField(&score, field, n)
		}
		return score, nil
	default:
		return event.Uniform(0.5), nil
	}
}

func setConfidenceField(score *event.ConfidenceScore, field string, v float64) {
	switch field {
	case "title":
		score.Title = v
	case "description":
		score.Description = v
	case "startDate":
		score.StartDate = v
	case "endDate":
		score.EndDate = v
	case "location":
		score.Location = v
	case "timezone":
		score.Timezone = v
	case "overall":
		score.Overall = v
	}
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolOr(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func recurrenceOr(v any) *string {
	if s, ok := v.(string); ok && s != "" {
		return &s
	}
	return nil
}
