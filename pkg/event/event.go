// Package event defines the shared data model for calendar event
// extraction: the extracted record, per-field confidence scores, the
// segmentation chunk, and per-request options.
package event

import "time"

// ConfidenceScore carries the model's certainty per extracted field plus
// a holistic overall estimate. Every value is in [0, 1].
type ConfidenceScore struct {
	Title       float64 `json:"title" yaml:"title" validate:"gte=0,lte=1"`
	Description float64 `json:"description" yaml:"description" validate:"gte=0,lte=1"`
	StartDate   float64 `json:"startDate" yaml:"startDate" validate:"gte=0,lte=1"`
	EndDate     float64 `json:"endDate" yaml:"endDate" validate:"gte=0,lte=1"`
	Location    float64 `json:"location" yaml:"location" validate:"gte=0,lte=1"`
	Timezone    float64 `json:"timezone" yaml:"timezone" validate:"gte=0,lte=1"`
	Overall     float64 `json:"overall" yaml:"overall" validate:"gte=0,lte=1"`
}

// Uniform returns a ConfidenceScore with every field set to v.
func Uniform(v float64) ConfidenceScore {
	return ConfidenceScore{
		Title:       v,
		Description: v,
		StartDate:   v,
		EndDate:     v,
		Location:    v,
		Timezone:    v,
		Overall:     v,
	}
}

// ExtractedEventData is one fully validated calendar event. EndDate is
// always strictly after StartDate.
type ExtractedEventData struct {
	Title        string          `json:"title" yaml:"title" validate:"required"`
	Description  string          `json:"description" yaml:"description"`
	StartDate    time.Time       `json:"startDate" yaml:"startDate" validate:"required"`
	EndDate      time.Time       `json:"endDate" yaml:"endDate" validate:"required,gtfield=StartDate"`
	Location     string          `json:"location" yaml:"location"`
	Timezone     string          `json:"timezone" yaml:"timezone"`
	Summary      string          `json:"summary" yaml:"summary"`
	Confidence   ConfidenceScore `json:"confidence" yaml:"confidence"`
	IsAllDay     bool            `json:"isAllDay" yaml:"isAllDay"`
	Recurrence   *string         `json:"recurrence" yaml:"recurrence"`
	OriginalText string          `json:"originalText,omitempty" yaml:"originalText,omitempty"`
}

// SegmentChunk is one contiguous block of input lines describing a
// single event. Line numbers are 1-based and inclusive.
type SegmentChunk struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
}

// Preferences holds user-tunable extraction defaults.
type Preferences struct {
	// DefaultDuration is the assumed event length in minutes when the
	// source text gives only a start time.
	DefaultDuration int `json:"defaultDuration" yaml:"defaultDuration"`
}

// Options parameterizes one extraction request.
type Options struct {
	// Timezone is the IANA zone relative phrases resolve in.
	Timezone string
	// CurrentDate anchors relative phrases like "tomorrow". Zero means
	// the wall clock at call time.
	CurrentDate time.Time
	UserPreferences Preferences
	// Model overrides the provider's default model for this request.
	Model string
	// MultiEvent selects the segmenting pipeline over the single-event
	// path.
	MultiEvent bool
}

// WithDefaults returns a copy with unset fields filled in: UTC, the
// current time, and a 60 minute default duration.
func (o Options) WithDefaults() Options {
	if o.Timezone == "" {
		o.Timezone = "UTC"
	}
	if o.CurrentDate.IsZero() {
		o.CurrentDate = time.Now()
	}
	if o.UserPreferences.DefaultDuration <= 0 {
		o.UserPreferences.DefaultDuration = 60
	}
	return o
}
