package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type testItem struct {
	Title string `json:"title" yaml:"title"`
	Spot  string `json:"spot" yaml:"spot"`
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "*output.JSONWriter"},
		{FormatJSONL, "*output.JSONLWriter"},
		{FormatYAML, "*output.YAMLWriter"},
	}

	for _, tt := range tests {
		w, err := NewWriter(&bytes.Buffer{}, tt.format)
		if err != nil {
			t.Fatalf("NewWriter(%s) error = %v", tt.format, err)
		}
		if got := typeName(w); got != tt.want {
			t.Errorf("NewWriter(%s) = %s, want %s", tt.format, got, tt.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *JSONWriter:
		return "*output.JSONWriter"
	case *JSONLWriter:
		return "*output.JSONLWriter"
	case *YAMLWriter:
		return "*output.YAMLWriter"
	default:
		return "unknown"
	}
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, Format("xml"))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestJSONWriter_EmitsArray(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &JSONWriter{w: buf}

	_ = w.Write(testItem{Title: "Team meeting", Spot: "Room A"})
	_ = w.Write(testItem{Title: "Dinner", Spot: "42 Main St"})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []testItem
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not a JSON array: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Team meeting" || got[1].Spot != "42 Main St" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestJSONLWriter_OneObjectPerLine(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &JSONLWriter{w: buf}

	_ = w.Write(testItem{Title: "a"})
	_ = w.Write(testItem{Title: "b"})
	_ = w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		var item testItem
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			t.Errorf("line %q is not valid JSON: %v", line, err)
		}
	}
}

func TestYAMLWriter_EmitsList(t *testing.T) {
	buf := &bytes.Buffer{}
	w := &YAMLWriter{w: buf}

	_ = w.Write(testItem{Title: "Team meeting", Spot: "Room A"})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	var got []testItem
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Team meeting" {
		t.Errorf("round trip = %+v", got)
	}
}
