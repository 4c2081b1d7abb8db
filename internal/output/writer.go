// Package output writes extraction results in the supported CLI formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format identifies an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// Writer emits one or more result items and flushes at the end.
type Writer interface {
	Write(item any) error
	Flush() error
}

// NewWriter creates a writer for the requested format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSON:
		return &JSONWriter{w: w}, nil
	case FormatJSONL:
		return &JSONLWriter{w: w}, nil
	case FormatYAML:
		return &YAMLWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// JSONWriter buffers items and emits one indented JSON array on Flush.
type JSONWriter struct {
	w     io.Writer
	items []any
}

func (j *JSONWriter) Write(item any) error {
	j.items = append(j.items, item)
	return nil
}

func (j *JSONWriter) Flush() error {
	enc := json.NewEncoder(j.w)
	enc.SetIndent("", "  ")
	return enc.Encode(j.items)
}

// JSONLWriter emits one compact JSON object per line as items arrive.
type JSONLWriter struct {
	w io.Writer
}

func (j *JSONLWriter) Write(item any) error {
	return json.NewEncoder(j.w).Encode(item)
}

func (j *JSONLWriter) Flush() error {
	return nil
}

// YAMLWriter buffers items and emits one YAML document list on Flush.
type YAMLWriter struct {
	w     io.Writer
	items []any
}

func (y *YAMLWriter) Write(item any) error {
	y.items = append(y.items, item)
	return nil
}

func (y *YAMLWriter) Flush() error {
	enc := yaml.NewEncoder(y.w)
	defer enc.Close()
	return enc.Encode(y.items)
}
