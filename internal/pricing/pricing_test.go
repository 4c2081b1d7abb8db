package pricing

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name         string
		in, out      int
		model        string
		want         float64
	}{
		{"gpt-4o-mini typical call", 1000, 200, "gpt-4o-mini", 1000.0/1e6*0.15 + 200.0/1e6*0.60},
		{"gpt-4 is pricier", 1000, 200, "gpt-4", 1000.0/1e6*30 + 200.0/1e6*60},
		{"zero tokens", 0, 0, "gpt-4o", 0},
		{"unknown model", 1000, 200, "imaginary-model", 0},
		{"local model is free", 100000, 50000, "llama3.2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Estimate(tt.in, tt.out, tt.model)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Estimate(%d, %d, %q) = %v, want %v", tt.in, tt.out, tt.model, got, tt.want)
			}
		})
	}
}

func TestEstimateIsPure(t *testing.T) {
	a := Estimate(500, 100, "gpt-4o")
	b := Estimate(500, 100, "gpt-4o")
	if a != b {
		t.Errorf("repeated calls differ: %v vs %v", a, b)
	}
}

func TestLookup(t *testing.T) {
	if _, ok := Lookup("gpt-4o-mini"); !ok {
		t.Error("expected gpt-4o-mini to be known")
	}
	if _, ok := Lookup("no-such-model"); ok {
		t.Error("expected unknown model to report ok=false")
	}
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 1},
		{"abcd", 1},
		{"abcde", 2},
		{"Lunch tomorrow at 1pm", 6},
	}

	for _, tt := range tests {
		if got := EstimateTokens(tt.text); got != tt.want {
			t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
