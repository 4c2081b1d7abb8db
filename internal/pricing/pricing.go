// Package pricing estimates model invocation costs for offline comparison
// tooling. Nothing here sits on a request path.
package pricing

// Rates holds per-million-token pricing in USD.
type Rates struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// rateTable is a static snapshot of published per-model pricing. Local
// models cost nothing.
var rateTable = map[string]Rates{
	"gpt-4":                    {InputPerMillion: 30.00, OutputPerMillion: 60.00},
	"gpt-4o":                   {InputPerMillion: 2.50, OutputPerMillion: 10.00},
	"gpt-4o-mini":              {InputPerMillion: 0.15, OutputPerMillion: 0.60},
	"gpt-4.1-mini":             {InputPerMillion: 0.40, OutputPerMillion: 1.60},
	"claude-sonnet-4-20250514": {InputPerMillion: 3.00, OutputPerMillion: 15.00},
	"llama3.2":                 {},
}

// Lookup returns the rates for a model, reporting whether it is known.
func Lookup(model string) (Rates, bool) {
	r, ok := rateTable[model]
	return r, ok
}

// Estimate computes the estimated USD cost of a call. Unknown models cost
// zero.
func Estimate(inputTokens, outputTokens int, model string) float64 {
	r, ok := rateTable[model]
	if !ok {
		return 0
	}
	return float64(inputTokens)/1e6*r.InputPerMillion +
		float64(outputTokens)/1e6*r.OutputPerMillion
}

// EstimateTokens roughly estimates the token count of text using the
// ~4 characters per token rule of thumb.
func EstimateTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return (len(text) + 3) / 4
}
