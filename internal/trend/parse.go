package trend

import (
	"math"
	"strconv"
	"strings"
)

// Parse splits comma-delimited text into samples. Tokens are trimmed; empty,
// non-numeric or non-finite tokens are dropped. Order is preserved.
func Parse(text string) []float64 {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var samples []float64
	for _, tok := range strings.Split(text, ",") {
		if v, ok := parseSample(tok); ok {
			samples = append(samples, v)
		}
	}
	return samples
}

func parseSample(tok string) (float64, bool) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
