package trend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Input is a metric trend as supplied by callers: either delimited text
// ("3.1, 3.45, 2.98") or a list of numbers. It decodes from both shapes in
// JSON and YAML. Values resolves it to one canonical sample sequence.
type Input struct {
	text   string
	values []float64
	isSeq  bool
}

// Text returns an Input backed by delimited text.
func Text(s string) Input {
	return Input{text: s}
}

// Sequence returns an Input backed by an already ordered list of samples.
func Sequence(samples ...float64) Input {
	return Input{values: append([]float64(nil), samples...), isSeq: true}
}

// Values returns the ordered samples. Text is parsed leniently and
// non-finite numbers are dropped from sequences.
func (in Input) Values() []float64 {
	if !in.isSeq {
		return Parse(in.text)
	}
	var out []float64
	for _, v := range in.values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// IsZero reports whether no trend was supplied at all.
func (in Input) IsZero() bool {
	return !in.isSeq && in.text == ""
}

func (in Input) String() string {
	if !in.isSeq {
		return in.text
	}
	return fmt.Sprint(in.values)
}

func (in Input) MarshalJSON() ([]byte, error) {
	if in.isSeq {
		return json.Marshal(in.values)
	}
	return json.Marshal(in.text)
}

func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*in = Input{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode trend text: %w", err)
		}
		*in = Text(s)
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode trend sequence: %w", err)
		}
		samples := make([]float64, 0, len(raw))
		for _, elem := range raw {
			if bytes.Equal(bytes.TrimSpace(elem), []byte("null")) {
				continue
			}
			var f float64
			if err := json.Unmarshal(elem, &f); err == nil {
				samples = append(samples, f)
				continue
			}
			// Quoted numbers are accepted, anything else is dropped.
			var s string
			if err := json.Unmarshal(elem, &s); err == nil {
				if v, ok := parseSample(s); ok {
					samples = append(samples, v)
				}
			}
		}
		*in = Input{values: samples, isSeq: true}
		return nil
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("trend must be text or a list of numbers")
		}
		*in = Sequence(f)
		return nil
	}
}

func (in Input) MarshalYAML() (any, error) {
	if in.isSeq {
		return in.values, nil
	}
	return in.text, nil
}

func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*in = Input{}
			return nil
		}
		if node.Tag == "!!float" || node.Tag == "!!int" {
			*in = Input{isSeq: true}
			if v, ok := parseSample(node.Value); ok {
				*in = Sequence(v)
			}
			return nil
		}
		*in = Text(node.Value)
		return nil
	case yaml.SequenceNode:
		samples := make([]float64, 0, len(node.Content))
		for _, elem := range node.Content {
			if elem.Kind != yaml.ScalarNode {
				continue
			}
			if v, ok := parseSample(elem.Value); ok {
				samples = append(samples, v)
			}
		}
		*in = Input{values: samples, isSeq: true}
		return nil
	default:
		return fmt.Errorf("line %d: trend must be text or a list of numbers", node.Line)
	}
}
