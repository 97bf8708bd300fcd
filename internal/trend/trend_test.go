package trend

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []float64
	}{
		{"well formed", "3.1, 3.45, 2.98", []float64{3.1, 3.45, 2.98}},
		{"empty and junk tokens", "3.1,,abc,2.98", []float64{3.1, 2.98}},
		{"blank", "   ", nil},
		{"only junk", "x, y, ,", nil},
		{"non-finite dropped", "NaN, 3.0, +Inf", []float64{3.0}},
		{"no spaces", "2,2.5,3", []float64{2, 2.5, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		metric      float64
		samples     []float64
		want        Direction
		significant bool
	}{
		{"no samples", 3.0, nil, InsufficientData, false},
		{"one sample", 3.0, []float64{3.0}, InsufficientData, false},
		{"ceiling forces stable", 4.6, []float64{4.9, 4.6}, Stable, false},
		{"ceiling at boundary", 4.50, []float64{3.0, 4.5}, Stable, false},
		{"improving steady", 3.0, []float64{2.8, 3.0}, Improving, false},
		{"improving significant", 3.0, []float64{2.5, 3.0}, Improving, true},
		{"declining attention", 3.0, []float64{3.2, 3.0}, Declining, false},
		{"declining significant", 3.0, []float64{3.4, 3.0}, Declining, true},
		{"equal", 3.0, []float64{3.5, 3.0, 3.0}, Stable, false},
		{"uses last two only", 3.0, []float64{1.0, 3.5, 3.4}, Declining, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.metric, tt.samples)
			assert.Equal(t, tt.want, got.Direction)
			assert.Equal(t, tt.significant, got.Significant)
			assert.NotEmpty(t, got.Description)
		})
	}
}

func TestClassify_InsufficientHasZeroDelta(t *testing.T) {
	got := Classify(2.0, []float64{2.0})
	assert.Zero(t, got.Delta)
	assert.Zero(t, Delta([]float64{2.0}))
	assert.InDelta(t, -0.4, Delta([]float64{3.4, 3.0}), 1e-9)
}

func TestInput_JSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []float64
	}{
		{"text", `"3.1, 3.45, 2.98"`, []float64{3.1, 3.45, 2.98}},
		{"sequence", `[3.1, 3.45, 2.98]`, []float64{3.1, 3.45, 2.98}},
		{"mixed sequence", `[3.1, "3.2", "abc", null, 2.9]`, []float64{3.1, 3.2, 2.9}},
		{"null", `null`, nil},
		{"single number", `3.5`, []float64{3.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Input
			require.NoError(t, json.Unmarshal([]byte(tt.data), &in))
			assert.Equal(t, tt.want, in.Values())
		})
	}
}

func TestInput_JSONRejectsObject(t *testing.T) {
	var in Input
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &in))
}

func TestInput_YAML(t *testing.T) {
	var doc struct {
		Text Input `yaml:"text"`
		Seq  Input `yaml:"seq"`
	}
	src := "text: 3.1, abc, 2.98\nseq: [4.5, 4.6, bad, 4.8]\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	assert.Equal(t, []float64{3.1, 2.98}, doc.Text.Values())
	assert.Equal(t, []float64{4.5, 4.6, 4.8}, doc.Seq.Values())
}

func TestInput_MarshalKeepsShape(t *testing.T) {
	b, err := json.Marshal(Text("3.0, 3.1"))
	require.NoError(t, err)
	assert.JSONEq(t, `"3.0, 3.1"`, string(b))

	b, err = json.Marshal(Sequence(3.0, 3.1))
	require.NoError(t, err)
	assert.JSONEq(t, `[3.0, 3.1]`, string(b))
}
