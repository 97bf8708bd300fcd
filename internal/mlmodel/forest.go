package mlmodel

import (
	"context"
	"fmt"

	"github.com/abhisek/uniguide/internal/features"
)

// leaf marks a node without children, as in scikit-learn tree exports.
const leaf = -1

// Node is one decision-tree node. Samples with x[Feature] <= Threshold go
// left. Leaves carry per-class sample weights in Value.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

// Tree is a flattened decision tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest is a random-forest classifier. Class probabilities are the mean of
// the per-tree normalized leaf distributions; the label is the class with
// the highest mean probability.
type Forest struct {
	Classes []string
	Trees   []Tree
}

func (f *Forest) Name() string { return "random-forest" }

// Predict returns the most probable class and its probability.
func (f *Forest) Predict(_ context.Context, v features.Vector) (Prediction, error) {
	proba, err := f.PredictProba(v)
	if err != nil {
		return Prediction{}, err
	}
	best := 0
	for i := range proba {
		if proba[i] > proba[best] {
			best = i
		}
	}
	return Prediction{Label: f.Classes[best], Probability: proba[best]}, nil
}

// PredictProba returns mean class probabilities in Classes order.
func (f *Forest) PredictProba(v features.Vector) ([]float64, error) {
	if len(f.Trees) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	proba := make([]float64, len(f.Classes))
	for i, t := range f.Trees {
		dist, err := t.leafDistribution(v, len(f.Classes))
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		for c := range proba {
			proba[c] += dist[c]
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.Trees))
	}
	return proba, nil
}

// leafDistribution walks the tree and returns the reached leaf's value
// normalized to sum to 1.
func (t Tree) leafDistribution(v features.Vector, nClasses int) ([]float64, error) {
	idx := 0
	// A well-formed tree reaches a leaf in fewer steps than it has nodes.
	for steps := 0; steps <= len(t.Nodes); steps++ {
		if idx < 0 || idx >= len(t.Nodes) {
			return nil, fmt.Errorf("node index %d out of range", idx)
		}
		n := t.Nodes[idx]
		if n.Left == leaf && n.Right == leaf {
			return normalize(n.Value, nClasses)
		}
		if n.Feature < 0 || n.Feature >= features.Size {
			return nil, fmt.Errorf("node %d: feature %d out of range", idx, n.Feature)
		}
		if v[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
	}
	return nil, fmt.Errorf("no leaf reached after %d steps", len(t.Nodes)+1)
}

func normalize(value []float64, nClasses int) ([]float64, error) {
	if len(value) != nClasses {
		return nil, fmt.Errorf("leaf has %d class weights, want %d", len(value), nClasses)
	}
	var sum float64
	for _, w := range value {
		if w < 0 {
			return nil, fmt.Errorf("negative class weight %g", w)
		}
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("leaf has no weight")
	}
	out := make([]float64, nClasses)
	for i, w := range value {
		out[i] = w / sum
	}
	return out, nil
}
