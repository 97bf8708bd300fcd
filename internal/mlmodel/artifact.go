package mlmodel

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/abhisek/uniguide/internal/features"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the artifact format major version this build reads.
const SupportedMajor = "v1"

//go:embed artifacts/academic_risk_model.json
var defaultArtifact []byte

// DefaultArtifact returns the artifact compiled into the binary.
func DefaultArtifact() []byte {
	return bytes.Clone(defaultArtifact)
}

// Artifact is a persisted, pre-trained classifier together with its label
// encoders: Classes for the risk label and TrendClasses for trend categories.
type Artifact struct {
	FormatVersion string         `json:"format_version"`
	Kind          string         `json:"kind"`
	FeatureNames  []string       `json:"feature_names"`
	Classes       []string       `json:"classes"`
	TrendClasses  []string       `json:"trend_classes,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Trees         []Tree         `json:"trees"`
}

// Forest returns the classifier described by the artifact.
func (a *Artifact) Forest() *Forest {
	return &Forest{Classes: a.Classes, Trees: a.Trees}
}

// ReadArtifact reads and decodes the artifact at path.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	a, err := DecodeArtifact(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// DecodeArtifact validates data against the artifact schema, checks the
// format version and feature layout, and decodes it.
func DecodeArtifact(data []byte) (*Artifact, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile artifact schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}

	if !semver.IsValid(a.FormatVersion) || semver.Major(a.FormatVersion) != SupportedMajor {
		return nil, fmt.Errorf("unsupported format version %q (want %s.x.x)", a.FormatVersion, SupportedMajor)
	}
	if err := a.checkLayout(); err != nil {
		return nil, err
	}
	return &a, nil
}

// checkLayout verifies the artifact was fitted on this build's feature order.
func (a *Artifact) checkLayout() error {
	if len(a.FeatureNames) != features.Size {
		return fmt.Errorf("artifact has %d features, want %d", len(a.FeatureNames), features.Size)
	}
	for i, name := range a.FeatureNames {
		if name != features.Names[i] {
			return fmt.Errorf("feature %d is %q, want %q", i, name, features.Names[i])
		}
	}
	for ti, t := range a.Trees {
		for ni, n := range t.Nodes {
			if n.Left == leaf && n.Right == leaf && len(n.Value) != len(a.Classes) {
				return fmt.Errorf("tree %d node %d: %d class weights for %d classes", ti, ni, len(n.Value), len(a.Classes))
			}
		}
	}
	return nil
}

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler wants a decoded JSON value, not Go maps with typed slices.
		raw, err := json.Marshal(artifactSchema)
		if err != nil {
			schemaErr = err
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			schemaErr = err
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://academic-risk-artifact.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = err
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
	})
	return schemaCompiled, schemaErr
}
