package mlmodel

import (
	"fmt"
	"sync"
)

// Source supplies a loaded classifier.
type Source interface {
	Load() (Classifier, error)
}

// Loader reads the model artifact once and caches the outcome, success or
// failure, for the life of the process. It is safe for concurrent first use.
type Loader struct {
	path string

	once     sync.Once
	artifact *Artifact
	clf      Classifier
	err      error
}

// NewLoader returns a loader for the artifact at path. An empty path selects
// the artifact compiled into the binary.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Path returns the configured artifact path ("" for the built-in artifact).
func (l *Loader) Path() string {
	return l.path
}

// Load returns the cached classifier, reading the artifact on first call.
func (l *Loader) Load() (Classifier, error) {
	l.once.Do(l.load)
	return l.clf, l.err
}

// Artifact returns the decoded artifact, loading it if needed.
func (l *Loader) Artifact() (*Artifact, error) {
	l.once.Do(l.load)
	return l.artifact, l.err
}

func (l *Loader) load() {
	var (
		a   *Artifact
		err error
	)
	if l.path == "" {
		a, err = DecodeArtifact(defaultArtifact)
	} else {
		a, err = ReadArtifact(l.path)
	}
	if err != nil {
		l.err = fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		return
	}
	l.artifact = a
	l.clf = a.Forest()
}

// Static wraps an already constructed classifier as a Source.
func Static(c Classifier) Source {
	return staticSource{c}
}

type staticSource struct{ c Classifier }

func (s staticSource) Load() (Classifier, error) {
	if s.c == nil {
		return nil, ErrModelUnavailable
	}
	return s.c, nil
}
