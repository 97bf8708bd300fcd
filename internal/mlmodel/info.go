package mlmodel

import "github.com/abhisek/uniguide/internal/features"

// Info describes the configured model for operators.
type Info struct {
	Available     bool           `json:"available"`
	Name          string         `json:"name,omitempty"`
	Source        string         `json:"source"`
	FormatVersion string         `json:"formatVersion,omitempty"`
	Kind          string         `json:"kind,omitempty"`
	Features      []string       `json:"features"`
	Classes       []string       `json:"classes,omitempty"`
	TrendClasses  []string       `json:"trendClasses,omitempty"`
	Trees         int            `json:"trees,omitempty"`
	Scale         string         `json:"confidenceScale,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// Describe loads src if needed and reports what it serves.
func Describe(src Source) Info {
	info := Info{Source: "none", Features: features.Names[:]}
	if src == nil {
		info.Error = ErrModelUnavailable.Error()
		return info
	}

	switch s := src.(type) {
	case *Loader:
		info.Source = "builtin"
		if s.Path() != "" {
			info.Source = s.Path()
		}
		if a, err := s.Artifact(); err == nil {
			info.FormatVersion = a.FormatVersion
			info.Kind = a.Kind
			info.Classes = a.Classes
			info.TrendClasses = a.TrendClasses
			info.Trees = len(a.Trees)
			info.Metadata = a.Metadata
		}
	case staticSource:
		info.Source = "static"
	}

	clf, err := src.Load()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Available = true
	info.Name = clf.Name()
	if r, ok := clf.(*RemoteClassifier); ok {
		info.Source = r.baseURL
		info.Scale = string(r.scale)
	}
	return info
}
