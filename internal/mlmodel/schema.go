package mlmodel

// artifactSchema is the JSON schema every model artifact must satisfy
// before it is decoded.
var artifactSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"format_version": map[string]any{
			"type":    "string",
			"pattern": `^v[0-9]+\.[0-9]+\.[0-9]+$`,
		},
		"kind": map[string]any{
			"type": "string",
			"enum": []any{"random_forest"},
		},
		"feature_names": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": 1,
		},
		"classes": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string", "minLength": 1},
			"minItems":    2,
			"uniqueItems": true,
		},
		"trend_classes": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"metadata": map[string]any{
			"type": "object",
		},
		"trees": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"nodes": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"feature":   map[string]any{"type": "integer"},
								"threshold": map[string]any{"type": "number"},
								"left":      map[string]any{"type": "integer", "minimum": -1},
								"right":     map[string]any{"type": "integer", "minimum": -1},
								"value": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "number", "minimum": 0},
								},
							},
							"required": []any{"left", "right"},
						},
					},
				},
				"required": []any{"nodes"},
			},
		},
	},
	"required": []any{"format_version", "kind", "feature_names", "classes", "trees"},
}
