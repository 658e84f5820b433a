// Package sitedoc reads candidate site documents and turns them into scoring inputs.
package sitedoc

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/huangsam/solarsite/schema"
	"gopkg.in/yaml.v3"
)

// Reserved document keys that are not metrics.
const (
	NameKey      = "name"
	OwnershipKey = "landOwnership"
	StdinPath    = "-"
)

// Document is a decoded site document.
type Document struct {
	Path  string
	Input schema.SiteInput
}

// Load reads and decodes the document at path, or stdin when path is "-".
// The file extension picks the decoder; fallback is used for stdin and unknown extensions.
func Load(path string, fallback schema.InputFormat) (Document, error) {
	var (
		data []byte
		err  error
	)
	if path == StdinPath {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to read site document: %w", err)
	}
	return Decode(data, path, FormatFor(path, fallback))
}

// FormatFor returns the input format implied by the path's extension.
func FormatFor(path string, fallback schema.InputFormat) schema.InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return schema.YAMLInput
	case ".json":
		return schema.JSONInput
	default:
		return fallback
	}
}

// IsSiteDocument reports whether path has a supported extension.
func IsSiteDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Decode parses, validates and converts a document.
func Decode(data []byte, path string, format schema.InputFormat) (Document, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return Document{}, err
	}
	return DecodeMap(raw, path)
}

// DecodeMap validates and converts an already parsed document.
func DecodeMap(raw map[string]any, path string) (Document, error) {
	if raw == nil {
		return Document{}, schema.NewInvalidInput("", "document is empty")
	}
	validator, err := defaultValidator()
	if err != nil {
		return Document{}, err
	}
	if err := validator.Validate(raw); err != nil {
		return Document{}, err
	}

	input, err := FromMap(raw)
	if err != nil {
		return Document{}, err
	}
	return Document{Path: path, Input: input}, nil
}

func decodeRaw(data []byte, format schema.InputFormat) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case schema.YAMLInput:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, schema.NewInvalidInput("", fmt.Sprintf("document is not valid YAML: %v", err))
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, schema.NewInvalidInput("", fmt.Sprintf("document is not valid JSON: %v", err))
		}
	}
	if raw == nil {
		return nil, schema.NewInvalidInput("", "document is empty")
	}
	return raw, nil
}

// FromMap converts a flat metrics object into a SiteInput.
// Numeric and null values become metrics, other values are ignored here and left
// to schema validation. The ownership code must be integral when present.
func FromMap(raw map[string]any) (schema.SiteInput, error) {
	input := schema.SiteInput{Metrics: make(map[string]*float64, len(raw))}

	for key, value := range raw {
		switch key {
		case NameKey:
			if value == nil {
				continue
			}
			name, ok := value.(string)
			if !ok {
				return schema.SiteInput{}, schema.NewInvalidInput(NameKey, "must be a string")
			}
			input.Name = name
		case OwnershipKey:
			if value == nil {
				continue
			}
			code, ok := toFloat(value)
			if !ok || math.IsNaN(code) || code != math.Trunc(code) {
				return schema.SiteInput{}, schema.NewInvalidInput(OwnershipKey, "must be an integer code")
			}
			owner := int(code)
			input.Ownership = &owner
		default:
			if value == nil {
				input.Metrics[key] = nil
				continue
			}
			if v, ok := toFloat(value); ok {
				input.Metrics[key] = &v
			}
		}
	}
	return input, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Expand resolves doublestar patterns into site document paths.
// Literal paths and "-" are kept as given, glob matches are filtered to supported
// extensions. Results keep pattern order and are deduplicated.
func Expand(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, pattern := range patterns {
		if pattern == StdinPath || !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if IsSiteDocument(match) {
				add(match)
			}
		}
	}
	return paths, nil
}
