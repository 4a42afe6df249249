// Package dialog owns the template keys the skill produces and the
// locale registry mapping keys to phrase templates.
package dialog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	skillerrors "timeskill/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

// Template keys produced by the response builder. The phrase text behind
// each key is locale data, not code.
const (
	KeyCurrentTime         = "current-time"
	KeyCurrentTimeLocation = "current-time-location"
	KeyFutureTime          = "future-time"
	KeyFutureTimeLocation  = "future-time-location"
	KeyLocationNotFound    = "location-not-found"
)

// registrySchema validates a locale registry file: every core key must be
// present and map to a non-empty template string.
const registrySchema = `{
	"type": "object",
	"required": ["lang", "templates"],
	"properties": {
		"lang": {"type": "string", "minLength": 2},
		"templates": {
			"type": "object",
			"required": [
				"current-time",
				"current-time-location",
				"future-time",
				"future-time-location",
				"location-not-found"
			],
			"additionalProperties": {"type": "string", "minLength": 1}
		}
	}
}`

// Registry holds the phrase templates for one locale.
type Registry struct {
	Lang      string            `json:"lang"`
	Templates map[string]string `json:"templates"`
}

// LoadRegistry reads and validates a locale registry file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dialog registry: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry validates raw registry JSON against the registry schema.
func ParseRegistry(data []byte) (*Registry, error) {
	schemaLoader := gojsonschema.NewStringLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, skillerrors.NewRegistryInvalidError(err.Error())
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, skillerrors.NewRegistryInvalidError(strings.Join(errs, "; "))
	}

	var registry Registry
	if err := json.Unmarshal(data, &registry); err != nil {
		return nil, skillerrors.NewRegistryInvalidError(err.Error())
	}
	return &registry, nil
}

// Render substitutes {placeholder} values into the template for key. A
// missing key is a template lookup miss and propagates; the core never
// silently speaks the wrong phrase.
func (r *Registry) Render(key string, substitutions map[string]string) (string, error) {
	template, ok := r.Templates[key]
	if !ok {
		return "", skillerrors.NewTemplateNotFoundError(key)
	}
	rendered := template
	for name, value := range substitutions {
		rendered = strings.ReplaceAll(rendered, "{"+name+"}", value)
	}
	return rendered, nil
}
