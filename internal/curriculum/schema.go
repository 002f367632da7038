package curriculum

import (
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// rootSchema covers the required top-level shape of an import document.
// Deeper structure is handled by the normalizer itself, which can name the
// exact offending path.
const rootSchema = `{
	"type": "object",
	"required": ["name", "description", "degrees"],
	"properties": {
		"name": {"type": "string"},
		"description": {"type": "string"},
		"degrees": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title"],
				"properties": {
					"title": {"type": "string"},
					"type": {"type": "string"},
					"requiredCredits": {"type": "number", "minimum": 0},
					"courses": {
						"type": "array",
						"items": {"anyOf": [{"type": "string"}, {"type": "object"}]}
					}
				}
			}
		}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(rootSchema)

func checkSchema(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &FormatError{Detail: err.Error()}
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	details := make([]string, 0, len(result.Errors()))
	for _, resErr := range result.Errors() {
		details = append(details, resErr.String())
	}
	return &FormatError{Field: first.Field(), Detail: strings.Join(details, "; ")}
}
