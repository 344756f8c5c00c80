package ocr

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Schemas for the collaborator's wire formats. Output that does not conform
// is rejected as a collaborator failure instead of propagating partial
// garbage into extraction.

const blockSchema = `{
	"type": "object",
	"required": ["text", "confidence"],
	"properties": {
		"text": {"type": "string"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"row_index": {"type": "integer", "minimum": 0},
		"col_position": {"type": "number"}
	}
}`

var resultSchemaJSON = `{
	"type": "object",
	"required": ["success"],
	"properties": {
		"success": {"type": "boolean"},
		"file_name": {"type": "string"},
		"file_path": {"type": "string"},
		"full_text": {"type": "string"},
		"rows": {"type": "array", "items": {"type": "array", "items": ` + blockSchema + `}},
		"avg_confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"total_text_blocks": {"type": "integer", "minimum": 0},
		"page_count": {"type": "integer", "minimum": 0},
		"processing_method": {"type": "string"},
		"error": {"type": "string"}
	},
	"if": {"properties": {"success": {"const": true}}},
	"then": {"required": ["full_text", "rows", "avg_confidence", "total_text_blocks"]}
}`

var batchSchemaJSON = `{
	"type": "object",
	"required": ["success"],
	"properties": {
		"success": {"type": "boolean"},
		"results": {"type": "array", "items": ` + resultSchemaJSON + `},
		"error": {"type": "string"}
	},
	"if": {"properties": {"success": {"const": true}}},
	"then": {"required": ["results"]}
}`

const profileSchemaJSON = `{
	"type": "object",
	"required": ["file_size_mb", "page_count", "has_native_text", "has_images"],
	"properties": {
		"file_size_mb": {"type": "number", "minimum": 0},
		"page_count": {"type": "integer", "minimum": 0},
		"has_native_text": {"type": "boolean"},
		"has_images": {"type": "boolean"}
	}
}`

var (
	resultSchema  = jsonschema.MustCompileString("ocr-result.json", resultSchemaJSON)
	batchSchema   = jsonschema.MustCompileString("ocr-batch.json", batchSchemaJSON)
	profileSchema = jsonschema.MustCompileString("pdf-profile.json", profileSchemaJSON)
)

// ValidatePayload checks raw collaborator JSON against the schema for the
// given mode before it is unmarshaled.
func ValidatePayload(mode Mode, doc any) error {
	var schema *jsonschema.Schema
	switch mode {
	case ModeSingle:
		schema = resultSchema
	case ModeBatch:
		schema = batchSchema
	case ModeAnalyze:
		schema = profileSchema
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("malformed %s payload: %s", mode, condenseSchemaError(err))
	}
	return nil
}

// condenseSchemaError flattens jsonschema's multi-line error output so it can
// be carried in a single collaborator-failure message.
func condenseSchemaError(err error) string {
	return strings.Join(strings.Fields(err.Error()), " ")
}
