package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

const createTaskSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title"],
  "properties": {
    "title": {"type": "string", "minLength": 1, "maxLength": 255, "pattern": "\\S"},
    "description": {"type": ["string", "null"]}
  }
}`

// Empty strings and nulls are accepted for title and status; they mean "leave unchanged".
const updateTaskSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "title": {"type": ["string", "null"], "maxLength": 255},
    "description": {"type": ["string", "null"]},
    "status": {"enum": ["CREATED", "IN_PROGRESS", "DONE", "", null]}
  }
}`

var (
	createTaskSchema = jsonschema.MustCompileString("https://tasktrack.local/schemas/create_task.json", createTaskSchemaJSON)
	updateTaskSchema = jsonschema.MustCompileString("https://tasktrack.local/schemas/update_task.json", updateTaskSchemaJSON)
)

// ValidationError describes the first schema violation found in a request body
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// decodeBody reads a JSON object from the request and checks it against schema
func decodeBody(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema) (map[string]any, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %v", errMalformedJSON, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedJSON, err)
	}

	if err := schema.Validate(doc); err != nil {
		return nil, toValidationError(err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, &ValidationError{Message: "expected a JSON object"}
	}
	return obj, nil
}

// toValidationError reduces a schema failure to its first leaf cause
func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error()}
	}

	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	return &ValidationError{
		Path:    strings.TrimPrefix(leaf.InstanceLocation, "/"),
		Message: leaf.Message,
	}
}

// nonEmptyString returns the field's value when it is a non-empty string
func nonEmptyString(doc map[string]any, key string) (string, bool) {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
