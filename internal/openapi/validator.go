package openapi

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

const jsonContentType = "application/json"

// Document returns a copy of the embedded API description.
func Document() []byte {
	return append([]byte(nil), document...)
}

// ValidationError lists every schema violation found in one request body.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "openapi: invalid request body: " + strings.Join(e.Messages, "; ")
}

// Validator checks JSON request bodies against the operations of a loaded
// document.
type Validator struct {
	spec   *openapi3.T
	bodies map[string]*openapi3.Schema
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Validator, error) {
	return LoadData(ctx, document)
}

// LoadData parses and validates an OpenAPI document from raw bytes.
func LoadData(ctx context.Context, raw []byte) (*Validator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	v := &Validator{spec: spec, bodies: make(map[string]*openapi3.Schema)}
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if schema := requestSchema(operation); schema != nil {
				v.bodies[operationKey(method, path)] = schema
			}
		}
	}
	return v, nil
}

// Operations lists "METHOD path" for every operation in the document.
func (v *Validator) Operations() []string {
	var out []string
	for path, item := range v.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method := range item.Operations() {
			out = append(out, operationKey(method, path))
		}
	}
	sort.Strings(out)
	return out
}

// ValidateBody decodes body as JSON and checks it against the request schema
// of the operation. Operations without a JSON body schema accept anything.
// Schema violations are returned as *ValidationError.
func (v *Validator) ValidateBody(method, path string, body []byte) error {
	schema, ok := v.bodies[operationKey(method, path)]
	if !ok {
		return nil
	}

	var value any
	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(&value); err != nil {
		return &ValidationError{Messages: []string{"body is not valid JSON: " + err.Error()}}
	}

	err := schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}
	return &ValidationError{Messages: schemaMessages(err)}
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation == nil || operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get(jsonContentType)
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func schemaMessages(err error) []string {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []string
		for _, item := range multi {
			out = append(out, schemaMessages(item)...)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		pointer := strings.Join(schemaErr.JSONPointer(), ".")
		if pointer == "" {
			return []string{schemaErr.Reason}
		}
		return []string{pointer + ": " + schemaErr.Reason}
	}
	return []string{err.Error()}
}

func operationKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
