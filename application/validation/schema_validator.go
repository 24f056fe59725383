package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/progbridge/progbridge/application/schema"
	"github.com/progbridge/progbridge/domain/entities"
)

// SchemaValidator checks raw descriptor documents against the generated
// descriptor JSON schema, before they are decoded into Go types.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles the descriptor schema.
func NewSchemaValidator() (*SchemaValidator, error) {
	raw, err := schema.GenerateDescriptorSchema()
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schema.DescriptorSchemaID, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add descriptor schema: %w", err)
	}
	sch, err := compiler.Compile(schema.DescriptorSchemaID)
	if err != nil {
		return nil, fmt.Errorf("invalid descriptor schema: %w", err)
	}
	return &SchemaValidator{schema: sch}, nil
}

// ValidateDocument validates a YAML or JSON descriptor document.
// Malformed YAML is an error; schema violations are reported in the result.
func (v *SchemaValidator) ValidateDocument(data []byte) (*entities.ValidationResult, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}

	// The schema library expects values as decoded by encoding/json.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize descriptor: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(normalized))
	dec.UseNumber()
	var obj any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("failed to normalize descriptor: %w", err)
	}

	result := &entities.ValidationResult{Valid: true}
	if err := v.schema.Validate(obj); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		addLeaves(result, ve)
	}
	return result, nil
}

// addLeaves records the most specific causes of a validation failure.
func addLeaves(result *entities.ValidationResult, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		field := ve.InstanceLocation
		if field == "" {
			field = "/"
		}
		result.Add(field, "%s", ve.Message)
		return
	}
	for _, cause := range ve.Causes {
		addLeaves(result, cause)
	}
}
