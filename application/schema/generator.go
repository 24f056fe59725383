// Package schema provides JSON schema generation for the files the host
// reads, most importantly the ops descriptor.
package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"

	"github.com/progbridge/progbridge/domain/entities"
)

// DescriptorSchemaID identifies the generated descriptor schema.
const DescriptorSchemaID = "https://progbridge.dev/schemas/ops-descriptor.json"

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
		Mapper:         kindMapper,
	}
	return marshal(reflector.Reflect(v))
}

// GenerateDescriptorSchema returns the schema of an ops descriptor document.
func GenerateDescriptorSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		Mapper:         kindMapper,
	}
	s := reflector.Reflect(&entities.OpsDescriptor{})
	s.ID = jsonschema.ID(DescriptorSchemaID)
	s.Title = "Operations descriptor"
	return marshal(s)
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}

var valueKindType = reflect.TypeOf(entities.ValueKind(""))

// kindMapper restricts ValueKind to the supported kinds.
func kindMapper(t reflect.Type) *jsonschema.Schema {
	if t != valueKindType {
		return nil
	}
	kinds := entities.ValueKinds()
	enum := make([]any, 0, len(kinds))
	for _, k := range kinds {
		enum = append(enum, string(k))
	}
	return &jsonschema.Schema{Type: "string", Enum: enum}
}
