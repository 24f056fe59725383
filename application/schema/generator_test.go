//go:build !wasip1

package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema_SimpleStruct(t *testing.T) {
	type RunConfig struct {
		Entry      string `json:"entry"`
		MemorySize int    `json:"memory_size,omitempty"`
	}

	schema, err := GenerateSchema(RunConfig{})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	properties, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok, "properties should be a map")
	assert.Contains(t, properties, "entry")
	assert.Contains(t, properties, "memory_size")

	required, ok := decoded["required"].([]interface{})
	require.True(t, ok, "required should be an array")
	assert.Equal(t, []interface{}{"entry"}, required)
}

func TestGenerateDescriptorSchema(t *testing.T) {
	schema, err := GenerateDescriptorSchema()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(schema, &decoded))

	assert.Equal(t, DescriptorSchemaID, decoded["$id"])
	assert.Equal(t, "object", decoded["type"])

	properties, ok := decoded["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, properties, "operations")
	assert.Contains(t, properties, "version")

	schemaStr := string(schema)
	for _, kind := range []string{"i8", "i32", "u64", "f64"} {
		assert.Contains(t, schemaStr, `"`+kind+`"`)
	}
	assert.Contains(t, schemaStr, "description")
}
