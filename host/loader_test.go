package host

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progbridge/progbridge/domain/entities"
	domainerrors "github.com/progbridge/progbridge/domain/errors"
	"github.com/progbridge/progbridge/ops"
)

const builtinDescriptor = `
version: "1"
operations:
  - name: add
    params: [i32, i32]
    targets: [i32]
  - name: out
    params: [i32]
`

func TestLoader_LoadDescriptor(t *testing.T) {
	loader, err := NewLoader()
	require.NoError(t, err)

	desc, err := loader.LoadDescriptor([]byte(builtinDescriptor))
	require.NoError(t, err)
	assert.Equal(t, "1", desc.Version)

	add, ok := desc.Lookup("add")
	require.True(t, ok)
	assert.True(t, add.Accepts(entities.OpRequest{Name: "add", Params: []uint64{0, 4}, Targets: []uint64{8}}))
}

func TestLoader_SchemaViolation(t *testing.T) {
	loader, err := NewLoader()
	require.NoError(t, err)

	_, err = loader.LoadDescriptor([]byte(`{"operations":[{"name":"out","params":["i128"]}]}`))

	var schemaErr *domainerrors.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Contains(t, err.Error(), "/operations/0/params/0")
}

func TestLoader_StructValidationWithoutSchema(t *testing.T) {
	loader, err := NewLoader(WithStrictSchema(false))
	require.NoError(t, err)

	_, err = loader.LoadDescriptor([]byte(`{"operations":[{"name":"out","params":["i128"]},{"name":"out"}]}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
	assert.Contains(t, err.Error(), `duplicate operation "out"`)
}

func TestLoader_HostCoverage(t *testing.T) {
	d, err := ops.NewDispatcher(ops.WithBundle(ops.BuiltinBundle(&bytes.Buffer{})))
	require.NoError(t, err)
	loader, err := NewLoader(WithHostDispatcher(d))
	require.NoError(t, err)

	_, err = loader.LoadDescriptor([]byte(builtinDescriptor))
	require.NoError(t, err)

	_, err = loader.LoadDescriptor([]byte("operations:\n  - name: mul\n    params: [i32, i32]\n    targets: [i32]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `operation "mul" is not implemented by this host`)
}

func TestLoader_Malformed(t *testing.T) {
	loader, err := NewLoader()
	require.NoError(t, err)

	_, err = loader.LoadDescriptor([]byte("operations: ["))
	assert.Error(t, err)
}

func TestDescriptorSchema(t *testing.T) {
	raw, err := DescriptorSchema()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "properties")
}
