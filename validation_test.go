package progbridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/progbridge/progbridge/domain/errors"
)

func TestValidateConfig_ValidConfig(t *testing.T) {
	type SimpleConfig struct {
		Entry string `json:"entry" validate:"required"`
		Pages int    `json:"pages" validate:"required,min=1,max=65536"`
	}

	var target SimpleConfig
	err := ValidateConfig(Config{"entry": "main", "pages": 17}, &target)
	require.NoError(t, err)

	assert.Equal(t, "main", target.Entry)
	assert.Equal(t, 17, target.Pages)
}

func TestValidateConfig_InvalidValue(t *testing.T) {
	type PageConfig struct {
		Pages int `json:"pages" validate:"min=1,max=65536"`
	}

	tests := []struct {
		name   string
		config Config
	}{
		{name: "too low", config: Config{"pages": 0}},
		{name: "too high", config: Config{"pages": 70000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var target PageConfig
			err := ValidateConfig(tt.config, &target)

			var cfgErr *domainerrors.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "Pages", cfgErr.Field)
		})
	}
}

func TestValidateConfig_TypeMismatch(t *testing.T) {
	type TypedConfig struct {
		Pages int `json:"pages"`
	}

	var target TypedConfig
	err := ValidateConfig(Config{"pages": "many"}, &target)

	var cfgErr *domainerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "failed to decode config")
}

func TestValidateConfig_MarshalError(t *testing.T) {
	var target struct{}
	err := ValidateConfig(Config{"fn": func() {}}, &target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal config map")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(RunRequest{Program: []byte{1}, Entry: "main", MemorySize: 1, StackSize: 1}))

	err := Validate(RunRequest{Program: []byte{1}, MemorySize: 1, StackSize: 1})
	var cfgErr *domainerrors.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "Entry", cfgErr.Field)
	assert.Contains(t, err.Error(), "'required'")
}
