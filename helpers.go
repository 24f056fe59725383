package progbridge

import (
	"fmt"
	"math"

	"github.com/progbridge/progbridge/domain/entities"
	domainerrors "github.com/progbridge/progbridge/domain/errors"
)

// GetString extracts a string value from config.
func GetString(config Config, key string) (string, bool) {
	v, ok := config[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetBool extracts a bool value from config.
func GetBool(config Config, key string) (bool, bool) {
	v, ok := config[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// GetUint64 extracts a non-negative integer from config. Decoders differ in
// how they type numbers (YAML yields int, JSON float64), so every integral
// representation is accepted. Negative and fractional values are not.
func GetUint64(config Config, key string) (uint64, bool) {
	v, ok := config[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return uint64(n), n >= 0
	case int32:
		return uint64(n), n >= 0
	case int64:
		return uint64(n), n >= 0
	case uint:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case float64:
		if n < 0 || n != math.Trunc(n) || n >= math.MaxUint64 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}

// GetStringDefault extracts a string value from config, or defaultValue when
// the key is absent or not a string.
func GetStringDefault(config Config, key, defaultValue string) string {
	if s, ok := GetString(config, key); ok {
		return s
	}
	return defaultValue
}

// MustGetString extracts a required string value.
func MustGetString(config Config, key string) (string, error) {
	s, ok := GetString(config, key)
	if !ok {
		return "", &domainerrors.ConfigError{
			Field: key,
			Err:   fmt.Errorf("required string field '%s' is missing or not a string", key),
		}
	}
	return s, nil
}

// optionalUint64 returns defaultValue when key is absent, and an error when
// it is present with an unusable value.
func optionalUint64(config Config, key string, defaultValue uint64) (uint64, error) {
	if _, present := config[key]; !present {
		return defaultValue, nil
	}
	n, ok := GetUint64(config, key)
	if !ok {
		return 0, &domainerrors.ConfigError{
			Field: key,
			Err:   fmt.Errorf("field '%s' must be a non-negative integer, got %v", key, config[key]),
		}
	}
	return n, nil
}

// ParseRunConfig builds a validated RunRequest for program. Absent keys take
// the defaults: entry "main", memory_size 1024, stack_size 1024.
func ParseRunConfig(config Config, program []byte) (RunRequest, error) {
	req := RunRequest{
		Program: program,
		Entry:   GetStringDefault(config, KeyEntry, entities.DefaultEntry),
	}

	var err error
	if req.MemorySize, err = optionalUint64(config, KeyMemorySize, entities.DefaultMemorySize); err != nil {
		return RunRequest{}, err
	}
	if req.StackSize, err = optionalUint64(config, KeyStackSize, entities.DefaultStackSize); err != nil {
		return RunRequest{}, err
	}

	if err := Validate(req); err != nil {
		return RunRequest{}, err
	}
	return req, nil
}

// ParseCompileConfig builds a validated CompileRequest. program and
// descriptor are required.
func ParseCompileConfig(config Config) (CompileRequest, error) {
	var req CompileRequest
	if err := ValidateConfig(config, &req); err != nil {
		return CompileRequest{}, err
	}
	return req, nil
}
