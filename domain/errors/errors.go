// Package errors provides domain-specific error types for the host adapter.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/progbridge/progbridge/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// causeDetail converts the cause of a domain error, or returns nil.
func causeDetail(cause error) *entities.ErrorDetail {
	if cause == nil {
		return nil
	}
	return ToErrorDetail(cause)
}

// ConfigError represents a request or configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field, Wrapped: causeDetail(e.Err)}
}

// EngineError reports that an external engine invocation did not succeed.
// Messages are the free-text diagnostics the engine delivered through the
// error callback; they are carried verbatim and never parsed.
type EngineError struct {
	Engine    string // "compiler" or "vm"
	Operation string // "compile-text", "compile-binary", "run"
	Messages  []string
}

func (e *EngineError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("%s %s failed", e.Engine, e.Operation)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Engine, e.Operation, strings.Join(e.Messages, "; "))
}

// ToErrorDetail implements DetailedError.
func (e *EngineError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "engine",
		Code:    e.Operation,
		Details: map[string]any{"engine": e.Engine, "messages": e.Messages},
	}
}

// ResourceError represents a failure to load a named resource.
type ResourceError struct {
	Err  error
	Name string
	Path string
}

func (e *ResourceError) Error() string {
	if e.Path != "" && e.Path != e.Name {
		return fmt.Sprintf("resource %s (%s): %v", e.Name, e.Path, e.Err)
	}
	return fmt.Sprintf("resource %s: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ResourceError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message:    e.Error(),
		Type:       "io",
		Code:       e.Name,
		Wrapped:    causeDetail(e.Err),
		IsNotFound: stdErrors.Is(e.Err, fs.ErrNotExist),
	}
}

// SchemaError represents a schema generation or descriptor validation error.
type SchemaError struct {
	Err  error
	Type string
}

func (e *SchemaError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("schema error for type %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("schema error: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SchemaError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "validation", Code: "schema", Wrapped: causeDetail(e.Err)}
}
