package host

import (
	"fmt"

	"github.com/progbridge/progbridge/application/schema"
	"github.com/progbridge/progbridge/application/validation"
	"github.com/progbridge/progbridge/domain/entities"
	domainerrors "github.com/progbridge/progbridge/domain/errors"
	"github.com/progbridge/progbridge/domain/ports"
	"github.com/progbridge/progbridge/infrastructure/parser"
	"github.com/progbridge/progbridge/ops"
)

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	parser     ports.DescriptorParser
	dispatcher *ops.Dispatcher
	strict     bool // validate the raw document against the JSON schema
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		parser: parser.NewYamlDescriptorParser(),
		strict: true,
	}
}

// Loader orchestrates the descriptor loading pipeline: schema check, parse,
// struct validation and, when a dispatcher is configured, coverage against
// the operations the host implements.
type Loader struct {
	config    loaderConfig
	docSchema *validation.SchemaValidator
	validator ports.DescriptorValidator
}

// LoaderOption configures the Loader.
type LoaderOption func(*loaderConfig)

// WithDescriptorParser sets a custom descriptor parser.
func WithDescriptorParser(p ports.DescriptorParser) LoaderOption {
	return func(c *loaderConfig) {
		c.parser = p
	}
}

// WithHostDispatcher rejects descriptors declaring operations d does not
// implement with the same operand shape.
func WithHostDispatcher(d *ops.Dispatcher) LoaderOption {
	return func(c *loaderConfig) {
		c.dispatcher = d
	}
}

// WithStrictSchema enables/disables validating the raw document against the
// descriptor JSON schema. Enabled by default.
func WithStrictSchema(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.strict = enabled
	}
}

// NewLoader creates a new Loader with defaults.
func NewLoader(opts ...LoaderOption) (*Loader, error) {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	l := &Loader{config: cfg}
	if cfg.strict {
		sv, err := validation.NewSchemaValidator()
		if err != nil {
			return nil, &domainerrors.SchemaError{Err: err, Type: "OpsDescriptor"}
		}
		l.docSchema = sv
	}

	var vopts []validation.Option
	if cfg.dispatcher != nil {
		vopts = append(vopts, validation.WithHostOperations(cfg.dispatcher.Describe()))
	}
	l.validator = validation.NewDescriptorValidator(vopts...)
	return l, nil
}

// LoadDescriptor parses and validates an ops descriptor document.
func (l *Loader) LoadDescriptor(raw []byte) (*entities.OpsDescriptor, error) {
	if l.docSchema != nil {
		res, err := l.docSchema.ValidateDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse descriptor: %w", err)
		}
		if !res.Valid {
			return nil, &domainerrors.SchemaError{Err: fmt.Errorf("%s", res.Summary()), Type: "OpsDescriptor"}
		}
	}

	desc, err := l.config.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}

	res, err := l.validator.Validate(desc)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !res.Valid {
		return nil, &domainerrors.SchemaError{Err: fmt.Errorf("%s", res.Summary()), Type: "OpsDescriptor"}
	}

	return desc, nil
}

// DescriptorSchema returns the JSON schema of the ops descriptor format.
func DescriptorSchema() ([]byte, error) {
	return schema.GenerateDescriptorSchema()
}
