// Package validation checks ops descriptors before they are handed to the
// compilation engine.
package validation

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/domain/ports"
)

// validate is a package-level singleton; building a validator is expensive.
var validate = validator.New()

// descriptorValidatorConfig holds configuration for the DescriptorValidator.
type descriptorValidatorConfig struct {
	host *entities.OpsDescriptor
}

// Option configures a DescriptorValidator.
type Option func(*descriptorValidatorConfig)

// WithHostOperations checks every declared operation against what the host
// actually implements, typically ops.Dispatcher.Describe().
func WithHostOperations(host *entities.OpsDescriptor) Option {
	return func(c *descriptorValidatorConfig) {
		c.host = host
	}
}

// DescriptorValidator validates descriptors with struct tags, rejects
// duplicate operation names and, when configured, operations the host cannot
// execute.
type DescriptorValidator struct {
	config descriptorValidatorConfig
}

// NewDescriptorValidator creates a new validator.
func NewDescriptorValidator(opts ...Option) ports.DescriptorValidator {
	var cfg descriptorValidatorConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &DescriptorValidator{config: cfg}
}

// Validate checks desc. The returned error is reserved for problems with the
// validator itself; descriptor problems are reported in the result.
func (v *DescriptorValidator) Validate(desc *entities.OpsDescriptor) (*entities.ValidationResult, error) {
	if desc == nil {
		return nil, errors.New("descriptor is nil")
	}
	result := &entities.ValidationResult{Valid: true}

	if err := validate.Struct(desc); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("failed to validate descriptor: %w", err)
		}
		for _, fe := range verrs {
			result.Add(fe.Namespace(), "failed %q validation (value %v)", fe.Tag(), fe.Value())
		}
	}

	seen := make(map[string]int, len(desc.Operations))
	for i, op := range desc.Operations {
		field := fmt.Sprintf("OpsDescriptor.Operations[%d].Name", i)
		if first, dup := seen[op.Name]; dup && op.Name != "" {
			result.Add(field, "duplicate operation %q, first declared at index %d", op.Name, first)
			continue
		}
		seen[op.Name] = i

		if v.config.host != nil && op.Name != "" {
			checkAgainstHost(result, field, op, v.config.host)
		}
	}

	return result, nil
}

func checkAgainstHost(result *entities.ValidationResult, field string, op entities.OpSpec, host *entities.OpsDescriptor) {
	impl, ok := host.Lookup(op.Name)
	if !ok {
		result.Add(field, "operation %q is not implemented by this host", op.Name)
		return
	}
	if !slices.Equal(op.Params, impl.Params) {
		result.Add(field, "operation %q declares params %v, host implements %v", op.Name, op.Params, impl.Params)
	}
	if !slices.Equal(op.Targets, impl.Targets) {
		result.Add(field, "operation %q declares targets %v, host implements %v", op.Name, op.Targets, impl.Targets)
	}
}
