package progbridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/progbridge/progbridge/domain/errors"
)

// validate is a package-level singleton; validator caches struct metadata.
var validate = validator.New()

// Validate runs the struct tag validation on v. The first failing field is
// reported as a ConfigError.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domainerrors.ConfigError{
			Field: fe.Field(),
			Err:   fmt.Errorf("failed on the '%s' tag (value %v)", fe.Tag(), fe.Value()),
		}
	}
	return &domainerrors.ConfigError{Err: err}
}

// ValidateConfig decodes config into targetStruct through its JSON tags and
// validates the result.
func ValidateConfig(config Config, targetStruct interface{}) error {
	jsonBytes, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config map: %w", err)
	}

	if err := json.Unmarshal(jsonBytes, targetStruct); err != nil {
		return &domainerrors.ConfigError{Err: fmt.Errorf("failed to decode config: %w", err)}
	}

	return Validate(targetStruct)
}
