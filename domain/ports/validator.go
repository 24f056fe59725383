package ports

import "github.com/progbridge/progbridge/domain/entities"

// DescriptorValidator checks an ops descriptor for structural problems.
type DescriptorValidator interface {
	Validate(desc *entities.OpsDescriptor) (*entities.ValidationResult, error)
}
