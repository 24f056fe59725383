package ports

import "github.com/progbridge/progbridge/domain/entities"

// DescriptorParser converts between raw descriptor bytes and an OpsDescriptor.
type DescriptorParser interface {
	// Parse unmarshals raw bytes into an OpsDescriptor.
	Parse(data []byte) (*entities.OpsDescriptor, error)

	// Encode marshals an OpsDescriptor into its file form.
	Encode(desc *entities.OpsDescriptor) ([]byte, error)
}
