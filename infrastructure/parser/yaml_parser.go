package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/domain/ports"
)

// YamlDescriptorParser implements DescriptorParser for YAML.
// JSON documents are valid YAML and parse as well.
type YamlDescriptorParser struct{}

// NewYamlDescriptorParser creates a new YamlDescriptorParser.
func NewYamlDescriptorParser() ports.DescriptorParser {
	return &YamlDescriptorParser{}
}

// Parse unmarshals YAML bytes into an OpsDescriptor. Unknown fields are rejected.
func (p *YamlDescriptorParser) Parse(data []byte) (*entities.OpsDescriptor, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var desc entities.OpsDescriptor
	if err := dec.Decode(&desc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty descriptor")
		}
		return nil, err
	}
	return &desc, nil
}

// Encode marshals an OpsDescriptor to YAML.
func (p *YamlDescriptorParser) Encode(desc *entities.OpsDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(desc); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	return buf.Bytes(), nil
}
