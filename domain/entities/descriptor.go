package entities

import "sort"

// DescriptorVersion is the descriptor format version written by this module.
const DescriptorVersion = "1"

// OpsDescriptor lists the operations a host implements. It is the document the
// compilation engine checks programs against.
type OpsDescriptor struct {
	Version    string   `json:"version,omitempty" yaml:"version,omitempty"`
	Operations []OpSpec `json:"operations" yaml:"operations" validate:"dive"`
}

// Lookup returns the spec registered under name.
func (d *OpsDescriptor) Lookup(name string) (OpSpec, bool) {
	for _, op := range d.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return OpSpec{}, false
}

// Names returns the sorted operation names.
func (d *OpsDescriptor) Names() []string {
	names := make([]string, 0, len(d.Operations))
	for _, op := range d.Operations {
		names = append(names, op.Name)
	}
	sort.Strings(names)
	return names
}
