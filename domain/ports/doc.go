// Package ports defines the interfaces at the boundary between the host and
// the external engines. The compilation and execution engines are consumed
// through these interfaces; infrastructure adapters implement them.
package ports
