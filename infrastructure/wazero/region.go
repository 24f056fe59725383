package wazero

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/progbridge/progbridge/memory"
)

// linearMemory exposes a module's linear memory as a memory.Region. It holds
// only the api.Memory handle; size and base are asked for on every call
// because the guest may grow, and so relocate, its memory between requests.
type linearMemory struct {
	mem api.Memory
}

var _ memory.Region = linearMemory{}

func (m linearMemory) Size() uint64 {
	if m.mem == nil {
		return 0
	}
	return uint64(m.mem.Size())
}

func (m linearMemory) Bytes(bool) []byte {
	if m.mem == nil {
		return nil
	}
	b, ok := m.mem.Read(0, m.mem.Size())
	if !ok {
		return nil
	}
	return b
}
