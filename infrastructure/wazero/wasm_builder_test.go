package wazero

import (
	"encoding/binary"
)

// testProgram assembles a minimal WebAssembly module: one imported
// progbridge.op function, one exported memory and one exported entry
// function whose body is built from the helper methods.
type testProgram struct {
	entry    string
	pages    uint32
	noMemory bool
	segments []dataSegment
	code     []byte
}

type dataSegment struct {
	offset uint32
	data   []byte
}

func newTestProgram() *testProgram {
	return &testProgram{entry: "main", pages: 1}
}

func (p *testProgram) data(offset uint32, b []byte) *testProgram {
	p.segments = append(p.segments, dataSegment{offset: offset, data: b})
	return p
}

// op emits a call to the imported operation function.
func (p *testProgram) op(namePtr, nameLen, paramsPtr, paramsCount, targetsPtr, targetsCount uint32) *testProgram {
	for _, arg := range []uint32{namePtr, nameLen, paramsPtr, paramsCount, targetsPtr, targetsCount} {
		p.code = append(p.code, 0x41) // i32.const
		p.code = append(p.code, sleb32(int32(arg))...)
	}
	p.code = append(p.code, 0x10, 0x00) // call 0
	return p
}

// grow emits memory.grow by pages and drops the result.
func (p *testProgram) grow(pages uint32) *testProgram {
	p.code = append(p.code, 0x41)
	p.code = append(p.code, sleb32(int32(pages))...)
	p.code = append(p.code, 0x40, 0x00, 0x1a)
	return p
}

func (p *testProgram) trap() *testProgram {
	p.code = append(p.code, 0x00) // unreachable
	return p
}

func (p *testProgram) build() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	i32 := byte(0x7f)
	types := []byte{0x02,
		0x60, 0x06, i32, i32, i32, i32, i32, i32, 0x00,
		0x60, 0x00, 0x00,
	}
	out = appendSection(out, 1, types)

	imports := []byte{0x01}
	imports = appendName(imports, DefaultModuleName)
	imports = appendName(imports, OpFunctionName)
	imports = append(imports, 0x00, 0x00)
	out = appendSection(out, 2, imports)

	out = appendSection(out, 3, []byte{0x01, 0x01})

	if !p.noMemory {
		mem := []byte{0x01, 0x00}
		mem = append(mem, uleb32(p.pages)...)
		out = appendSection(out, 5, mem)
	}

	var exports []byte
	if p.noMemory {
		exports = []byte{0x01}
	} else {
		exports = []byte{0x02}
		exports = appendName(exports, "memory")
		exports = append(exports, 0x02, 0x00)
	}
	exports = appendName(exports, p.entry)
	exports = append(exports, 0x00, 0x01)
	out = appendSection(out, 7, exports)

	body := append([]byte{0x00}, p.code...) // no locals
	body = append(body, 0x0b)
	code := []byte{0x01}
	code = append(code, uleb32(uint32(len(body)))...)
	code = append(code, body...)
	out = appendSection(out, 10, code)

	if len(p.segments) > 0 {
		data := uleb32(uint32(len(p.segments)))
		for _, seg := range p.segments {
			data = append(data, 0x00, 0x41)
			data = append(data, sleb32(int32(seg.offset))...)
			data = append(data, 0x0b)
			data = append(data, uleb32(uint32(len(seg.data)))...)
			data = append(data, seg.data...)
		}
		out = appendSection(out, 11, data)
	}

	return out
}

func appendSection(out []byte, id byte, contents []byte) []byte {
	out = append(out, id)
	out = append(out, uleb32(uint32(len(contents)))...)
	return append(out, contents...)
}

func appendName(out []byte, name string) []byte {
	out = append(out, uleb32(uint32(len(name)))...)
	return append(out, name...)
}

func uleb32(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb32(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func le32(vals ...uint32) []byte {
	out := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	return out
}

// addOutProgram computes a+b with the add operation and emits the sum with out.
func addOutProgram(a, b int32) *testProgram {
	return newTestProgram().
		data(0, []byte("add")).
		data(8, []byte("out")).
		data(16, le32(100, 104)).
		data(24, le32(108)).
		data(32, le32(108)).
		data(100, le32(uint32(a), uint32(b))).
		op(0, 3, 16, 2, 24, 1).
		op(8, 3, 32, 1, 0, 0)
}
