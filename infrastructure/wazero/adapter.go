package wazero

import (
	"context"
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/progbridge/progbridge/domain/entities"
	"github.com/progbridge/progbridge/domain/ports"
)

// OpFunctionName is the name under which the operation host function is exported.
const OpFunctionName = "op"

var opParamTypes = []api.ValueType{
	api.ValueTypeI32, api.ValueTypeI32, // name
	api.ValueTypeI32, api.ValueTypeI32, // params
	api.ValueTypeI32, api.ValueTypeI32, // targets
}

// registerHostModule instantiates the host module that guests import the
// operation function from. Each call to the function is decoded into an
// OpRequest and handed to dispatch together with the caller's memory.
func registerHostModule(ctx context.Context, runtime wazero.Runtime, cfg engineConfig, dispatch ports.OpCallback) error {
	_, err := runtime.NewHostModuleBuilder(cfg.moduleName).
		NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			handleOpCall(ctx, mod, stack, cfg, dispatch)
		}), opParamTypes, []api.ValueType{}).
		WithParameterNames("name_ptr", "name_len", "params_ptr", "params_count", "targets_ptr", "targets_count").
		Export(OpFunctionName).
		Instantiate(ctx)
	return err
}

// handleOpCall handles one operation request from the guest. It never traps:
// malformed requests are logged and dropped, and a panicking dispatcher is
// contained here.
func handleOpCall(ctx context.Context, mod api.Module, stack []uint64, cfg engineConfig, dispatch ports.OpCallback) {
	defer func() {
		if r := recover(); r != nil {
			cfg.logger.ErrorContext(ctx, "wazero: operation dispatch panicked",
				"run_id", GetRunID(ctx, mod),
				"panic", r)
		}
	}()

	mem := mod.Memory()
	req, err := decodeOpRequest(mem, stack, cfg)
	if err != nil {
		cfg.logger.DebugContext(ctx, "wazero: malformed operation request dropped",
			"run_id", GetRunID(ctx, mod),
			"error", err)
		return
	}

	if dispatch == nil {
		return
	}
	dispatch(ctx, req, linearMemory{mem: mem})
}

func decodeOpRequest(mem api.Memory, stack []uint64, cfg engineConfig) (entities.OpRequest, error) {
	if mem == nil {
		return entities.OpRequest{}, fmt.Errorf("guest has no memory")
	}

	namePtr, nameLen := api.DecodeU32(stack[0]), api.DecodeU32(stack[1])
	if nameLen == 0 || nameLen > cfg.maxNameLength {
		return entities.OpRequest{}, fmt.Errorf("operation name length %d out of range", nameLen)
	}
	name, ok := mem.Read(namePtr, nameLen)
	if !ok {
		return entities.OpRequest{}, fmt.Errorf("operation name at %d+%d outside memory", namePtr, nameLen)
	}
	if !utf8.Valid(name) {
		return entities.OpRequest{}, fmt.Errorf("operation name is not valid UTF-8")
	}

	params, err := readAddresses(mem, api.DecodeU32(stack[2]), api.DecodeU32(stack[3]), cfg.maxOperands)
	if err != nil {
		return entities.OpRequest{}, fmt.Errorf("params: %w", err)
	}
	targets, err := readAddresses(mem, api.DecodeU32(stack[4]), api.DecodeU32(stack[5]), cfg.maxOperands)
	if err != nil {
		return entities.OpRequest{}, fmt.Errorf("targets: %w", err)
	}

	return entities.OpRequest{
		Name:    string(name),
		Params:  params,
		Targets: targets,
	}, nil
}

// readAddresses decodes count little-endian u32 addresses starting at ptr.
func readAddresses(mem api.Memory, ptr, count, maxCount uint32) ([]uint64, error) {
	if count == 0 {
		return nil, nil
	}
	if count > maxCount {
		return nil, fmt.Errorf("%d addresses exceed maximum %d", count, maxCount)
	}
	byteCount := uint64(count) * 4
	if byteCount > uint64(mem.Size()) {
		return nil, fmt.Errorf("address list of %d bytes exceeds memory size %d", byteCount, mem.Size())
	}
	raw, ok := mem.Read(ptr, uint32(byteCount))
	if !ok {
		return nil, fmt.Errorf("address list at %d+%d outside memory", ptr, byteCount)
	}
	addrs := make([]uint64, count)
	for i := range addrs {
		addrs[i] = uint64(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return addrs, nil
}
