// Package wazero binds the execution-engine port to the wazero WebAssembly
// runtime.
//
// A binary program is a WebAssembly module. The entry symbol names an
// exported function taking no arguments, and the State Memory Region is the
// module's linear memory. Programs raise operation requests by calling the
// imported host function
//
//	(import "progbridge" "op"
//	  (func (param $name_ptr i32) (param $name_len i32)
//	        (param $params_ptr i32) (param $params_count i32)
//	        (param $targets_ptr i32) (param $targets_count i32)))
//
// where the name is UTF-8 bytes and both address lists are little-endian u32
// arrays in linear memory. A request whose name or address lists cannot be
// read is dropped.
//
// # Basic Usage
//
//	engine, err := wazero.NewEngine(wazero.WithMemoryLimitPages(256))
//	if err != nil {
//	    return err
//	}
//	defer engine.Close(ctx)
//
//	ok := engine.Run(ctx, entities.RunRequest{
//	    Program:    binary,
//	    Entry:      "main",
//	    MemorySize: 1024,
//	    StackSize:  1024,
//	}, dispatcher.Dispatch, errSink.Report)
//
// Every Run gets a fresh wazero runtime, so concurrently running programs
// never share a region.
package wazero
