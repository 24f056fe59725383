// Package host is the entry point for embedding applications.
//
// An Executor owns the resources served to the compilation engine and the
// operation dispatcher a running program calls back into. It drives the
// three engine entry points (compile-to-text, compile-to-binary and run),
// surfaces every engine message through an error sink as it arrives, and
// turns engine failures into Go errors.
//
//	exec, err := host.NewExecutor(host.WithCompiler(compiler))
//	if err != nil {
//	    return err
//	}
//	defer exec.Close(ctx)
//
//	if err := exec.LoadResource("res/program.kj", "program.kj"); err != nil {
//	    return err
//	}
//	if err := exec.PublishDescriptor("descriptor.yaml"); err != nil {
//	    return err
//	}
//	binary, err := exec.CompileBinary(ctx, entities.CompileRequest{
//	    ProgramPath:    "program.kj",
//	    DescriptorPath: "descriptor.yaml",
//	})
//	if err != nil {
//	    return err
//	}
//	err = exec.Run(ctx, entities.RunRequest{
//	    Program:    binary,
//	    Entry:      entities.DefaultEntry,
//	    MemorySize: entities.DefaultMemorySize,
//	    StackSize:  entities.DefaultStackSize,
//	})
package host
