// Package progbridge connects an external program-compilation engine and an
// external program-execution engine to resources owned by the embedding
// application.
//
// The root package holds helpers for turning loosely typed configuration,
// such as a decoded YAML or JSON document, into the validated requests the
// host package executes:
//
//	req, err := progbridge.ParseRunConfig(progbridge.Config{"memory_size": 4096}, program)
//	if err != nil {
//		return err
//	}
//	err = executor.Run(ctx, req)
//
// The adapter itself lives in the sub-packages: memory (bounds-checked access
// to the program state region), ops (operation dispatcher), sink (result and
// error sinks), infrastructure/resourcestore (resource store) and host
// (executor).
package progbridge
