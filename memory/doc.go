// Package memory provides typed, bounds-checked access to a State Memory Region.
//
// A Region is a borrowed view over working memory owned by the execution
// engine. Its size and backing bytes are queried on every access and never
// cached, because the engine may grow or relocate the region between
// operations. Accesses that do not fit entirely inside the region are not
// errors: reads report absent and writes are dropped, and neither ever touches
// a partial value.
//
//	v, ok := memory.Read[int32](region, addr)
//	if !ok {
//	    return // operand absent
//	}
//	memory.Write[int32](region, target, v+1)
package memory
