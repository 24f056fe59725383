// Package sink provides the accumulators that receive results and errors
// pushed back by an external engine invocation.
//
// TextSink and BinarySink capture the single artifact of one compilation
// call. ErrorSink receives any number of free-text engine messages and
// surfaces each of them as soon as it arrives.
package sink
