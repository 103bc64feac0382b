// Package pipeline admits input paths, runs each image through the
// describe-and-rename state machine, and reports a batch summary.
//
// [Admit] filters inputs; [Processor.Process] is the per-file state
// machine; [Schedule] bounds how many run at once; [Run] wires them
// together with logging.
package pipeline
