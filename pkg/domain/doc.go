/*
Package domain contains the core types shared by the sortviz engine and its consumers.

It defines the vocabulary of an instrumented sorting run: which algorithm runs,
the ordered StepEvents it emits, the ExecutionState of the controller and the
Result a run finishes with. This package is kept pure and free of I/O,
goroutines and persistence so renderers can depend on it without pulling in the
runtime.

# Key Entities

  - Algorithm: One of the six instrumented sorts (bubble, selection, insertion, merge, quick, heap).
  - StepEvent: One externally observable operation (compare, swap, overwrite, mark).
  - ExecutionState: The controller state machine (Idle, Running, Paused, Stopping, Stopped).
  - Result: How a run ended (completed, cancelled, failed) and what it emitted.
*/
package domain
