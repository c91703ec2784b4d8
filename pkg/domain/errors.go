package domain

import "errors"

// ErrAlreadyRunning is returned by Start while another run is Running or Paused.
var ErrAlreadyRunning = errors.New("a run is already active")

// ErrUnknownAlgorithm is returned when an algorithm name cannot be resolved.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// ErrCancelled is returned by instrumentation calls once the run has been stopped.
// It never escapes a controller: a cancelled run finishes with OutcomeCancelled.
var ErrCancelled = errors.New("run cancelled")

// ErrInternal marks a run that died on an unexpected failure (e.g. a recovered panic).
var ErrInternal = errors.New("internal run failure")

// ErrLockHeld is returned by a RunLocker when another owner holds the run lock.
var ErrLockHeld = errors.New("run lock held by another owner")

// ErrLockLost is returned when refreshing a lease that expired and was taken over.
var ErrLockLost = errors.New("run lock lost")
