// Package algorithms contains the six instrumented sorts.
//
// Each sort is written only against the Instrument interface: every read that
// matters to a viewer goes through Compare or CompareHeld, and every write
// through Swap or Overwrite. An Instrument error (cancellation) is returned
// straight up the call stack, leaving the array exactly as it was after the
// last applied operation.
package algorithms
