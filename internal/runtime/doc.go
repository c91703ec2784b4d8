/*
Package runtime executes a single instrumented sorting run.

A Run owns one ArrayState and one goroutine. The goroutine is the only writer of
the array; it emits a StepEvent for every operation onto a bounded channel,
then suspends at the pause Gate and the RateLimiter before the next step.
Cancellation is cooperative: it is observed at every instrumentation point and
unwinds the algorithm without applying any further operation.
*/
package runtime
