/*
Package observability provides tools for monitoring the sortviz engine.

It turns controller lifecycle hooks into Prometheus metrics (runs by outcome,
steps by kind, run duration, active runs) and lets several hook sets be
combined, so logging and metrics can observe the same controller.
*/
package observability
