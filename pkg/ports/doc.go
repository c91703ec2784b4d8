/*
Package ports defines the driven ports (interfaces) of the sortviz engine.

These interfaces decouple the controller from infrastructure it may be wired
to in a given deployment.

# Key Interfaces

  - RunLocker: Guards the one-live-run rule for a named array, in process or across processes.
*/
package ports
