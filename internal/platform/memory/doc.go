// Package memory provides process-local store implementations.
//
// TaskRegistry keeps task records in insertion order behind a single mutex.
// Each operation first waits out a configurable latency outside the lock,
// then performs its read or mutation inside the lock, so slow callers never
// block one another while they wait.
package memory
