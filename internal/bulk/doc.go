// Package bulk implements the bulk task operation engine.
//
// A bulk request applies one mutating action (update, move, complete,
// uncomplete) to many task ids at once. The pipeline is strictly linear:
// ids are deduplicated preserving first-occurrence order, one sync command
// with a fresh correlation UUID is built per surviving id, all commands go
// out in a single synchronization call, and the per-command status map is
// reconciled back into an ordered result set.
//
// The design separates pipeline-fatal conditions from routine per-task
// failures. Validation, transport and batch-level upstream errors fail the
// whole request; a task the remote rejected — or never reported on — is a
// normal outcome captured in its OperationResult while the envelope stays
// successful. Callers can therefore always tell "my whole request failed"
// apart from "some of my tasks failed".
//
// Deduplication and batching exist so that exactly one remote call serves
// arbitrarily many task ids. The engine holds no shared mutable state and
// imposes no ordering between concurrent bulk requests; the remote endpoint
// is the sole point of serialization for conflicting mutations.
package bulk
