// Package journal provides an SQLite-backed append-only log of dispatched
// actions.
//
// The journal records ACTIONS, never state. Because reducers are pure,
// replaying a journal against the same reducer and initial state
// reconstructs the same final state; there is no state snapshotting
// anywhere in this package.
//
// A Recorder is a pass-through middleware: installed last in a store's
// chain it writes one row for exactly the actions that reach the reducer,
// installed first it writes every action dispatched, vetoed or not. Rows
// are ordered by a logical sequence number drawn from the journal's own
// clock - wall-clock timestamps are stored for humans but never used for
// ordering.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package journal
