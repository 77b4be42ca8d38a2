// Package dux implements a unidirectional state-management core: a single
// state value that is transformed only by dispatching declared actions
// through a pure reducer, with optional interception and post-update
// notification.
//
// # Dispatch Pipeline
//
// Every call to Store.Dispatch runs the same synchronous pipeline:
//
//  1. The action is handed to each registered middleware in registration
//     order. A middleware may pass the action through, rewrite it, or veto
//     it. A veto aborts the whole dispatch - the reducer never runs and no
//     subscriber fires.
//  2. The active reducer is applied to (current state, final action) and the
//     Store's state is replaced with the result.
//  3. Every subscriber is notified with the new state, in registration order.
//
// There is no suspension point anywhere in the pipeline; dispatch runs to
// completion on the calling goroutine before control returns.
//
// # Ownership
//
// A Store is owned by exactly one goroutine. The Store takes no locks, and
// dispatch is not re-entrant: calling Dispatch from inside a middleware,
// reducer, or subscriber of an in-flight dispatch panics rather than
// producing an inconsistent state.
//
// # Purity
//
// Reducers must be pure: same (state, action) in, same state out, no visible
// side effects. Middleware and subscribers are where side effects belong -
// logging, journaling, and tagging live in the middleware and journal
// packages, built entirely on the public contract defined here.
package dux
