package dux

// View is the read-only face of a Store handed to middleware. It allows a
// middleware to inspect the current state (for conditional vetoes, say)
// without being able to replace it: every state change must flow through
// the normal dispatch-to-reducer path.
type View[S any] interface {
	// State returns the current state.
	State() S

	// Seq returns the number of settled dispatches so far.
	Seq() int64
}

// Middleware intercepts an action before it reaches the reducer.
//
// Intercept receives a read view of the store and the action as transformed
// by earlier middleware in the chain. It returns the action to continue with
// and ok=true, or ok=false to veto the dispatch entirely. A veto halts the
// complete chain, including the reducer and all subscribers; it is a
// deliberate short-circuit, not an error.
//
// The single (next, ok) pair lets one middleware both rewrite and veto
// actions with one signal. Returning the action unchanged with ok=true is a
// pass-through.
type Middleware[S, A any] interface {
	Intercept(view View[S], action A) (next A, ok bool)
}

// MiddlewareFunc adapts a plain function to the Middleware interface.
//
//	blockDecrements := dux.MiddlewareFunc[int, Action](
//		func(view dux.View[int], action Action) (Action, bool) {
//			if action == Decrement && view.State() <= 0 {
//				return action, false
//			}
//			return action, true
//		})
//	store.Use(blockDecrements)
type MiddlewareFunc[S, A any] func(view View[S], action A) (A, bool)

// Intercept calls f.
func (f MiddlewareFunc[S, A]) Intercept(view View[S], action A) (A, bool) {
	return f(view, action)
}
