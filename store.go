package dux

// Store owns a state value and transforms it by dispatching actions through
// a middleware chain into the active reducer.
//
// A Store is defined by the state it holds and the actions it can dispatch.
// It is created once with an initial reducer and state; middleware and
// subscribers may be registered at any point before they are needed.
// Registration order is permanent - both sequences are append-only, with no
// reordering or removal.
//
// Thread-safety model: a Store is exclusively owned by one goroutine.
// Dispatch, Subscribe, Use, and ReplaceReducer must all be called from that
// owner; the Store takes no locks.
//
// INVARIANTS:
//   - state is only ever replaced by a reducer invocation inside Dispatch,
//     never by middleware or subscribers directly
//   - middleware and subscribers run in registration order, which never
//     changes after registration
//   - a vetoed dispatch leaves state and seq untouched and notifies nobody
type Store[S, A any] struct {
	reducer     Reducer[S, A]
	state       S
	middleware  []Middleware[S, A]
	subscribers []Subscriber[S]
	clock       *Clock
	dispatching bool
}

// Store implements the read view handed to middleware.
var _ View[int] = (*Store[int, int])(nil)

// New creates a Store with the given reducer and initial state and empty
// middleware and subscriber sequences. It cannot fail.
func New[S, A any](reducer Reducer[S, A], initial S) *Store[S, A] {
	return &Store[S, A]{
		reducer: reducer,
		state:   initial,
		clock:   NewClock(),
	}
}

// State returns the current state.
//
// States are handed out by value. Callers holding reference-typed states
// (maps, slices, pointers) must treat them as immutable views: every change
// flows through Dispatch.
func (s *Store[S, A]) State() S {
	return s.state
}

// Seq returns the number of settled dispatches so far. Vetoed dispatches do
// not advance it.
func (s *Store[S, A]) Seq() int64 {
	return s.clock.Current()
}

// Dispatch submits an action through the middleware chain and, unless a
// middleware vetoes it, applies the active reducer and notifies every
// subscriber with the new state.
//
// The walk over the middleware sequence is iterative, so arbitrarily long
// chains run in constant stack. Each middleware receives the action as
// transformed by its predecessors; the action it returns supersedes the
// original for all later stages. A middleware returning ok=false aborts the
// entire dispatch: the reducer never runs, the clock does not advance, and
// no subscriber fires.
//
// Dispatch does not catch panics from caller-supplied functions; they
// propagate to the caller unmodified.
//
// Dispatch is not re-entrant. Calling Dispatch from within a middleware,
// reducer, or subscriber of an in-flight dispatch on the same Store panics.
func (s *Store[S, A]) Dispatch(action A) {
	if s.dispatching {
		panic("dux: Dispatch re-entered from an in-flight dispatch on the same Store")
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	for _, m := range s.middleware {
		next, ok := m.Intercept(s, action)
		if !ok {
			return
		}
		action = next
	}

	s.state = s.reducer(s.state, action)
	s.clock.Next()

	for _, sub := range s.subscribers {
		sub.Notify(s.state)
	}
}

// Subscribe appends a subscriber to the subscription sequence. Subscribers
// are notified on every settled dispatch, in registration order. No removal
// handle is returned; the sequence is append-only.
func (s *Store[S, A]) Subscribe(sub Subscriber[S]) {
	s.subscribers = append(s.subscribers, sub)
}

// Use appends a middleware to the interception chain. Middleware run on
// every dispatch, in registration order, before the reducer.
func (s *Store[S, A]) Use(m Middleware[S, A]) {
	s.middleware = append(s.middleware, m)
}

// ReplaceReducer swaps the active reducer. The next dispatch, and every one
// after it, uses the new reducer; since dispatch is synchronous there is
// never an in-flight dispatch to affect.
func (s *Store[S, A]) ReplaceReducer(reducer Reducer[S, A]) {
	s.reducer = reducer
}
