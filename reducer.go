package dux

// Reducer computes the next state from the current state and an action.
//
// Reducers must be total and pure: every action variant the store can
// dispatch must be handled (unhandled variants are a caller bug, not a core
// responsibility), and the same (state, action) pair must always yield the
// same result. Side effects belong in middleware and subscribers, never
// here.
type Reducer[S, A any] func(state S, action A) S

// CombineReducers composes an ordered list of reducers into a single one,
// threading state left to right under the same action:
//
//	CombineReducers(r1, r2, r3)(s, a) == r3(r2(r1(s, a), a), a)
//
// Each reducer sees the original action and the previous reducer's output
// state, which lets independent slice reducers evolve different aspects of a
// shared state shape. With no reducers the result returns its input state
// unchanged.
func CombineReducers[S, A any](reducers ...Reducer[S, A]) Reducer[S, A] {
	return func(state S, action A) S {
		for _, r := range reducers {
			state = r(state, action)
		}
		return state
	}
}
