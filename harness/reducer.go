package harness

// State is the dynamic document state scenarios run against.
type State = map[string]any

// DocumentReducer is the built-in reducer for scenario stores. It evolves a
// document state under a small action vocabulary:
//
//	set       {key, value}  - state[key] = value
//	append    {key, value}  - state[key] += [value]  (missing key starts a list)
//	increment {key}         - state[key] += 1        (missing key starts at 0)
//
// Unknown action types leave the state unchanged, per the reducer contract:
// unhandled variants are the scenario author's bug, not the harness's.
//
// The reducer is pure: it never mutates its input, it clones and replaces.
func DocumentReducer(state State, action Action) State {
	key, _ := action.Payload["key"].(string)

	switch action.Type {
	case "set":
		next := cloneState(state)
		next[key] = action.Payload["value"]
		return next
	case "append":
		next := cloneState(state)
		list, _ := next[key].([]any)
		appended := make([]any, len(list), len(list)+1)
		copy(appended, list)
		next[key] = append(appended, action.Payload["value"])
		return next
	case "increment":
		next := cloneState(state)
		n, _ := next[key].(int64)
		next[key] = n + 1
		return next
	}
	return state
}

// cloneState shallow-copies the top level of a document state. Values below
// the top level are never mutated by DocumentReducer, so a shallow copy
// preserves purity.
func cloneState(state State) State {
	next := make(State, len(state)+1)
	for k, v := range state {
		next[k] = v
	}
	return next
}
