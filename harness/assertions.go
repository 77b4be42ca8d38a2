package harness

import (
	"fmt"
	"reflect"
)

// evaluate checks one assertion against a result. It returns "" when the
// assertion holds, or a failure message.
func evaluate(a Assertion, result *Result) string {
	switch a.Type {
	case "final_state":
		return evaluateFinalState(a, result)
	case "trace_count":
		return evaluateTraceCount(a, result)
	case "trace_order":
		return evaluateTraceOrder(a, result)
	case "seq":
		return evaluateSeq(a, result)
	}
	// Unknown types are rejected by the schema; reaching this is a harness bug.
	return fmt.Sprintf("unknown assertion type %q", a.Type)
}

// evaluateFinalState subset-matches the expected state against the final
// state: every expected key must be present and deeply equal, extra keys in
// the final state are ignored.
func evaluateFinalState(a Assertion, result *Result) string {
	expected, err := normalizeState(a.State)
	if err != nil {
		return fmt.Sprintf("final_state: bad expectation: %v", err)
	}
	for key, want := range expected {
		got, ok := result.FinalState[key]
		if !ok {
			return fmt.Sprintf("final_state: key %q missing (state: %v)", key, result.FinalState)
		}
		if !reflect.DeepEqual(want, got) {
			return fmt.Sprintf("final_state: key %q = %v, want %v", key, got, want)
		}
	}
	return ""
}

// evaluateTraceCount counts settled dispatches of the given action type.
// Vetoed dispatches do not count: they never reached the reducer.
func evaluateTraceCount(a Assertion, result *Result) string {
	count := 0
	for _, e := range result.Trace {
		if e.Type == a.Action && !e.Vetoed {
			count++
		}
	}
	if count != a.Count {
		return fmt.Sprintf("trace_count: action %q settled %d times, want %d", a.Action, count, a.Count)
	}
	return ""
}

// evaluateTraceOrder compares the full sequence of traced action types,
// vetoed ones included, against the expected list.
func evaluateTraceOrder(a Assertion, result *Result) string {
	types := make([]string, len(result.Trace))
	for i, e := range result.Trace {
		types[i] = e.Type
	}
	if !reflect.DeepEqual(types, a.Actions) {
		return fmt.Sprintf("trace_order: got %v, want %v", types, a.Actions)
	}
	return ""
}

func evaluateSeq(a Assertion, result *Result) string {
	var seq int64
	if len(result.Trace) > 0 {
		seq = result.Trace[len(result.Trace)-1].Seq
	}
	if seq != int64(a.Count) {
		return fmt.Sprintf("seq: store settled %d dispatches, want %d", seq, a.Count)
	}
	return ""
}
