package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duxkit/dux"
	"github.com/duxkit/dux/middleware"
)

func TestRun_SettledAndVetoedSteps(t *testing.T) {
	scenario := &Scenario{
		Name:      "veto",
		Initial:   map[string]any{"todos": []any{}},
		VetoTypes: []string{"purge"},
		Steps: []Step{
			{Dispatch: Action{Type: "append", Payload: map[string]any{"key": "todos", "value": "Cook"}}},
			{Dispatch: Action{Type: "purge"}, ExpectVetoed: true},
		},
	}

	result, err := Run(scenario, Options{})
	require.NoError(t, err)

	assert.True(t, result.Passed, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 2)
	assert.False(t, result.Trace[0].Vetoed)
	assert.Equal(t, int64(1), result.Trace[0].Seq)
	assert.True(t, result.Trace[1].Vetoed)
	assert.Equal(t, int64(1), result.Trace[1].Seq)
	assert.Equal(t, map[string]any{"todos": []any{"Cook"}}, result.FinalState)
}

func TestRun_VetoExpectationMismatchFails(t *testing.T) {
	scenario := &Scenario{
		Name: "mismatch",
		Steps: []Step{
			{Dispatch: Action{Type: "set", Payload: map[string]any{"key": "k", "value": "v"}}, ExpectVetoed: true},
		},
	}

	result, err := Run(scenario, Options{})
	require.NoError(t, err)

	assert.False(t, result.Passed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected vetoed=true")
}

func TestRun_RewriteAppliesBeforeVeto(t *testing.T) {
	scenario := &Scenario{
		Name:         "rewrite-then-veto",
		RewriteTypes: map[string]string{"add": "forbidden"},
		VetoTypes:    []string{"forbidden"},
		Steps: []Step{
			{Dispatch: Action{Type: "add"}, ExpectVetoed: true},
		},
	}

	result, err := Run(scenario, Options{})
	require.NoError(t, err)
	assert.True(t, result.Passed, "errors: %v", result.Errors)
	// The trace records the type as dispatched, not as rewritten.
	assert.Equal(t, "add", result.Trace[0].Type)
}

func TestRun_DeterministicTokens(t *testing.T) {
	scenario := &Scenario{
		Name:        "tokens",
		TokenPrefix: "demo",
		Steps: []Step{
			{Dispatch: Action{Type: "increment", Payload: map[string]any{"key": "n"}}},
			{Dispatch: Action{Type: "increment", Payload: map[string]any{"key": "n"}}},
		},
	}

	result, err := Run(scenario, Options{})
	require.NoError(t, err)
	assert.Equal(t, "demo-001", result.Trace[0].Token)
	assert.Equal(t, "demo-002", result.Trace[1].Token)
}

func TestRun_CustomReducerAndMiddleware(t *testing.T) {
	// A reducer that only counts settled dispatches, and a caller
	// middleware that vetoes every "blocked" action.
	reducer := func(state State, action Action) State {
		next := cloneState(state)
		n, _ := next["dispatches"].(int64)
		next["dispatches"] = n + 1
		return next
	}
	block := middleware.Filter(func(view dux.View[State], action Action) bool {
		return action.Type != "blocked"
	})

	scenario := &Scenario{
		Name: "custom",
		Steps: []Step{
			{Dispatch: Action{Type: "anything"}},
			{Dispatch: Action{Type: "blocked"}, ExpectVetoed: true},
			{Dispatch: Action{Type: "anything"}},
		},
		Assertions: []Assertion{
			{Type: "final_state", State: map[string]any{"dispatches": 2}},
		},
	}

	result, err := Run(scenario, Options{
		Reducer:    reducer,
		Middleware: []dux.Middleware[State, Action]{block},
	})
	require.NoError(t, err)
	assert.True(t, result.Passed, "errors: %v", result.Errors)
}

func TestRun_RejectsFloatInitialState(t *testing.T) {
	scenario := &Scenario{
		Name:    "bad-initial",
		Initial: map[string]any{"ratio": 1.5},
		Steps:   []Step{{Dispatch: Action{Type: "set"}}},
	}

	_, err := Run(scenario, Options{})
	assert.Error(t, err)
}

func TestDocumentReducer(t *testing.T) {
	tests := []struct {
		name   string
		state  State
		action Action
		want   State
	}{
		{
			name:   "set",
			state:  State{},
			action: Action{Type: "set", Payload: map[string]any{"key": "k", "value": "v"}},
			want:   State{"k": "v"},
		},
		{
			name:   "append to missing key starts a list",
			state:  State{},
			action: Action{Type: "append", Payload: map[string]any{"key": "l", "value": "a"}},
			want:   State{"l": []any{"a"}},
		},
		{
			name:   "increment",
			state:  State{"n": int64(2)},
			action: Action{Type: "increment", Payload: map[string]any{"key": "n"}},
			want:   State{"n": int64(3)},
		},
		{
			name:   "unknown type is a no-op",
			state:  State{"n": int64(2)},
			action: Action{Type: "unknown"},
			want:   State{"n": int64(2)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DocumentReducer(tt.state, tt.action))
		})
	}
}

func TestDocumentReducer_Pure(t *testing.T) {
	state := State{"todos": []any{"a"}}
	action := Action{Type: "append", Payload: map[string]any{"key": "todos", "value": "b"}}

	first := DocumentReducer(state, action)
	second := DocumentReducer(state, action)

	// Same inputs, same output, input untouched.
	assert.Equal(t, first, second)
	assert.Equal(t, State{"todos": []any{"a"}}, state)
}
