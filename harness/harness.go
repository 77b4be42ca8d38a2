package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/duxkit/dux"
	"github.com/duxkit/dux/internal/canonical"
	"github.com/duxkit/dux/middleware"
)

// Options configures scenario execution.
type Options struct {
	// Reducer is the reducer under test. Nil selects DocumentReducer.
	Reducer dux.Reducer[State, Action]

	// Middleware is installed between the scenario's rewrite stage and its
	// veto stage, in order.
	Middleware []dux.Middleware[State, Action]

	// Logger receives per-dispatch debug logs. Nil discards them.
	Logger *slog.Logger
}

// TraceEvent records one dispatch as observed by the harness.
type TraceEvent struct {
	// Step is the 1-based scenario step index.
	Step int

	// Type is the action type as dispatched, before any rewrite.
	Type string

	// Token is the dispatch token drawn for this step.
	Token string

	// Vetoed reports whether the dispatch was vetoed.
	Vetoed bool

	// Seq is the store's settled-dispatch count after this step.
	Seq int64

	// State is the store state after this step. For a vetoed dispatch it
	// equals the state before it, by the veto contract.
	State State
}

// Result is the outcome of running one scenario.
type Result struct {
	// Passed is true when every expectation and assertion held.
	Passed bool

	// Trace has one event per scenario step.
	Trace []TraceEvent

	// FinalState is the store state after the last step.
	FinalState State

	// Errors lists every failed expectation and assertion.
	Errors []string
}

// tokenCounter generates deterministic tokens prefix-001, prefix-002, ...
// so traces are byte-stable for golden comparison.
type tokenCounter struct {
	prefix string
	n      int
}

func (g *tokenCounter) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n)
}

// Run executes a scenario and returns its result.
//
// Each run builds a fresh store: normalized initial state, then a chain of
// tagging middleware, the scenario's rewrite stage, caller middleware, and
// the scenario's veto stage, in that order. The veto stage runs last so it
// sees actions as rewritten, mirroring how authorization stages sit at the
// end of production chains.
//
// Run returns an error only for scenario defects (unnormalizable values);
// behavioral mismatches are reported through Result.Errors.
func Run(scenario *Scenario, opts Options) (*Result, error) {
	reducer := opts.Reducer
	if reducer == nil {
		reducer = DocumentReducer
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	initial, err := normalizeState(scenario.Initial)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: initial state: %w", scenario.Name, err)
	}

	store := dux.New(reducer, initial)

	prefix := scenario.TokenPrefix
	if prefix == "" {
		prefix = "t"
	}
	tagger := middleware.NewTagger[State, Action](&tokenCounter{prefix: prefix})
	store.Use(tagger)
	store.Use(middleware.Logger[State, Action](logger))

	if len(scenario.RewriteTypes) > 0 {
		rewrites := scenario.RewriteTypes
		store.Use(middleware.Map[State](func(action Action) Action {
			if to, ok := rewrites[action.Type]; ok {
				action.Type = to
			}
			return action
		}))
	}

	for _, m := range opts.Middleware {
		store.Use(m)
	}

	if len(scenario.VetoTypes) > 0 {
		vetoed := make(map[string]bool, len(scenario.VetoTypes))
		for _, t := range scenario.VetoTypes {
			vetoed[t] = true
		}
		store.Use(middleware.Filter(func(view dux.View[State], action Action) bool {
			return !vetoed[action.Type]
		}))
	}

	result := &Result{}
	for i, step := range scenario.Steps {
		action, err := normalizeAction(step.Dispatch)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: step %d: %w", scenario.Name, i+1, err)
		}

		before := store.Seq()
		store.Dispatch(action)
		settled := store.Seq() > before

		event := TraceEvent{
			Step:   i + 1,
			Type:   step.Dispatch.Type,
			Token:  tagger.Last(),
			Vetoed: !settled,
			Seq:    store.Seq(),
			State:  store.State(),
		}
		result.Trace = append(result.Trace, event)

		if step.ExpectVetoed != event.Vetoed {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"step %d (%s): expected vetoed=%v, got vetoed=%v",
				event.Step, event.Type, step.ExpectVetoed, event.Vetoed))
		}
	}
	result.FinalState = store.State()

	for i, assertion := range scenario.Assertions {
		if msg := evaluate(assertion, result); msg != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("assertion %d: %s", i+1, msg))
		}
	}

	result.Passed = len(result.Errors) == 0
	return result, nil
}

// normalizeState widens a decoded YAML state into the canonical value
// domain (int64 leaves), so reducer output and assertion expectations
// compare equal.
func normalizeState(state map[string]any) (State, error) {
	if state == nil {
		return State{}, nil
	}
	n, err := canonical.Normalize(state)
	if err != nil {
		return nil, err
	}
	return n.(map[string]any), nil
}

func normalizeAction(action Action) (Action, error) {
	if action.Payload == nil {
		return action, nil
	}
	n, err := canonical.Normalize(action.Payload)
	if err != nil {
		return Action{}, fmt.Errorf("payload: %w", err)
	}
	action.Payload = n.(map[string]any)
	return action, nil
}
