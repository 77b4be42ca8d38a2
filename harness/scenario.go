package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios validate store behavior by dispatching a sequence of actions
// and asserting on the resulting trace and final state.
type Scenario struct {
	// Name uniquely identifies this scenario. It doubles as the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// TokenPrefix sets the prefix for generated dispatch tokens
	// ("t" by default, yielding t-001, t-002, ...).
	TokenPrefix string `yaml:"token_prefix,omitempty"`

	// Initial is the store's initial state. May be empty.
	Initial map[string]any `yaml:"initial,omitempty"`

	// VetoTypes lists action types a harness-installed middleware vetoes.
	// The veto applies after any rewrite, so it sees rewritten types.
	VetoTypes []string `yaml:"veto_types,omitempty"`

	// RewriteTypes maps action types a harness-installed middleware
	// rewrites, e.g. {add: append}.
	RewriteTypes map[string]string `yaml:"rewrite_types,omitempty"`

	// Steps is the sequence of dispatches, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and state.
	// Supported types: final_state, trace_count, trace_order, seq.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one dispatch with an optional veto expectation.
type Step struct {
	// Dispatch is the action to dispatch.
	Dispatch Action `yaml:"dispatch"`

	// ExpectVetoed asserts whether this dispatch is vetoed. A mismatch
	// fails the scenario.
	ExpectVetoed bool `yaml:"expect_vetoed,omitempty"`
}

// Action is the dynamic action shape scenarios dispatch.
type Action struct {
	// Type names the action variant (e.g. "append").
	Type string `yaml:"type" json:"type"`

	// Payload carries the action's arguments as a map.
	Payload map[string]any `yaml:"payload,omitempty" json:"payload,omitempty"`
}

// Assertion validates the trace or final state.
type Assertion struct {
	// Type specifies the assertion:
	//   - "final_state": subset-match State against the final state
	//   - "trace_count": Action settled exactly Count times
	//   - "trace_order": the full sequence of traced action types equals Actions
	//   - "seq": the store settled exactly Count dispatches
	Type string `yaml:"type"`

	// State is the expected final-state subset (final_state).
	State map[string]any `yaml:"state,omitempty"`

	// Action is the action type under test (trace_count).
	Action string `yaml:"action,omitempty"`

	// Count is the expected count (trace_count, seq).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected full type sequence (trace_order).
	Actions []string `yaml:"actions,omitempty"`
}

// LoadScenario reads and parses a scenario file, validating the document
// against the embedded CUE schema before decoding it.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes with schema validation.
func ParseScenario(data []byte) (*Scenario, error) {
	// Decode to a dynamic document first so the CUE schema sees exactly
	// what was written, including unknown fields.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := ValidateDocument(doc); err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &scenario, nil
}
