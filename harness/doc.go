// Package harness provides a scenario-driven conformance framework for dux
// stores.
//
// A scenario is a YAML document describing an initial state, a sequence of
// actions to dispatch, and assertions over the resulting trace and final
// state. Scenario documents are validated against an embedded CUE schema
// before execution, so malformed scenarios fail with field-level errors
// instead of confusing runtime behavior.
//
// Scenarios run against a dynamic document state (map[string]any) with
// {type, payload} actions. The built-in DocumentReducer understands a small
// action vocabulary (set, append, increment); callers with richer semantics
// supply their own reducer through Options.
//
// Execution is fully deterministic: dispatch tokens come from a counting
// generator, ordering comes from the store's logical clock, and traces are
// rendered as canonical JSON, which makes golden-file comparison
// byte-stable. Golden files live in testdata/golden and are regenerated
// with:
//
//	go test ./harness -update
package harness
