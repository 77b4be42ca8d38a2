package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/duxkit/dux/internal/canonical"
)

// snapshot renders a result as a canonical value for byte-stable golden
// comparison. Only deterministic fields appear: step, dispatched type,
// token, vetoed flag, seq, and post-step state.
func snapshot(scenario *Scenario, result *Result) map[string]any {
	events := make([]any, len(result.Trace))
	for i, e := range result.Trace {
		events[i] = map[string]any{
			"step":   int64(e.Step),
			"type":   e.Type,
			"token":  e.Token,
			"vetoed": e.Vetoed,
			"seq":    e.Seq,
			"state":  e.State,
		}
	}
	return map[string]any{
		"scenario":    scenario.Name,
		"trace":       events,
		"final_state": result.FinalState,
	}
}

// RunWithGolden executes a scenario and compares its canonical trace
// against testdata/golden/{scenario.Name}.golden. The scenario's own
// expectations and assertions must also pass.
//
// To regenerate golden files, run:
//
//	go test ./harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts Options) *Result {
	t.Helper()

	result, err := Run(scenario, opts)
	if err != nil {
		t.Fatalf("run scenario %q: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %q: %s", scenario.Name, msg)
	}

	data, err := canonical.Marshal(snapshot(scenario, result))
	if err != nil {
		t.Fatalf("marshal trace snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result
}
