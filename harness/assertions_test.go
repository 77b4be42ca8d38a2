package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultWithTrace(events ...TraceEvent) *Result {
	r := &Result{Trace: events}
	if len(events) > 0 {
		r.FinalState = events[len(events)-1].State
	}
	return r
}

func TestEvaluate(t *testing.T) {
	result := resultWithTrace(
		TraceEvent{Step: 1, Type: "append", Seq: 1, State: State{"todos": []any{"a"}}},
		TraceEvent{Step: 2, Type: "purge", Vetoed: true, Seq: 1, State: State{"todos": []any{"a"}}},
		TraceEvent{Step: 3, Type: "append", Seq: 2, State: State{"todos": []any{"a", "b"}, "extra": int64(1)}},
	)

	tests := []struct {
		name      string
		assertion Assertion
		wantFail  bool
	}{
		{
			name:      "final_state subset holds",
			assertion: Assertion{Type: "final_state", State: map[string]any{"todos": []any{"a", "b"}}},
		},
		{
			name:      "final_state ignores extra keys",
			assertion: Assertion{Type: "final_state", State: map[string]any{"extra": 1}},
		},
		{
			name:      "final_state missing key",
			assertion: Assertion{Type: "final_state", State: map[string]any{"gone": 1}},
			wantFail:  true,
		},
		{
			name:      "final_state wrong value",
			assertion: Assertion{Type: "final_state", State: map[string]any{"todos": []any{"a"}}},
			wantFail:  true,
		},
		{
			name:      "trace_count excludes vetoed",
			assertion: Assertion{Type: "trace_count", Action: "append", Count: 2},
		},
		{
			name:      "trace_count vetoed type settles zero times",
			assertion: Assertion{Type: "trace_count", Action: "purge", Count: 0},
		},
		{
			name:      "trace_count wrong count",
			assertion: Assertion{Type: "trace_count", Action: "append", Count: 3},
			wantFail:  true,
		},
		{
			name:      "trace_order includes vetoed",
			assertion: Assertion{Type: "trace_order", Actions: []string{"append", "purge", "append"}},
		},
		{
			name:      "trace_order mismatch",
			assertion: Assertion{Type: "trace_order", Actions: []string{"append", "append"}},
			wantFail:  true,
		},
		{
			name:      "seq matches settled count",
			assertion: Assertion{Type: "seq", Count: 2},
		},
		{
			name:      "seq mismatch",
			assertion: Assertion{Type: "seq", Count: 3},
			wantFail:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := evaluate(tt.assertion, result)
			if tt.wantFail {
				assert.NotEmpty(t, msg)
			} else {
				assert.Empty(t, msg)
			}
		})
	}
}

func TestEvaluateSeq_EmptyTrace(t *testing.T) {
	assert.Empty(t, evaluate(Assertion{Type: "seq", Count: 0}, &Result{}))
	assert.NotEmpty(t, evaluate(Assertion{Type: "seq", Count: 1}, &Result{}))
}
