package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/duxkit/dux"
	"github.com/duxkit/dux/harness"
	"github.com/duxkit/dux/journal"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	Root     *RootOptions
	Scenario string
	Journal  string
}

// demoResult is the JSON shape for `demo --format json`.
type demoResult struct {
	Scenario   string         `json:"scenario"`
	Passed     bool           `json:"passed"`
	Dispatches int            `json:"dispatches"`
	Settled    int64          `json:"settled"`
	FinalState map[string]any `json:"final_state"`
	Errors     []string       `json:"errors,omitempty"`
}

// NewDemoCommand creates the demo command. It runs a scenario (the built-in
// todo scenario by default) through a fully wired store: tagging, logging,
// rewrite/veto stages, and optionally a journal recorder.
func NewDemoCommand(root *RootOptions) *cobra.Command {
	opts := &DemoOptions{Root: root}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Dispatch a scenario of actions through a store",
		Long: `Runs a scenario of actions through a dux store and prints the final state.

Without --scenario, a built-in todo-list scenario is used. With --journal,
every action that reaches the reducer is recorded and can be replayed later
with 'dux replay'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "scenario YAML file (default: built-in todo demo)")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record settled actions to this SQLite journal")

	return cmd
}

func runDemo(cmd *cobra.Command, opts *DemoOptions) error {
	out := &OutputFormatter{Format: opts.Root.Format, Writer: cmd.OutOrStdout()}

	scenario, err := loadDemoScenario(opts.Scenario)
	if err != nil {
		return WrapExitError(ExitCommandError, "load scenario", err)
	}

	runOpts := harness.Options{Logger: slog.Default()}

	if opts.Journal != "" {
		slog.Info("opening journal", "path", opts.Journal)
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "open journal", err)
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				slog.Error("error closing journal", "error", closeErr)
			}
		}()

		// The recorder sits after the scenario's rewrite stage but before
		// its veto stage, so a vetoed action may still be journaled;
		// replaying through the same scenario middleware re-vetoes it.
		rec := journal.NewRecorder[harness.State, harness.Action](j, nil)
		runOpts.Middleware = []dux.Middleware[harness.State, harness.Action]{rec}
		defer func() {
			if rec.Err() != nil {
				slog.Error("journaling incomplete", "dropped", rec.Dropped(), "error", rec.Err())
			}
		}()
	}

	slog.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	result, err := harness.Run(scenario, runOpts)
	if err != nil {
		return WrapExitError(ExitCommandError, "run scenario", err)
	}

	var settled int64
	if len(result.Trace) > 0 {
		settled = result.Trace[len(result.Trace)-1].Seq
	}

	if out.IsJSON() {
		if err := out.PrintJSON(demoResult{
			Scenario:   scenario.Name,
			Passed:     result.Passed,
			Dispatches: len(result.Trace),
			Settled:    settled,
			FinalState: result.FinalState,
			Errors:     result.Errors,
		}); err != nil {
			return WrapExitError(ExitCommandError, "write output", err)
		}
	} else {
		out.Printf("scenario: %s\n", scenario.Name)
		for _, e := range result.Trace {
			status := "settled"
			if e.Vetoed {
				status = "vetoed"
			}
			out.Printf("  %3d  %-10s %-8s token=%s seq=%d\n", e.Step, e.Type, status, e.Token, e.Seq)
		}
		out.Printf("final state: %v\n", result.FinalState)
		for _, msg := range result.Errors {
			out.Printf("FAIL: %s\n", msg)
		}
	}

	if !result.Passed {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %q failed", scenario.Name))
	}
	return nil
}

// loadDemoScenario loads the given scenario file, or the built-in todo
// scenario when path is empty.
func loadDemoScenario(path string) (*harness.Scenario, error) {
	if path != "" {
		return harness.LoadScenario(path)
	}
	return todoScenario(), nil
}

// todoScenario is the classic todo-list walkthrough: two inserts and a
// vetoed purge.
func todoScenario() *harness.Scenario {
	insert := func(name string) harness.Step {
		return harness.Step{Dispatch: harness.Action{
			Type:    "append",
			Payload: map[string]any{"key": "todos", "value": name},
		}}
	}
	return &harness.Scenario{
		Name:        "todo-demo",
		Description: "Insert two todos, then have a purge vetoed.",
		Initial:     map[string]any{"todos": []any{}},
		VetoTypes:   []string{"purge"},
		Steps: []harness.Step{
			insert("Clean the bathroom"),
			insert("Cook"),
			{Dispatch: harness.Action{Type: "purge"}, ExpectVetoed: true},
		},
		Assertions: []harness.Assertion{
			{Type: "final_state", State: map[string]any{
				"todos": []any{"Clean the bathroom", "Cook"},
			}},
			{Type: "seq", Count: 2},
		},
	}
}
