package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/duxkit/dux"
	"github.com/duxkit/dux/harness"
	"github.com/duxkit/dux/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	Root    *RootOptions
	Journal string
}

// replayResult is the JSON shape for `replay --format json`.
type replayResult struct {
	Journal    string         `json:"journal"`
	Replayed   int            `json:"replayed"`
	FinalState map[string]any `json:"final_state"`
}

// NewReplayCommand creates the replay command. It reads a journal written
// by `dux demo --journal` and re-dispatches every recorded action into a
// fresh store; because reducers are pure, the reconstructed final state
// matches the original run's.
func NewReplayCommand(root *RootOptions) *cobra.Command {
	opts := &ReplayOptions{Root: root}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a recorded action journal into a fresh store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "journal to replay (required)")
	cmd.MarkFlagRequired("journal")

	return cmd
}

func runReplay(cmd *cobra.Command, opts *ReplayOptions) error {
	out := &OutputFormatter{Format: opts.Root.Format, Writer: cmd.OutOrStdout()}

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

	store := dux.New(harness.DocumentReducer, harness.State{})
	n, err := journal.Replay(context.Background(), j,
		journal.JSONCodec[harness.Action]{}, store)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay journal", err)
	}

	slog.Info("replay complete", "actions", n, "seq", store.Seq())

	if out.IsJSON() {
		if err := out.PrintJSON(replayResult{
			Journal:    opts.Journal,
			Replayed:   n,
			FinalState: store.State(),
		}); err != nil {
			return WrapExitError(ExitCommandError, "write output", err)
		}
		return nil
	}

	out.Printf("replayed %d actions from %s\n", n, opts.Journal)
	out.Printf("final state: %v\n", store.State())
	return nil
}
