package journal

import (
	"context"
	"fmt"

	"github.com/duxkit/dux"
)

// Recorder is a pass-through middleware that appends every action it sees
// to a Journal.
//
// Position in the chain decides what gets recorded: installed last, the
// Recorder sees exactly the actions that reach the reducer (vetoed actions
// never arrive); installed first, it sees every dispatched action including
// ones a later middleware vetoes.
//
// Recording never vetoes. A write failure is remembered and every
// subsequent failure is counted, but the action still passes through: the
// journal is an observer, and an unavailable observer must not stop the
// pipeline. Callers that care check Err after dispatching.
type Recorder[S, A any] struct {
	journal *Journal
	codec   Codec[A]
	token   func() string
	err     error
	dropped int
}

// NewRecorder creates a Recorder writing to j through codec. A nil codec
// defaults to JSONCodec.
func NewRecorder[S, A any](j *Journal, codec Codec[A]) *Recorder[S, A] {
	if codec == nil {
		codec = JSONCodec[A]{}
	}
	return &Recorder[S, A]{journal: j, codec: codec}
}

// WithTokenSource sets a func consulted per action for the dispatch token
// column, typically (*middleware.Tagger).Last. Returns the Recorder for
// chaining during store construction.
func (r *Recorder[S, A]) WithTokenSource(fn func() string) *Recorder[S, A] {
	r.token = fn
	return r
}

// Intercept records the action and passes it through unchanged.
func (r *Recorder[S, A]) Intercept(view dux.View[S], action A) (A, bool) {
	token := ""
	if r.token != nil {
		token = r.token()
	}

	payload, err := r.codec.Encode(action)
	if err != nil {
		r.record(fmt.Errorf("encode action: %w", err))
		return action, true
	}

	kind := fmt.Sprintf("%T", action)
	if _, err := r.journal.Append(context.Background(), token, kind, payload); err != nil {
		r.record(err)
	}
	return action, true
}

// Err returns the first recording failure, or nil if every action was
// journaled.
func (r *Recorder[S, A]) Err() error {
	return r.err
}

// Dropped returns the number of actions that could not be journaled.
func (r *Recorder[S, A]) Dropped() int {
	return r.dropped
}

func (r *Recorder[S, A]) record(err error) {
	if r.err == nil {
		r.err = err
	}
	r.dropped++
}
