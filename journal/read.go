package journal

import (
	"context"
	"fmt"

	"github.com/duxkit/dux"
)

// Entry is one recorded action row.
type Entry struct {
	Seq     int64
	Token   string
	Kind    string
	Payload []byte
}

// Entries returns every recorded action in seq order.
//
// Results are ordered by seq ASC - the logical clock, never recorded_at -
// so reading a journal always yields the dispatch order of the original
// run.
func (j *Journal) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT seq, dispatch_token, kind, payload
		FROM actions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Token, &e.Kind, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}

	return entries, nil
}

// Replay decodes every journaled action in seq order and dispatches it into
// store. It returns the number of actions replayed.
//
// Replaying into a store built with the same reducer and initial state as
// the recorded run reconstructs the same final state, reducers being pure.
// The target store may carry its own middleware; a middleware that vetoes
// during replay will make the reconstruction diverge, which is sometimes
// exactly the point (replaying through a stricter chain).
func Replay[S, A any](ctx context.Context, j *Journal, codec Codec[A], store *dux.Store[S, A]) (int, error) {
	if codec == nil {
		codec = JSONCodec[A]{}
	}

	entries, err := j.Entries(ctx)
	if err != nil {
		return 0, err
	}

	for i, e := range entries {
		action, err := codec.Decode(e.Payload)
		if err != nil {
			return i, fmt.Errorf("decode entry seq=%d: %w", e.Seq, err)
		}
		store.Dispatch(action)
	}

	return len(entries), nil
}
