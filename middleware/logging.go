package middleware

import (
	"fmt"
	"log/slog"

	"github.com/duxkit/dux"
)

// Logger returns a pass-through middleware that logs every action it sees at
// debug level, with the store's settled-dispatch count for correlation.
//
// Install it first in the chain to log every dispatched action, or last to
// log exactly the actions that reach the reducer. A nil logger uses
// slog.Default().
//
// Vetoes by later middleware are silent by design; a caller that needs veto
// visibility pairs Logger with a subscriber and compares what was dispatched
// against what settled.
func Logger[S, A any](logger *slog.Logger) dux.Middleware[S, A] {
	if logger == nil {
		logger = slog.Default()
	}
	return dux.MiddlewareFunc[S, A](func(view dux.View[S], action A) (A, bool) {
		logger.Debug("dispatching action",
			"action", fmt.Sprintf("%+v", action),
			"action_type", fmt.Sprintf("%T", action),
			"seq", view.Seq())
		return action, true
	})
}
