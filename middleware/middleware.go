// Package middleware provides stock interceptors for dux stores: structured
// logging, dispatch-token tagging, predicate vetoes, and pure action
// rewrites.
//
// Everything here is built on the public dux.Middleware contract; nothing in
// this package can touch a store's state directly.
package middleware

import "github.com/duxkit/dux"

// Filter returns a middleware that vetoes any action the predicate rejects.
// Accepted actions pass through unchanged.
func Filter[S, A any](pred func(view dux.View[S], action A) bool) dux.Middleware[S, A] {
	return dux.MiddlewareFunc[S, A](func(view dux.View[S], action A) (A, bool) {
		if !pred(view, action) {
			return action, false
		}
		return action, true
	})
}

// Map returns a middleware that rewrites every action through fn and never
// vetoes. The rewritten action supersedes the original for all later stages.
func Map[S, A any](fn func(action A) A) dux.Middleware[S, A] {
	return dux.MiddlewareFunc[S, A](func(view dux.View[S], action A) (A, bool) {
		return fn(action), true
	})
}
