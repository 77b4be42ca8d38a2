package middleware

import (
	"sync"

	"github.com/google/uuid"

	"github.com/duxkit/dux"
)

// TokenGenerator generates unique dispatch tokens for correlation.
// Implemented by UUIDv7Generator (production) and FixedGenerator (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 dispatch tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time, which is helpful when correlating journal rows
// and log lines.
//
// Panics if UUID generation fails (should never happen in practice).
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined tokens in order. It enables
// deterministic tests and golden trace comparison: provide a known sequence
// of tokens and verify exact output.
//
// Generate panics once all tokens are consumed. This is a fail-fast approach
// to catch test misconfiguration (more dispatches than the test expected).
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("middleware: FixedGenerator exhausted all tokens")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// Tagger is a pass-through middleware that draws a fresh token from its
// generator for every action it sees. Actions are opaque to the core, so the
// token is not embedded in the action; it is observable through Last and
// through any OnTag hook, which journals use to stamp their rows.
type Tagger[S, A any] struct {
	gen   TokenGenerator
	last  string
	onTag func(token string)
}

// NewTagger creates a Tagger drawing from gen. A nil gen uses UUIDv7Generator.
func NewTagger[S, A any](gen TokenGenerator) *Tagger[S, A] {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &Tagger[S, A]{gen: gen}
}

// OnTag registers a hook invoked with each freshly drawn token, before the
// action continues down the chain.
func (t *Tagger[S, A]) OnTag(fn func(token string)) {
	t.onTag = fn
}

// Last returns the token drawn for the most recent action, or "" if no
// action has passed through yet.
func (t *Tagger[S, A]) Last() string {
	return t.last
}

// Intercept draws a token and passes the action through unchanged.
func (t *Tagger[S, A]) Intercept(view dux.View[S], action A) (A, bool) {
	t.last = t.gen.Generate()
	if t.onTag != nil {
		t.onTag(t.last)
	}
	return action, true
}
