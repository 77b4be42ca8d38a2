package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	base := errors.New("boom")
	err := WrapExitError(ExitCommandError, "open journal", base)

	assert.Equal(t, "open journal: boom", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "failed")))
	assert.Equal(t, ExitCommandError,
		GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCommandError, "inner"))))
}

func TestOutputFormatter_TextMode(t *testing.T) {
	var buf bytes.Buffer
	out := &OutputFormatter{Format: "text", Writer: &buf}

	out.Printf("hello %s\n", "world")
	assert.False(t, out.IsJSON())
	assert.Equal(t, "hello world\n", buf.String())
}

func TestOutputFormatter_JSONMode(t *testing.T) {
	var buf bytes.Buffer
	out := &OutputFormatter{Format: "json", Writer: &buf}

	// Printf is suppressed; commands emit one JSON document instead.
	out.Printf("should not appear")
	require.Empty(t, buf.String())

	require.NoError(t, out.PrintJSON(map[string]any{"ok": true}))
	assert.JSONEq(t, `{"ok": true}`, buf.String())
}
