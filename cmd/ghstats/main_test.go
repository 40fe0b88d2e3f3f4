// cmd/ghstats/main_test.go
package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ArgumentErrors(t *testing.T) {
	t.Run("missing owner fails fast with exit 1", func(t *testing.T) {
		assert.Equal(t, 1, run([]string{}))
	})

	t.Run("more than one owner fails fast with exit 1", func(t *testing.T) {
		assert.Equal(t, 1, run([]string{"octocat", "torvalds"}))
	})
}

func TestPickLevel(t *testing.T) {
	assert.Equal(t, "info", pickLevel("info", ""))
	assert.Equal(t, "debug", pickLevel("info", "debug"))
}

func TestSetLogLevel(t *testing.T) {
	v := new(slog.LevelVar)

	setLogLevel("debug", v)
	assert.Equal(t, slog.LevelDebug, v.Level())

	setLogLevel("warn", v)
	assert.Equal(t, slog.LevelWarn, v.Level())

	setLogLevel("error", v)
	assert.Equal(t, slog.LevelError, v.Level())

	// Unknown values fall back to info.
	setLogLevel("verbose", v)
	assert.Equal(t, slog.LevelInfo, v.Level())
}
