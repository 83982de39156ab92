package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soundshield/subgen/cmd/subgen/config"
)

func TestWatchCommand(t *testing.T) {
	t.Run("invalid format flag", func(t *testing.T) {
		_, err := runCommand(t, config.Config{}, "watch", t.TempDir(), "-f", "ass")
		require.EqualError(t, err, "OutputFormat value is not valid")
	})

	t.Run("missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		_, err := runCommand(t, config.Config{}, "watch", dir)
		require.ErrorContains(t, err, "failed to start watcher")
	})
}
