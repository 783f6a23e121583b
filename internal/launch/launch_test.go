package launch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunCommand_ExecutesViaShell(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")

	l := New(nil)
	l.RunCommand("touch " + marker)

	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestOpenURL_NoOpenerOnPathLogsAndDoesNotPanic(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	l := New(nil)
	require.NotPanics(t, func() {
		l.OpenURL("https://example.com")
	})
}

func TestOpenCommand_PicksFirstAvailableFromPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "xdg-open")
	require.NoError(t, os.WriteFile(fake, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	t.Setenv("PATH", dir)
	name, args := openCommand()
	require.Equal(t, "xdg-open", name)
	require.Empty(t, args)
}
