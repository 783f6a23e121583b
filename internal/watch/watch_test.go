package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileWatcher_DebouncesBurstIntoOneSignal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	fw, err := New(path, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Start())
	defer fw.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("y"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-fw.Events:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a debounced reload signal")
	}

	select {
	case <-fw.Events:
		t.Fatal("expected only one coalesced signal from the burst")
	case <-time.After(200 * time.Millisecond):
	}
}
