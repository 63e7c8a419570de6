package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n"), 0644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Stop()

	fired := make(chan struct{}, 1)
	w.OnChange(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n"), 0644))

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire after file write")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := New(path)
	require.NoError(t, err)
	defer w.Stop()

	runs := make(chan struct{}, 16)
	w.OnChange(func() { runs <- struct{}{} })
	w.Start()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"n": 1}`), 0644))
		time.Sleep(20 * time.Millisecond)
	}

	// The burst settles into a small number of callback invocations
	// (at most one per debounce window), not one per write.
	deadline := time.After(5 * time.Second)
	count := 0
	for count == 0 {
		select {
		case <-runs:
			count++
		case <-deadline:
			t.Fatal("watcher never fired for burst of writes")
		}
	}
	// Drain any stragglers within one extra debounce window.
	time.Sleep(700 * time.Millisecond)
	for {
		select {
		case <-runs:
			count++
			continue
		default:
		}
		break
	}
	if count >= 5 {
		t.Errorf("debounce ineffective: %d callback runs for 5 writes", count)
	}
}

func TestWatcherMissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}
