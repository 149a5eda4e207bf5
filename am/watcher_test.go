package am

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "instance.xml")
	other := filepath.Join(dir, "other.xml")
	require.NoError(t, os.WriteFile(watched, []byte("<alloy/>"), 0o644))

	fw, err := NewFileWatcher(20*time.Millisecond, watched)
	require.NoError(t, err)
	defer fw.Stop()

	changes := make(chan string, 4)
	fw.OnChange(func(path string) error {
		changes <- path
		return nil
	})
	fw.Start()

	// Unwatched files in the same directory are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(watched, []byte("<alloy></alloy>"), 0o644))

	select {
	case path := <-changes:
		abs, _ := filepath.Abs(watched)
		got, _ := filepath.Abs(path)
		require.Equal(t, abs, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no change callback within 5s")
	}
}

func TestFileWatcher_StopIsIdempotentForLoop(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, filepath.Join(t.TempDir(), "a.yaml"))
	require.NoError(t, err)
	fw.Start()
	require.NoError(t, fw.Stop())
}

func TestFileWatcher_CallbacksNeverOverlap(t *testing.T) {
	fw, err := NewFileWatcher(5*time.Millisecond, filepath.Join(t.TempDir(), "stacks.xml"))
	require.NoError(t, err)
	defer fw.Stop()

	var mu sync.Mutex
	active, maxActive := 0, 0
	release := make(chan struct{})
	entered := make(chan string, 8)

	fw.OnChange(func(path string) error {
		mu.Lock()
		active++
		if active > maxActive {
			maxActive = active
		}
		mu.Unlock()

		entered <- path
		if path == "first" {
			<-release
		}

		mu.Lock()
		active--
		mu.Unlock()
		return nil
	})

	next := func() string {
		select {
		case p := <-entered:
			return p
		case <-time.After(5 * time.Second):
			t.Fatal("no callback within 5s")
			return ""
		}
	}

	fw.scheduleChange("first")
	require.Equal(t, "first", next())

	// Both timers expire while the first render is still running
	fw.scheduleChange("second")
	time.Sleep(50 * time.Millisecond)
	fw.scheduleChange("third")
	time.Sleep(50 * time.Millisecond)
	close(release)

	require.Equal(t, "second", next())
	require.Equal(t, "third", next())

	select {
	case p := <-entered:
		t.Fatalf("unexpected extra delivery of %q", p)
	case <-time.After(100 * time.Millisecond):
	}

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, 1, maxActive, "callbacks ran concurrently")
}

func TestFileWatcher_CoalescesRepeatedPath(t *testing.T) {
	fw, err := NewFileWatcher(time.Hour, filepath.Join(t.TempDir(), "stacks.xml"))
	require.NoError(t, err)
	defer fw.Stop()

	var got []string
	fw.OnChange(func(path string) error {
		got = append(got, path)
		return nil
	})

	fw.scheduleChange("stacks.xml")
	fw.scheduleChange("am.toml")
	fw.scheduleChange("stacks.xml")
	fw.fire()

	require.Equal(t, []string{"stacks.xml", "am.toml"}, got)
}
