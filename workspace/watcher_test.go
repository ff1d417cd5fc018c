package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	script := filepath.Join(root, "a.Script")
	writeFile(t, script, "x = 1\n")

	ws := newWorkspace(t, root)
	changes := make(chan []Change, 8)
	w, err := NewWatcher(ws,
		WithDebounce(20*time.Millisecond),
		OnChange(func(c []Change) { changes <- c }),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	next := func(t *testing.T) Change {
		t.Helper()
		select {
		case c := <-changes:
			if len(c) != 1 {
				t.Fatalf("changes = %+v, want one", c)
			}
			return c[0]
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for a change")
		}
		return Change{}
	}

	t.Run("write", func(t *testing.T) {
		writeFile(t, script, "x = (1\n")
		c := next(t)
		if c.Path != script || c.Removed || c.Document == nil || !c.Document.Failed() {
			t.Errorf("change = %+v", c)
		}
		if ws.Document(script) != c.Document {
			t.Error("workspace not updated")
		}
	})

	t.Run("new directory", func(t *testing.T) {
		sub := filepath.Join(root, "sub")
		if err := os.Mkdir(sub, 0o755); err != nil {
			t.Fatal(err)
		}
		// give the watcher a moment to pick up the directory
		time.Sleep(100 * time.Millisecond)
		nested := filepath.Join(sub, "b.e")
		writeFile(t, nested, "y = 2\n")
		c := next(t)
		if c.Path != nested || c.Document == nil || c.Document.Failed() {
			t.Errorf("change = %+v", c)
		}
	})

	t.Run("remove", func(t *testing.T) {
		if err := os.Remove(script); err != nil {
			t.Fatal(err)
		}
		c := next(t)
		if c.Path != script || !c.Removed {
			t.Errorf("change = %+v", c)
		}
		if ws.Document(script) != nil {
			t.Error("removed script still in the workspace")
		}
	})

	t.Run("other files ignored", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "notes.txt"), "hello")
		select {
		case c := <-changes:
			t.Errorf("unexpected change %+v", c)
		case <-time.After(200 * time.Millisecond):
		}
	})
}

func TestWatcherStopsWithContext(t *testing.T) {
	ws := newWorkspace(t, t.TempDir())
	w, err := NewWatcher(ws)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return")
	}
}
