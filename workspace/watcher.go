package workspace

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports what happened to one script after a burst of file system
// events settled. Document is nil for removed files.
type Change struct {
	Path     string
	Removed  bool
	Document *Document
}

// Watcher keeps a Workspace in sync with the files below its root.
type Watcher struct {
	ws       *Workspace
	fw       *fsnotify.Watcher
	debounce time.Duration
	onChange func([]Change)
}

type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits for events to stop before
// reparsing. The default is 200ms.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// OnChange registers fn to receive each settled batch of changes.
func OnChange(fn func([]Change)) WatcherOption {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

func NewWatcher(ws *Workspace, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		ws:       ws,
		fw:       fw,
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.addTree(ws.RootDir()); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every non-hidden directory below it. fsnotify
// does not recurse on its own.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		log.Debugf("watching %s", path)
		return w.fw.Add(path)
	})
}

// Run processes file system events until ctx is done or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) error {
	pending := map[string]bool{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			log.Debugf("event %s", ev)
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Errorf("watch %s: %s", ev.Name, err)
					}
					continue
				}
			}
			if !w.ws.Project().IsScript(ev.Name) || ev.Op == fsnotify.Chmod {
				continue
			}
			pending[ev.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher: %s", err)

		case <-timer.C:
			changes := w.apply(pending)
			pending = map[string]bool{}
			if len(changes) > 0 && w.onChange != nil {
				w.onChange(changes)
			}
		}
	}
}

func (w *Watcher) apply(pending map[string]bool) []Change {
	paths := make([]string, 0, len(pending))
	for path := range pending {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var changes []Change
	for _, path := range paths {
		doc, err := w.ws.ScanFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			w.ws.Remove(path)
			changes = append(changes, Change{Path: path, Removed: true})
		case err != nil:
			log.Errorf("read %s: %s", path, err)
		default:
			changes = append(changes, Change{Path: path, Document: doc})
		}
	}
	return changes
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}
