// Package watch polls a directory tree and reports when anything in it
// changes.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"
)

// DefaultInterval is how often the tree is scanned.
const DefaultInterval = 500 * time.Millisecond

type fileState struct {
	modTime time.Time
	size    int64
}

// Watcher scans a directory tree for added, removed or modified files.
type Watcher struct {
	root     string
	ignore   []string
	interval time.Duration
	last     map[string]fileState
}

// New creates a watcher for root. Paths under any of ignore are not
// scanned, which keeps a build output inside root from retriggering.
func New(root string, ignore ...string) *Watcher {
	w := &Watcher{
		root:     filepath.Clean(root),
		interval: DefaultInterval,
	}
	for _, dir := range ignore {
		if dir != "" {
			w.ignore = append(w.ignore, filepath.Clean(dir))
		}
	}
	return w
}

// SetInterval changes the scan interval.
func (w *Watcher) SetInterval(d time.Duration) *Watcher {
	if d > 0 {
		w.interval = d
	}
	return w
}

// Watch calls fn after every scan that finds a change, until ctx is
// cancelled. The first scan only records the starting state. Errors from
// fn are passed to onErr when it is not nil and do not stop watching.
func (w *Watcher) Watch(ctx context.Context, fn func() error, onErr func(error)) error {
	if _, err := w.Changed(); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			changed, err := w.Changed()
			if err != nil {
				if onErr != nil {
					onErr(err)
				}
				continue
			}
			if !changed {
				continue
			}
			if err := fn(); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}

// Changed rescans the tree and reports whether it differs from the previous
// scan. The first call always reports false.
func (w *Watcher) Changed() (bool, error) {
	next, err := w.scan()
	if err != nil {
		return false, err
	}
	prev := w.last
	w.last = next
	if prev == nil {
		return false, nil
	}

	if len(prev) != len(next) {
		return true, nil
	}
	for path, st := range next {
		old, ok := prev[path]
		if !ok || !old.modTime.Equal(st.modTime) || old.size != st.size {
			return true, nil
		}
	}
	return false, nil
}

func (w *Watcher) scan() (map[string]fileState, error) {
	files := make(map[string]fileState)
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Files can vanish between listing and stat while an editor saves.
			if errors.Is(err, fs.ErrNotExist) && path != w.root {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if path != w.root && w.ignored(path) {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		files[path] = fileState{modTime: info.ModTime(), size: info.Size()}
		return nil
	})
	return files, err
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.ignore {
		if path == dir {
			return true
		}
	}
	return false
}
