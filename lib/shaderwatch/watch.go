package shaderwatch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/jhenstridge/go-inotify"
	"github.com/learnopengl/hellotriangle/lib/log"
)

// Editors often replace a file instead of writing it in place, so the
// containing directories are watched and events are filtered by name.
const changeMask = inotify.IN_CLOSE_WRITE | inotify.IN_MOVED_TO

// Watcher calls back when one of a set of files has been rewritten.
type Watcher struct {
	watcher  *inotify.Watcher
	files    map[string]struct{}
	onChange func(path string)
	logger   *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Watch starts watching paths. onChange runs on the watcher's goroutine.
func Watch(paths []string, onChange func(path string)) (*Watcher, error) {
	inner, err := inotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not start inotify watcher: %w", err)
	}

	w := &Watcher{
		watcher:  inner,
		files:    make(map[string]struct{}),
		onChange: onChange,
		logger:   log.Module("shaderwatch"),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = inner.Close()
			return nil, fmt.Errorf("somehow, %s is malformed: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		_, err = inner.AddWatch(dir, changeMask)
		if err != nil {
			_ = inner.Close()
			return nil, fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Event:
			if !ok {
				return
			}
			if ev.Mask&changeMask == 0 {
				continue
			}
			name := eventPath(ev)
			if _, ok := w.files[name]; !ok {
				continue
			}
			w.logger.Debug("Reloading shaders due to inotify event on " + name)
			w.onChange(name)
		}
	}
}

// eventPath turns an event on a watched directory back into a full path.
// The kernel only reports the name relative to that directory.
func eventPath(ev inotify.Event) string {
	if ev.Watch == nil {
		return filepath.Clean(ev.Name)
	}
	return filepath.Join(ev.Watch.Path, ev.Name)
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		// run keeps draining events until the inotify reader has stopped
		err = w.watcher.Close()
		if err != nil {
			w.logger.Warn("inotify watcher stopped with an error", slog.Any("err", err))
		}
		close(w.done)
		w.wg.Wait()
	})
	return err
}
