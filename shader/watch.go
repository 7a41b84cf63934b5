package shader

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to shader source assets. Events are delivered on a
// buffered channel drained by the render thread, so the watcher goroutine
// never touches GL state.
type Watcher struct {
	fsw     *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// Watch starts watching dir for shader source changes.
func Watch(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	logger.Noticef("watching %s for shader changes", dir)
	return w, nil
}

func isShaderSource(name string) bool {
	switch filepath.Ext(name) {
	case ".vert", ".frag", ".glsl":
		return true
	}
	return false
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !isShaderSource(ev.Name) {
				continue
			}
			// Coalesce bursts; one pending notification is enough.
			select {
			case w.changes <- ev.Name:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warningf("watch error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Changes returns the notification channel. Each value is the path of a
// changed shader source.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
