package config

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file has to stay quiet before it is reported.
// Editors often write a file in several steps.
const settle = 100 * time.Millisecond

// Watcher reports board config and categorizer script changes. Each path is
// sent on Events once its writes have settled. Both channels are closed by
// Close.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan string
	Errors chan error

	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewWatcher watches every dir. It fails if any of them cannot be watched.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)
	defer close(w.Errors)
	defer close(w.Events)

	pending := map[string]struct{}{}
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(settle)

		case <-timer.C:
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			clear(pending)
			slices.Sort(paths)
			for _, p := range paths {
				select {
				case w.Events <- p:
				case <-w.stop:
					return
				}
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// keep the first unread error only
			select {
			case w.Errors <- err:
			default:
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return IsConfigFile(ev.Name) || IsScriptFile(ev.Name)
}

// IsConfigFile reports whether path looks like a YAML board config.
func IsConfigFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// IsScriptFile reports whether path is a tengo categorizer script.
func IsScriptFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tengo")
}
