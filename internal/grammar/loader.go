package grammar

import (
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Loader reads a YAML grammar file and watches it for changes.
type Loader struct {
	path     string
	mu       sync.RWMutex
	current  *Grammar
	onChange []func(*Grammar)
	watcher  *fsnotify.Watcher
}

// NewLoader creates a Loader and performs the initial load.
func NewLoader(path string) (*Loader, error) {
	l := &Loader{path: path}
	g, err := l.load()
	if err != nil {
		return nil, err
	}
	l.current = g
	return l, nil
}

// Grammar returns the current (latest) grammar.
func (l *Loader) Grammar() *Grammar {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Path returns the grammar file location.
func (l *Loader) Path() string {
	return l.path
}

// OnChange registers a callback invoked whenever the grammar reloads.
func (l *Loader) OnChange(fn func(*Grammar)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch starts a background goroutine that re-reads the grammar on file changes.
// Call the returned stop function to clean up.
func (l *Loader) Watch() (stop func(), err error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("grammar watcher: %w", err)
	}
	if err := w.Add(l.path); err != nil {
		w.Close()
		return nil, fmt.Errorf("grammar watcher add %s: %w", l.path, err)
	}
	l.watcher = w

	done := make(chan struct{})
	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					g, err := l.load()
					if err != nil {
						// Keep the old grammar on a bad intermediate save.
						continue
					}
					l.mu.Lock()
					l.current = g
					callbacks := make([]func(*Grammar), len(l.onChange))
					copy(callbacks, l.onChange)
					l.mu.Unlock()
					for _, fn := range callbacks {
						fn(g)
					}
				}
			case <-w.Errors:
				// Ignore watcher errors.
			case <-done:
				return
			}
		}
	}()

	return func() { close(done) }, nil
}

// Reload forces an immediate re-read of the grammar file.
func (l *Loader) Reload() (*Grammar, error) {
	g, err := l.load()
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.current = g
	callbacks := make([]func(*Grammar), len(l.onChange))
	copy(callbacks, l.onChange)
	l.mu.Unlock()
	for _, fn := range callbacks {
		fn(g)
	}
	return g, nil
}

func (l *Loader) load() (*Grammar, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read grammar %s: %w", l.path, err)
	}
	var g Grammar
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse grammar %s: %w", l.path, err)
	}
	return &g, nil
}
