package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Holder provides thread-safe access to a registry loaded from a directory,
// replacing it wholesale on reload.
type Holder struct {
	mu       sync.RWMutex
	registry *Registry
	dir      string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(*Registry)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHolder loads dir and checks that its schemas form a valid hierarchy.
func NewHolder(dir string, logger zerolog.Logger) (*Holder, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	reg, err := load(absDir)
	if err != nil {
		return nil, err
	}

	return &Holder{
		registry: reg,
		dir:      absDir,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

func load(dir string) (*Registry, error) {
	reg, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}

	if _, err := reg.Plan(); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}

	return reg, nil
}

// Get returns the current registry (thread-safe).
func (h *Holder) Get() *Registry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.registry
}

// Dir returns the watched schema directory.
func (h *Holder) Dir() string {
	return h.dir
}

// Reload reloads every schema from disk.
// Returns error if loading or planning fails (keeps old registry).
func (h *Holder) Reload() error {
	h.logger.Info().Str("dir", h.dir).Msg("reloading schemas")

	newReg, err := load(h.dir)
	if err != nil {
		h.logger.Error().Err(err).Msg("schema reload failed, keeping old registry")
		return fmt.Errorf("reload schemas: %w", err)
	}

	h.mu.Lock()
	oldReg := h.registry
	h.registry = newReg
	listeners := append([]func(*Registry){}, h.onChange...)
	h.mu.Unlock()

	h.logChanges(oldReg, newReg)

	for _, fn := range listeners {
		fn(newReg)
	}

	h.logger.Info().Int("schemas", newReg.Len()).Msg("schemas reloaded successfully")

	return nil
}

// OnChange registers a callback to be called after each successful reload.
func (h *Holder) OnChange(fn func(*Registry)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.onChange = append(h.onChange, fn)
}

// WatchDir starts watching the schema directory and every directory below
// it. Changes to schema files trigger automatic reload.
func (h *Holder) WatchDir() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	if err := watchTree(watcher, h.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	h.watcher = watcher

	go h.watchLoop(watcher)

	h.logger.Info().Str("dir", h.dir).Msg("watching schema directory for changes")

	return nil
}

// Stop stops watching for changes. It is safe to call more than once.
func (h *Holder) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)

		if h.watcher != nil {
			h.watcher.Close()
		}
	})
}

func (h *Holder) watchLoop(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create != 0 && isDir(event.Name) {
				// Directories created or moved in may already hold schemas.
				if err := watchTree(watcher, event.Name); err != nil {
					h.logger.Error().Err(err).Str("dir", event.Name).Msg("failed to watch schema subdirectory")
				}
			} else if !IsSchemaFile(event.Name) && !mayBeDir(event) {
				continue
			}

			// Atomic saves show up as create or rename.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			h.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("schema file changed")

			if err := h.Reload(); err != nil {
				h.logger.Error().Err(err).Msg("file watch reload failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}

			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

// watchTree adds root and every directory below it to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		return watcher.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// mayBeDir reports whether a removed or renamed entry could have been a
// directory. It is gone, so only the missing extension hints at it.
func mayBeDir(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && filepath.Ext(event.Name) == ""
}

func (h *Holder) logChanges(old, new *Registry) {
	oldNames, newNames := old.Names(), new.Names()

	for _, name := range newNames {
		if _, ok := old.Get(name); !ok {
			h.logger.Info().Str("schema", name).Msg("schema added")
		}
	}

	for _, name := range oldNames {
		if _, ok := new.Get(name); !ok {
			h.logger.Info().Str("schema", name).Msg("schema removed")
		}
	}
}
