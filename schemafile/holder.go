package schemafile

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	typeforge "github.com/reoring/typeforge"
)

// Holder provides thread-safe access to a set of parsed schemas with hot
// reload support. It serves either a single schema file or a directory
// of them.
type Holder struct {
	mu       sync.RWMutex
	schemas  map[string]typeforge.Schema
	path     string
	isDir    bool
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(map[string]typeforge.Schema)
	stopCh   chan struct{}
}

// NewHolder loads the initial schemas from path, which may be a schema
// file or a directory of schema files.
func NewHolder(path string, logger zerolog.Logger) (*Holder, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat schema path: %w", err)
	}

	h := &Holder{
		path:   absPath,
		isDir:  info.IsDir(),
		logger: logger,
		stopCh: make(chan struct{}),
	}
	schemas, err := h.load()
	if err != nil {
		return nil, fmt.Errorf("load schemas: %w", err)
	}
	h.schemas = schemas
	return h, nil
}

func (h *Holder) load() (map[string]typeforge.Schema, error) {
	if h.isDir {
		return ParseDir(h.path)
	}
	s, err := ParseFile(h.path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(h.path), filepath.Ext(h.path))
	return map[string]typeforge.Schema{name: s}, nil
}

// Get returns the schema registered under name.
func (h *Holder) Get(name string) (typeforge.Schema, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.schemas[name]
	return s, ok
}

// Names returns the loaded schema names, sorted.
func (h *Holder) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.schemas))
	for name := range h.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Reload re-reads the schemas from disk. On failure the old set stays in
// place and the error is returned.
func (h *Holder) Reload() error {
	h.logger.Info().Str("path", h.path).Msg("reloading schemas")

	schemas, err := h.load()
	if err != nil {
		h.logger.Error().Err(err).Msg("schema reload failed, keeping old set")
		return fmt.Errorf("reload schemas: %w", err)
	}

	h.mu.Lock()
	old := h.schemas
	h.schemas = schemas
	listeners := append([]func(map[string]typeforge.Schema)(nil), h.onChange...)
	h.mu.Unlock()

	h.logChanges(old, schemas)
	for _, fn := range listeners {
		fn(schemas)
	}

	h.logger.Info().Int("schemas", len(schemas)).Msg("schemas reloaded")
	return nil
}

// OnChange registers a callback invoked with the new schema set after
// every successful reload.
func (h *Holder) OnChange(fn func(map[string]typeforge.Schema)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// WatchFiles starts watching the schema path for changes. Changes
// trigger automatic reload.
func (h *Holder) WatchFiles() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	h.watcher = watcher

	// Watch the directory; editors that save atomically replace files,
	// so watching the file itself misses events.
	dir := h.path
	if !h.isDir {
		dir = filepath.Dir(h.path)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	go h.watchLoop()

	h.logger.Info().Str("path", h.path).Msg("watching schemas for changes")
	return nil
}

// WatchSignals starts listening for SIGHUP to trigger reload.
func (h *Holder) WatchSignals() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-sigCh:
				h.logger.Info().Msg("received SIGHUP, reloading schemas")
				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("SIGHUP reload failed")
				}
			case <-h.stopCh:
				signal.Stop(sigCh)
				return
			}
		}
	}()

	h.logger.Info().Msg("listening for SIGHUP to reload schemas")
}

// Stop stops watching for file changes and signals.
func (h *Holder) Stop() {
	close(h.stopCh)
	if h.watcher != nil {
		h.watcher.Close()
	}
}

func (h *Holder) watchLoop() {
	for {
		select {
		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if !h.relevant(event.Name) {
				continue
			}
			// Write or create; atomic saves surface as create.
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				h.logger.Debug().
					Str("event", event.Op.String()).
					Str("file", event.Name).
					Msg("schema file changed")

				if err := h.Reload(); err != nil {
					h.logger.Error().Err(err).Msg("file watch reload failed")
				}
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Msg("file watcher error")

		case <-h.stopCh:
			return
		}
	}
}

func (h *Holder) relevant(name string) bool {
	if !h.isDir {
		return filepath.Base(name) == filepath.Base(h.path)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

func (h *Holder) logChanges(prev, next map[string]typeforge.Schema) {
	for name := range next {
		if _, ok := prev[name]; !ok {
			h.logger.Info().Str("schema", name).Msg("schema added")
		}
	}
	for name := range prev {
		if _, ok := next[name]; !ok {
			h.logger.Info().Str("schema", name).Msg("schema removed")
		}
	}
}
