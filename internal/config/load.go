package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Path returns the config file path: $XDG_CONFIG_HOME/ttwm/config.toml,
// falling back to $HOME/.config/ttwm/config.toml.
func Path() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "ttwm", "config.toml")
}

// Load reads and parses the config file at path. A missing file is not an
// error: every key is optional, so the built-in defaults alone produce a
// working WM. A present-but-malformed file is a parse failure and is
// returned as an error for the caller to print to stderr and abort startup
// with.
func Load(path string) (*Config, error) {
	raw := DefaultRaw()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Resolve(raw)
	}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return Resolve(raw)
}

// Watcher hot-reloads the config file on write.
type Watcher struct {
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
}

// NewWatcher starts watching path's parent directory (so the watch
// survives the file not existing yet, or being replaced by an editor's
// atomic rename-over-write).
func NewWatcher(path string, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: creating %s: %w", dir, err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watching %s: %w", dir, err)
	}
	return &Watcher{path: path, log: log, watcher: fw}, nil
}

// Watch runs until ctx is cancelled, calling onReload with the freshly
// resolved Config every time path changes. Parse failures are logged and
// skipped — a bad edit never tears down the currently running config.
func (w *Watcher) Watch(ctx context.Context, onReload func(*Config)) {
	for {
		select {
		case <-ctx.Done():
			w.watcher.Close()
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.log.Warn("config reload failed, keeping previous config", zap.Error(err))
				continue
			}
			w.log.Info("config reloaded", zap.String("path", w.path))
			onReload(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", zap.Error(err))
		}
	}
}

// Close releases the underlying filesystem watch.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
