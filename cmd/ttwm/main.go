// Command ttwm is the window manager daemon: it loads configuration,
// connects to the X server, and drives the event loop until told to quit.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gofrs/flock"

	"github.com/ttwm/ttwm/internal/config"
	"github.com/ttwm/ttwm/internal/geom"
	"github.com/ttwm/ttwm/internal/ipc"
	"github.com/ttwm/ttwm/internal/wmcore"
	"github.com/ttwm/ttwm/internal/xbackend"
)

// stateDir is where the daemon keeps its single-instance lock and rotated
// log file: $XDG_STATE_HOME/ttwm, falling back to $HOME/.local/state/ttwm.
func stateDir() string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(base, "ttwm")
}

func newLogger(dir string) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	writer := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "ttwm.log"),
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(writer), zapcore.InfoLevel)
	return zap.New(core), nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "ttwm:", err)
		os.Exit(1)
	}
}

func run() error {
	dir := stateDir()

	log, err := newLogger(dir)
	if err != nil {
		return err
	}
	defer log.Sync()

	lockPath := filepath.Join(dir, "ttwm.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquiring single-instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another ttwm instance is already running (%s)", lockPath)
	}
	defer lock.Unlock()

	cfg, err := config.Load(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	backend, err := xbackend.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("connecting to X server: %w", err)
	}

	r := wmcore.New(backend, cfg, log)

	if err := backend.AdoptExisting(r); err != nil {
		log.Warn("adopting existing windows failed", zap.Error(err))
	}
	r.ApplyLayout()

	display := os.Getenv("DISPLAY")
	sockPath := ipc.SocketPath(display)
	ipcSrv, err := ipc.Listen(sockPath, log)
	if err != nil {
		log.Warn("ipc: control socket unavailable, continuing without it", zap.Error(err))
		ipcSrv = nil
	} else {
		defer ipcSrv.Close()
	}

	runStartup(r, log)

	watcher, err := config.NewWatcher(config.Path(), log)
	if err != nil {
		log.Warn("config: hot-reload watcher unavailable", zap.Error(err))
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go watcher.Watch(ctx, r.QueueConfigReload)
	}

	return backend.Run(r, ipcSrv)
}

// runStartup launches every configured startup window: switch to its
// workspace, optionally open a split ahead of the launch, then exec the
// command through the user's shell so it can use pipes/quoting freely.
func runStartup(r *wmcore.Reducer, log *zap.Logger) {
	for _, sw := range r.Config.Startup {
		r.SwitchWorkspace(sw.Workspace)
		switch sw.Split {
		case "horizontal":
			r.Split(geom.Horizontal)
		case "vertical":
			r.Split(geom.Vertical)
		}
		cmd := sw.Command
		go func() {
			c := exec.Command("sh", "-c", cmd)
			if err := c.Start(); err != nil {
				log.Warn("startup command failed to start", zap.String("command", cmd), zap.Error(err))
				return
			}
			_ = c.Wait()
		}()
	}
}
