package portset

import (
	"errors"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
)

type Config struct {
	StateDir string
	// WithDiff fills Outcome.Diff.
	WithDiff bool
	Logger   *zap.Logger
	Reloader Reloader
}

// Reloader is told about files that were rewritten on disk.
type Reloader interface {
	Reload(path string) error
}

type App struct {
	cfg          *Config
	log          *zap.Logger
	stateManager *StateManager
	fileManager  *FileManager
}

func NewApp(cfg *Config) (*App, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dir := cfg.StateDir
	if dir == "" {
		dir = DefaultStateDir()
	}
	sm, err := NewStateManager(dir)
	if err != nil {
		log.Warn("history disabled", zap.String("state_dir", dir), zap.Error(err))
		sm = nil
	}

	return &App{
		cfg:          cfg,
		log:          log,
		stateManager: sm,
		fileManager:  NewFileManager(),
	}, nil
}

// Run loads the config file, rewrites the first listen directive to req.Port
// and persists the result unless nothing changed or req.Check is set.
// On error the returned Outcome is always the zero value.
func (a *App) Run(req Request) (out Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{}
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	if req.Port <= 0 {
		return Outcome{}, fmt.Errorf("%w: %d", ErrInvalidPort, req.Port)
	}
	path := req.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	doc, err := Load(path)
	if err != nil {
		return Outcome{}, err
	}
	a.log.Debug("config loaded", zap.String("path", path), zap.Int("bytes", len(doc.Content)))

	updated, found := ComputeRewrite(doc, req.Port)
	if !found {
		if !req.AllowMissing {
			return Outcome{}, fmt.Errorf("%w in %s", ErrNoDirective, path)
		}
		a.log.Warn("no listen directive, leaving file untouched", zap.String("path", path))
	}

	res := Outcome{
		Changed:  updated != doc.Content,
		Original: preview(doc.Content),
		Config:   path,
		Port:     req.Port,
	}
	if prev, ok := CurrentPort(doc.Content); ok {
		a.log.Debug("rewrite computed", zap.Int("from", prev), zap.Int("to", req.Port), zap.Bool("changed", res.Changed))
	}

	if a.cfg.WithDiff {
		d, err := UnifiedDiff(path, doc.Content, updated)
		if err != nil {
			return Outcome{}, &OpError{Op: "diff " + path, Err: err}
		}
		res.Diff = d
	}

	if res.Changed && !req.Check {
		if err := Persist(path, updated); err != nil {
			return Outcome{}, err
		}
		a.log.Info("config rewritten", zap.String("path", path), zap.Int("port", req.Port))
		a.afterPersist(path, doc.Content, updated)
	}

	res.Message = outcomeMessage(res)
	return res, nil
}

func outcomeMessage(o Outcome) string {
	if o.Changed {
		return fmt.Sprintf("Port updated to %d", o.Port)
	}
	return fmt.Sprintf("Port %d already set", o.Port)
}

func (a *App) afterPersist(path, before, after string) {
	if a.stateManager != nil {
		if err := a.stateManager.Record(path, before, after); err != nil {
			a.log.Warn("could not record history", zap.String("path", path), zap.Error(err))
		}
	}
	if a.cfg.Reloader != nil {
		if err := a.cfg.Reloader.Reload(path); err != nil {
			a.log.Warn("editor reload failed", zap.String("path", path), zap.Error(err))
		}
	}
}

// Undo restores path to its content before the last applied rewrite.
func (a *App) Undo(path string) (Summary, error) {
	return a.step(path, -1)
}

// Redo re-applies the last undone rewrite of path.
func (a *App) Redo(path string) (Summary, error) {
	return a.step(path, +1)
}

func (a *App) step(path string, delta int) (Summary, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	verb, empty := "undo", ErrNothingToUndo
	if delta > 0 {
		verb, empty = "redo", ErrNothingToRedo
	}
	if a.stateManager == nil {
		return Summary{}, fmt.Errorf("%w for %s: history unavailable", empty, path)
	}

	pick, apply := a.stateManager.ToUndo, a.fileManager.Undo
	if delta > 0 {
		pick, apply = a.stateManager.ToRedo, a.fileManager.Redo
	}
	op, ok, err := pick(path)
	if err != nil {
		return Summary{}, &OpError{Op: "read history of " + path, Err: err}
	}
	if !ok {
		return Summary{}, fmt.Errorf("%w for %s", empty, path)
	}
	if err := apply(op, a.stateManager.StateDir); err != nil {
		if errors.Is(err, ErrConflict) {
			a.log.Warn("refusing "+verb, zap.String("path", op.Path), zap.Error(err))
		}
		return Summary{}, err
	}
	if err := a.stateManager.Step(path, delta); err != nil {
		a.log.Warn("could not update history", zap.Error(err))
	}

	a.log.Info("config restored", zap.String("path", op.Path), zap.String("action", verb))
	if a.cfg.Reloader != nil {
		if err := a.cfg.Reloader.Reload(op.Path); err != nil {
			a.log.Warn("editor reload failed", zap.String("path", op.Path), zap.Error(err))
		}
	}

	msg := "Undone"
	if delta > 0 {
		msg = "Redone"
	}
	return Summary{Restored: op.Path, Message: msg}, nil
}
