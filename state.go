package portset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	historyDir     = "history"
	stateFileExt   = ".portset"
	entrySeparator = "\n===\n"
	none           = "-"
	maxHistory     = 50
)

// Operation records one persisted rewrite of Path.
type Operation struct {
	Timestamp      int64
	Path           string
	OldContentHash string
	ContentHash    string
}

// History is the rewrite log of one file. Operations up to CurrentIndex are
// applied; the ones after it were undone and can be redone.
type History struct {
	Operations   []Operation
	CurrentIndex int
}

type StateManager struct {
	StateDir string
}

func DefaultStateDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "portset")
	}
	return filepath.Join(os.TempDir(), "portset")
}

func NewStateManager(dir string) (*StateManager, error) {
	if err := os.MkdirAll(filepath.Join(dir, historyDir), 0755); err != nil {
		return nil, err
	}
	return &StateManager{StateDir: dir}, nil
}

func (m *StateManager) statePath(path string) string {
	return filepath.Join(m.StateDir, historyDir, contentSHA256(resolvePath(path))+stateFileExt)
}

// Load returns the history of path; an unknown path has an empty one.
func (m *StateManager) Load(path string) (*History, error) {
	h := &History{CurrentIndex: -1}
	data, err := os.ReadFile(m.statePath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return h, nil
		}
		return nil, err
	}

	blocks := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), entrySeparator)
	idx, err := strconv.Atoi(strings.TrimSpace(blocks[0]))
	if err != nil {
		return nil, fmt.Errorf("corrupt history %s: %w", m.statePath(path), err)
	}

	val := func(s string) string {
		s = strings.TrimSpace(s)
		if s == none {
			return ""
		}
		return s
	}

	for _, b := range blocks[1:] {
		lines := strings.Split(strings.TrimSpace(b), "\n")
		if len(lines) < 4 {
			continue
		}
		h.Operations = append(h.Operations, Operation{
			Timestamp:      parseTimestamp(lines[0]),
			Path:           val(lines[1]),
			OldContentHash: val(lines[2]),
			ContentHash:    val(lines[3]),
		})
	}
	h.CurrentIndex = max(-1, min(idx, len(h.Operations)-1))
	return h, nil
}

func parseTimestamp(s string) int64 {
	ts, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return ts
}

func (m *StateManager) save(path string, h *History) error {
	placeholder := func(s string) string {
		if s == "" {
			return none
		}
		return s
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d", h.CurrentIndex)
	for _, op := range h.Operations {
		b.WriteString(entrySeparator)
		fmt.Fprintf(&b, "%d\n%s\n%s\n%s", op.Timestamp, placeholder(op.Path), placeholder(op.OldContentHash), placeholder(op.ContentHash))
	}
	return Persist(m.statePath(path), b.String())
}

// Record stores both sides of a rewrite and appends the operation, dropping
// anything that was undone but not redone.
func (m *StateManager) Record(path, before, after string) error {
	oldHash, newHash := contentSHA256(before), contentSHA256(after)
	if err := WriteBlob(m.StateDir, oldHash, []byte(before)); err != nil {
		return err
	}
	if err := WriteBlob(m.StateDir, newHash, []byte(after)); err != nil {
		return err
	}

	h, err := m.Load(path)
	if err != nil {
		return err
	}
	h.Operations = append(h.Operations[:h.CurrentIndex+1], Operation{
		Timestamp:      time.Now().UTC().Unix(),
		Path:           resolvePath(path),
		OldContentHash: oldHash,
		ContentHash:    newHash,
	})
	if len(h.Operations) > maxHistory {
		h.Operations = h.Operations[len(h.Operations)-maxHistory:]
	}
	h.CurrentIndex = len(h.Operations) - 1
	return m.save(path, h)
}

// ToUndo returns the last applied operation for path.
func (m *StateManager) ToUndo(path string) (Operation, bool, error) {
	h, err := m.Load(path)
	if err != nil || h.CurrentIndex < 0 {
		return Operation{}, false, err
	}
	return h.Operations[h.CurrentIndex], true, nil
}

// ToRedo returns the first undone operation for path.
func (m *StateManager) ToRedo(path string) (Operation, bool, error) {
	h, err := m.Load(path)
	if err != nil || h.CurrentIndex+1 >= len(h.Operations) {
		return Operation{}, false, err
	}
	return h.Operations[h.CurrentIndex+1], true, nil
}

// Step moves the cursor of path by delta once an undo (-1) or redo (+1)
// has been applied on disk.
func (m *StateManager) Step(path string, delta int) error {
	h, err := m.Load(path)
	if err != nil {
		return err
	}
	next := h.CurrentIndex + delta
	if next < -1 || next >= len(h.Operations) {
		return nil
	}
	h.CurrentIndex = next
	return m.save(path, h)
}
