package portset

import (
	"errors"
	"fmt"
	"io/fs"
)

type FileManager struct{}

func NewFileManager() *FileManager {
	return &FileManager{}
}

// Undo puts back the content recorded before op, provided the file still
// holds what op wrote.
func (m *FileManager) Undo(op Operation, stateDir string) error {
	return m.swap(op.Path, op.ContentHash, op.OldContentHash, stateDir)
}

// Redo re-applies op, provided the file still holds what op replaced.
func (m *FileManager) Redo(op Operation, stateDir string) error {
	return m.swap(op.Path, op.OldContentHash, op.ContentHash, stateDir)
}

func (m *FileManager) swap(path, expectHash, blobHash, stateDir string) error {
	actualHash, err := GetFileSHA256(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return &OpError{Op: "read " + path, Err: err}
	}
	if actualHash != expectHash {
		return fmt.Errorf("%w: %s", ErrConflict, path)
	}

	content, err := ReadBlob(stateDir, blobHash)
	if err != nil {
		return &OpError{Op: "read backup of " + path, Err: err}
	}
	return Persist(path, string(content))
}
