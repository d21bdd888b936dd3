package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps documents on the local filesystem under baseDir.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Put(ctx context.Context, path string, r io.Reader, size int64) error {
	absPath, err := s.abs(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrPut, err)
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPut, err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, r)
	if err != nil {
		_ = os.Remove(absPath)
		return fmt.Errorf("%w: %v", ErrPut, err)
	}
	if size > 0 && written != size {
		_ = os.Remove(absPath)
		return fmt.Errorf("%w: short write (%d of %d bytes)", ErrPut, written, size)
	}

	return nil
}

func (s *LocalStore) Remove(ctx context.Context, path string) error {
	absPath, err := s.abs(path)
	if err != nil {
		return err
	}
	// file may already be gone
	_ = os.Remove(absPath)
	return nil
}

func (s *LocalStore) abs(path string) (string, error) {
	cleaned := filepath.Clean("/" + strings.ReplaceAll(path, "\\", "/"))
	if cleaned == "/" {
		return "", fmt.Errorf("%w: empty path", ErrPut)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
