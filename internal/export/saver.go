package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Saver persists an export and returns where it went.
type Saver interface {
	Save(ctx context.Context, f File) (string, error)
}

// DirSaver writes exports into Dir, creating it on demand. An existing
// file with the same name is overwritten.
type DirSaver struct {
	Dir string
}

// Save writes f to Dir/f.Name through a temporary file so a failed write
// never leaves a truncated export behind.
func (s DirSaver) Save(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(f.Name))

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Name)+".*")
	if err != nil {
		return "", fmt.Errorf("save %s: %w", f.Name, err)
	}
	if _, err := tmp.Write(f.Content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save %s: %w", f.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save %s: %w", f.Name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save %s: %w", f.Name, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("save %s: %w", f.Name, err)
	}
	return path, nil
}
