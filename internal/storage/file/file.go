// Package file stores the task list slot as a JSON file on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"task-list/internal/storage"
)

// Extension is appended to the slot name to form the file name.
const Extension = ".json"

// Slot is a storage slot backed by a single file.
type Slot struct {
	name     string
	path     string
	dirPerms fs.FileMode
}

// New creates a file slot named name inside dir. The directory is created on first write.
func New(dir, name string, dirPerms fs.FileMode) *Slot {
	if name == "" {
		name = storage.DefaultSlotName
	}
	if dirPerms == 0 {
		dirPerms = 0755
	}
	return &Slot{
		name:     name,
		path:     filepath.Join(dir, name+Extension),
		dirPerms: dirPerms,
	}
}

// Name returns the slot name.
func (s *Slot) Name() string {
	return s.name
}

// Path returns the file the slot is stored in.
func (s *Slot) Path() string {
	return s.path
}

// Read returns the file content, or nil when the file does not exist yet.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return data, nil
}

// Write replaces the file atomically: data goes to a temporary file in the same
// directory which is synced and then renamed over the slot file.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, s.dirPerms); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+s.name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// List returns every slot file in the slot's directory, ordered by name.
// A directory that does not exist yet holds no slots.
func (s *Slot) List(ctx context.Context) ([]storage.SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(s.path)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var infos []storage.SlotInfo
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != Extension {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, storage.SlotInfo{
			Name:      strings.TrimSuffix(name, Extension),
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// Close is a no-op; the file is not held open between operations.
func (s *Slot) Close() error {
	return nil
}
