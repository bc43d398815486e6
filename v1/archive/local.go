package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// keyFor sanitizes a document name into a storage key: path
// separators and spaces become underscores, and a .yaml suffix is
// ensured. Applying it twice is a no-op.
func keyFor(name string) string {
	key := strings.NewReplacer("/", "_", "\\", "_", " ", "_", "..", "_").Replace(name)
	if !strings.HasSuffix(key, ".yaml") && !strings.HasSuffix(key, ".yml") {
		key += ".yaml"
	}
	return key
}

// LocalArchive stores documents as files in one directory.
type LocalArchive struct {
	dir    string
	logger Logger
}

// NewLocalArchive creates a directory-backed archive, creating the
// directory if needed.
func NewLocalArchive(cfg LocalConfig, logger Logger) (*LocalArchive, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultLocalDir
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory %q: %w", dir, err)
	}

	return &LocalArchive{dir: dir, logger: logger}, nil
}

// Put writes the document to disk, overwriting any previous version.
func (a *LocalArchive) Put(ctx context.Context, name string, data []byte) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("document name is required")
	}
	key := keyFor(name)

	if err := os.WriteFile(filepath.Join(a.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("writing document %q: %w", key, err)
	}

	if a.logger != nil {
		a.logger.Info("document archived", nil, map[string]interface{}{"key": key, "bytes": len(data)})
	}
	return key, nil
}

// Get reads a document from disk.
func (a *LocalArchive) Get(ctx context.Context, name string) ([]byte, error) {
	key := keyFor(name)

	data, err := os.ReadFile(filepath.Join(a.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("document %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("reading document %q: %w", key, err)
	}
	return data, nil
}

// List returns the stored documents, most recent first.
func (a *LocalArchive) List(ctx context.Context) ([]Entry, error) {
	dirEntries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("listing archive directory: %w", err)
	}

	entries := []Entry{}
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: name, Size: info.Size(), ModTime: info.ModTime()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModTime.After(entries[j].ModTime)
	})
	return entries, nil
}
