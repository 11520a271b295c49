package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
)

const (
	// valueExt is the file extension of stored values.
	valueExt = ".json"
	// tempFilePrefix is the prefix used for temporary atomic write files.
	tempFilePrefix = "campus-tmp-"
)

// DirStore keeps one file per key in a directory. Writes go through a temp
// file and a rename, so a reader never sees a half-written value.
type DirStore struct {
	root   string
	logger *slog.Logger
}

// OpenDir returns a DirStore rooted at dir, creating the directory if needed.
func OpenDir(dir string, logger *slog.Logger) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DirStore{root: dir, logger: logger}, nil
}

func (d *DirStore) path(key string) string {
	return filepath.Join(d.root, key+valueExt)
}

func (d *DirStore) Get(key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (d *DirStore) Put(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := writeFileAtomic(d.path(key), value, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	d.logger.Debug("value written", "key", key, "bytes", len(value))
	return nil
}

func (d *DirStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		if key, ok := keyFromFile(entry.Name()); ok && !entry.IsDir() {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (d *DirStore) Close() error { return nil }

// Watch reports keys whose files are created, rewritten or removed.
func (d *DirStore) Watch(ctx context.Context) (<-chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(d.root); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", d.root, err)
	}

	changes := make(chan string, 16)
	go func() {
		defer close(changes)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				key, ok := keyFromFile(filepath.Base(event.Name))
				if !ok {
					continue
				}
				select {
				case changes <- key:
				case <-ctx.Done():
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				d.logger.Warn("watch error", "error", err)
			}
		}
	}()
	return changes, nil
}

// keyFromFile maps a file name in the data directory back to its key.
func keyFromFile(name string) (string, bool) {
	if strings.HasPrefix(name, tempFilePrefix) || !strings.HasSuffix(name, valueExt) {
		return "", false
	}
	key := strings.TrimSuffix(name, valueExt)
	return key, key != ""
}

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, tempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op after a successful rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}
	return nil
}
