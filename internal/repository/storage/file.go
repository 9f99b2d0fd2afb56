package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/oshokin/boombim-admin/internal/config"
)

// Repository defines persistence operations for string values.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FileRepository persists string values as a JSON object in a file on disk.
// Every call reads the file so values written by another process are seen.
type FileRepository struct {
	// path is the filesystem location of the JSON file.
	path string
	// mu serializes read-modify-write cycles on the file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the key has no value.
	ErrNotFound = errors.New("value not found")

	//nolint:gochecknoglobals // Shared codec configuration.
	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the location of the backing file.
func (r *FileRepository) Path() string {
	return r.path
}

// Get returns the value stored under key.
func (r *FileRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}

	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *FileRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return err
	}

	values[key] = value

	return r.write(values)
}

// Delete removes key. Deleting a missing key is not an error.
func (r *FileRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	values, err := r.read()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)

	return r.write(values)
}

// read loads the whole file. A missing or empty file is an empty object.
func (r *FileRepository) read() (map[string]string, error) {
	values := make(map[string]string)

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}

		return nil, fmt.Errorf("read storage file: %w", err)
	}

	if len(contents) == 0 {
		return values, nil
	}

	if err = json.Unmarshal(contents, &values); err != nil {
		return nil, fmt.Errorf("decode storage file: %w", err)
	}

	return values, nil
}

// write replaces the file atomically through a temporary sibling.
func (r *FileRepository) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err = os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create storage directory: %w", err)
		}
	}

	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("replace storage file: %w", err)
	}

	return nil
}
