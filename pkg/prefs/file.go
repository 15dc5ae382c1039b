package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// File is a Provider backed by a flat document on disk. The format follows
// the extension: .toml, .yaml/.yml, or .json. The file is re-read on every
// Load so the host can rewrite it between refreshes. It is safe for
// concurrent use.
type File struct {
	path string

	mu     sync.RWMutex
	values Map
}

// NewFile returns a File provider for path. Nothing is read until Load.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load re-reads the backing file. A missing file leaves the provider empty
// and is not an error; a malformed one empties it and returns the error so
// the caller can log it.
func (f *File) Load() error {
	values, err := f.read()
	f.mu.Lock()
	f.values = values
	f.mu.Unlock()
	return err
}

// read decodes the backing file. The returned map is nil on any failure.
func (f *File) read() (Map, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("prefs: read %s: %w", f.path, err)
	}
	values, err := decodeDocument(f.path, data)
	if err != nil {
		return nil, fmt.Errorf("prefs: decode %s: %w", f.path, err)
	}
	return values, nil
}

// String returns the string stored under key.
func (f *File) String(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values.String(key)
}

// Int returns the integer stored under key.
func (f *File) Int(key string) (int, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values.Int(key)
}

func decodeDocument(path string, data []byte) (Map, error) {
	values := Map{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&values); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format %q", filepath.Ext(path))
	}
	return values, nil
}
