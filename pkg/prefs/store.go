package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultName is the directory name the host application writes its
// widget preferences under.
const DefaultName = "HomeWidgetPrefs"

// StoreConfig holds configuration for a preference Store.
type StoreConfig struct {
	// Dir is the parent directory. Entries live in Dir/Name.
	Dir string

	// Name is the preference set name. Default: DefaultName.
	Name string
}

// entry is the JSON document persisted for each key.
type entry struct {
	Key     string          `json:"key"`
	Value   json.RawMessage `json:"value"`
	Updated int64           `json:"updated"` // UnixNano
}

// Store is a disk-backed preference set. Each key is stored as one
// {hash}.pref file holding a JSON entry, written atomically via a temp file
// and rename so a concurrent reader never sees a torn value. Reads always go
// to disk because the writer is usually another process.
type Store struct {
	dir string

	// mu serializes writers within this process.
	mu sync.Mutex
}

// NewStore opens (creating if needed) the preference set described by cfg.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	dir := filepath.Join(cfg.Dir, cfg.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("prefs: create directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the entry files.
func (s *Store) Dir() string {
	return s.dir
}

// String returns the string stored under key.
func (s *Store) String(key string) (string, bool) {
	raw, ok := s.read(key)
	if !ok {
		return "", false
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	return v, true
}

// Int returns the integer stored under key. Non-integral or out-of-range
// numbers read as absent.
func (s *Store) Int(key string) (int, bool) {
	raw, ok := s.read(key)
	if !ok {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return toInt(v)
}

// Put stores value under key as JSON.
func (s *Store) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("prefs: marshal value for %q: %w", key, err)
	}
	data, err := json.Marshal(entry{
		Key:     key,
		Value:   raw,
		Updated: time.Now().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("prefs: marshal entry for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := atomicWrite(s.path(key), data, s.dir); err != nil {
		return fmt.Errorf("prefs: write %q: %w", key, err)
	}
	return nil
}

// PutString stores a string value.
func (s *Store) PutString(key, value string) error {
	return s.Put(key, value)
}

// PutInt stores an integer value.
func (s *Store) PutInt(key string, value int) error {
	return s.Put(key, value)
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("prefs: delete %q: %w", key, err)
	}
	return nil
}

// Keys returns the sorted keys of all readable entries.
func (s *Store) Keys() []string {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}

	var keys []string
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".pref") {
			continue
		}
		e, err := readEntry(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, hashKey(key)+".pref")
}

// read returns the raw JSON value for key. The stored key is compared
// against the requested one so a hash collision reads as absent.
func (s *Store) read(key string) (json.RawMessage, bool) {
	e, err := readEntry(s.path(key))
	if err != nil || e.Key != key || len(e.Value) == 0 {
		return nil, false
	}
	return e.Value, true
}

func readEntry(path string) (entry, error) {
	var e entry
	data, err := os.ReadFile(path)
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(data, &e); err != nil {
		return e, err
	}
	return e, nil
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
