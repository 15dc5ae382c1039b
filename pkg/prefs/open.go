package prefs

import (
	"fmt"
	"strings"
)

// Reloader is implemented by providers that cache a document in memory and
// must be refreshed before each read cycle.
type Reloader interface {
	Load() error
}

// Source selects and locates a preference backend.
type Source struct {
	// Backend is "store" (default) or "file".
	Backend string

	// Path is the parent directory for "store" or the document path for
	// "file".
	Path string

	// Name is the preference set name for "store".
	Name string
}

// Open returns the Provider described by src.
func Open(src Source) (Provider, error) {
	switch strings.ToLower(src.Backend) {
	case "", "store":
		return NewStore(StoreConfig{Dir: src.Path, Name: src.Name})
	case "file":
		if src.Path == "" {
			return nil, fmt.Errorf("prefs: file backend requires a path")
		}
		return NewFile(src.Path), nil
	default:
		return nil, fmt.Errorf("prefs: unknown backend %q", src.Backend)
	}
}
