package catalog

import (
	"fmt"
	"maps"
	"slices"

	"github.com/starford/vimcmd/internal/apperr"
	"github.com/starford/vimcmd/internal/storage"
)

// BuiltinName is the short name of the catalog shipped with the binary.
const BuiltinName = "basic"

// Registry maps source short names to file paths. It is a plain value passed
// into each run; Resolve never modifies the receiver.
type Registry map[string]string

// Resolve turns a short name or a path into the path of a source file.
//
// A known short name resolves to its path and a known path resolves to
// itself. Any other locator must be an existing file; it is then returned
// together with a copy of the registry in which it is registered under
// itself. The returned registry is r itself when nothing was added.
func (r Registry) Resolve(locator string) (string, Registry, error) {
	if path, ok := r[locator]; ok {
		return path, r, nil
	}
	for _, path := range r {
		if path == locator {
			return path, r, nil
		}
	}
	if locator != "" && storage.IsFile(locator) {
		next := maps.Clone(r)
		if next == nil {
			next = Registry{}
		}
		next[locator] = locator
		return locator, next, nil
	}
	return "", r, fmt.Errorf("Source %s %w", locator, apperr.ErrSourceNotRecognised)
}

// Names returns the registered short names in sorted order.
func (r Registry) Names() []string {
	var ids []string
	for id := range r {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
