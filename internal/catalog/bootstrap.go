package catalog

import (
	"embed"
	"fmt"

	"github.com/starford/vimcmd/internal/storage"
)

//go:embed data/vim-basic.csv
var builtinFS embed.FS

// Bootstrap writes the built-in catalog to path unless a file already exists
// there. It reports whether a file was written.
func Bootstrap(path string) (bool, error) {
	if storage.IsFile(path) {
		return false, nil
	}
	data, err := builtinFS.ReadFile("data/vim-basic.csv")
	if err != nil {
		return false, fmt.Errorf("reading embedded catalog: %w", err)
	}
	if err := storage.WriteAtomic(path, data); err != nil {
		return false, fmt.Errorf("writing built-in catalog: %w", err)
	}
	return true, nil
}
