package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/vimcmd/internal/apperr"
)

func TestRegistryResolve_ShortName(t *testing.T) {
	reg := Registry{"basic": "/data/vim-basic.csv"}
	path, next, err := reg.Resolve("basic")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != "/data/vim-basic.csv" {
		t.Errorf("path = %q", path)
	}
	if len(next) != 1 {
		t.Errorf("registry grew: %v", next)
	}
}

func TestRegistryResolve_KnownPath(t *testing.T) {
	reg := Registry{"basic": "/data/vim-basic.csv"}
	path, _, err := reg.Resolve("/data/vim-basic.csv")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != "/data/vim-basic.csv" {
		t.Errorf("path = %q", path)
	}
}

func TestRegistryResolve_FileRegistersCopy(t *testing.T) {
	file := filepath.Join(t.TempDir(), "extra.csv")
	if err := os.WriteFile(file, []byte("keys\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	reg := Registry{"basic": "/data/vim-basic.csv"}

	path, next, err := reg.Resolve(file)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != file {
		t.Errorf("path = %q, want %q", path, file)
	}
	if next[file] != file {
		t.Errorf("resolved file not registered under itself: %v", next)
	}
	if _, ok := reg[file]; ok {
		t.Error("Resolve mutated the receiver")
	}
	if got := next.Names(); len(got) != 2 || got[0] != file || got[1] != "basic" {
		t.Errorf("Names = %v", got)
	}
}

func TestRegistryResolve_Unknown(t *testing.T) {
	reg := Registry{"basic": "/data/vim-basic.csv"}
	for _, loc := range []string{"advanced", "", t.TempDir()} {
		_, _, err := reg.Resolve(loc)
		if !errors.Is(err, apperr.ErrSourceNotRecognised) {
			t.Errorf("Resolve(%q) err = %v, want ErrSourceNotRecognised", loc, err)
		}
	}
	_, _, err := reg.Resolve("advanced")
	if err == nil || err.Error() != "Source advanced not recognised" {
		t.Errorf("message = %v", err)
	}
}

func TestRegistryResolve_NilRegistry(t *testing.T) {
	file := filepath.Join(t.TempDir(), "extra.csv")
	_ = os.WriteFile(file, []byte("keys\n"), 0o644)

	var reg Registry
	_, next, err := reg.Resolve(file)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if next[file] != file {
		t.Errorf("registry = %v", next)
	}
}
