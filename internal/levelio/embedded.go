package levelio

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed levels/*.yaml
var builtin embed.FS

// Builtin returns the catalog of levels shipped with the binary.
func Builtin() (*Catalog, error) {
	sub, err := fs.Sub(builtin, "levels")
	if err != nil {
		return nil, err
	}
	return NewCatalog(sub)
}

// Open returns the catalog in dir, or the built-in levels when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Builtin()
	}
	return NewCatalog(os.DirFS(dir))
}
