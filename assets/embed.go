// Package assets embeds the default language catalog and the SQL migrations
// so the server runs without any files next to the binary.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed catalog.yaml sql/*.sql
var FS embed.FS

// Catalog returns the raw default catalog document.
func Catalog() ([]byte, error) {
	return FS.ReadFile("catalog.yaml")
}

// Migrations returns the migration directory rooted at "sql".
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// fs.Sub only fails on an invalid path, and "sql" is a constant.
		panic(err)
	}
	return sub
}
