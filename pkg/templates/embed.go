package templates

import (
	"embed"
	"io/fs"
)

//go:embed builtin/*
var embeddedTemplates embed.FS

// EmbeddedFS returns the bundled templates. Callers may pass this filesystem
// to LoadFS to start from the defaults.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "builtin")
	if err != nil {
		// The embed directive guarantees the subpath exists.
		panic(err)
	}
	return sub
}
