package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*
var embeddedTemplates embed.FS

// templateFS is the 'templates' directory with paths relative to it.
func templateFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}

	return sub
}
