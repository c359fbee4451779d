// Package web embeds the page templates and static assets so the site is
// served from the Go binary alone.
//
// Usage in the HTTP server:
//
//	r, err := web.NewRenderer()
//	static := web.StaticFS() // io/fs.FS rooted at static/
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// StaticFS returns a filesystem rooted at the embedded static/ directory.
// This is ready to use with http.FileServerFS or http.FS.
func StaticFS() fs.FS {
	return mustSub("static")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(assets, dir)
	if err != nil {
		panic("web: " + err.Error())
	}
	return sub
}
