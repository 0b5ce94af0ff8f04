package content

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
)

// DefaultStaticAssetsPath is the local path the site assets are served from.
const DefaultStaticAssetsPath = "/static"

//go:embed static/*
var embeddedStaticAssets embed.FS

// StaticAssetsFS exposes the embedded stylesheet and browser scripts.
func StaticAssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedStaticAssets, "static")
	if err != nil {
		// The directory is embedded at build time.
		panic(fmt.Errorf("content: failed to prepare embedded static assets: %w", err))
	}
	return sub
}

// StaticAssetsHandler serves the embedded assets from the given prefix.
func StaticAssetsHandler(prefix string) http.Handler {
	if prefix == "" {
		prefix = DefaultStaticAssetsPath
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(StaticAssetsFS())))
}
