// Package webui serves the touchpad web app. The assets are embedded in the
// binary so the server is a single file; an on-disk directory can override
// them for frontend work.
package webui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed public
var publicFS embed.FS

// Handler returns the static file handler. When dir is non-empty it serves
// that directory instead of the embedded copy.
func Handler(dir string) http.Handler {
	if dir != "" {
		return http.FileServer(http.Dir(dir))
	}
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		// The embedded tree always contains public/; this is unreachable
		// short of a broken build.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
