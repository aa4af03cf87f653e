package server

import (
	"io/fs"
	"net/http"
	"strings"
)

// uiFS holds the embedded web UI filesystem. Set via SetUI before creating
// the server.
var uiFS fs.FS

// SetUI sets the embedded filesystem for serving the web page.
func SetUI(fsys fs.FS) {
	uiFS = fsys
}

// spaHandler serves static files from the embedded FS, falling back to
// index.html for unknown paths.
func spaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if uiFS == nil {
			http.Error(w, "UI not embedded", http.StatusNotFound)
			return
		}

		path := strings.TrimPrefix(r.URL.Path, "/")
		if path == "" {
			path = "index.html"
		}

		f, err := uiFS.Open(path)
		if err != nil {
			path = "index.html"
		} else {
			f.Close()
		}

		// Equivalent of http.ServeFileFS, which requires Go 1.22.
		file, err := http.FS(uiFS).Open("/" + path)
		if err != nil {
			http.Error(w, "404 page not found", http.StatusNotFound)
			return
		}
		defer file.Close()
		info, err := file.Stat()
		if err != nil {
			http.Error(w, "500 internal server error", http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), file)
	}
}
