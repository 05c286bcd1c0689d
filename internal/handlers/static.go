package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// HealthHandler reports liveness.
func (s *APIServer) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "ok"})
}

// StaticHandler serves the built client from StaticDir. Paths that do not name a file
// fall back to index.html so client-side routes resolve.
func (s *APIServer) StaticHandler() http.Handler {
	root := http.Dir(s.StaticDir)
	files := http.FileServer(root)
	index := filepath.Join(s.StaticDir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + r.URL.Path)
		if strings.HasPrefix(name, "/api/") {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		if f, err := root.Open(name); err == nil {
			st, statErr := f.Stat()
			f.Close()
			if statErr == nil && !st.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}
		if _, err := os.Stat(index); err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, index)
	})
}
