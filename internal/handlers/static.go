package handlers

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"go.uber.org/zap"
)

// AdminPage serves the admin bundle entry point.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	h.serveStaticFile(w, r, "admin.html")
}

// Frontend serves files from the static directory and falls back to the
// front-end entry point for any other GET, so client-side routes resolve.
func (h *Handler) Frontend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		respondError(w, http.StatusNotFound, "Not found")
		return
	}
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name != "" && h.serveStaticFile(w, r, name) {
		return
	}
	h.serveStaticFile(w, r, "index.html")
}

// serveStaticFile writes name from the static directory. When the file is
// absent it returns false for any name but the entry points, which get a
// 404 instead.
func (h *Handler) serveStaticFile(w http.ResponseWriter, r *http.Request, name string) bool {
	root := http.Dir(h.cfg.StaticDir)
	file, err := root.Open("/" + name)
	if err == nil {
		defer file.Close()
		info, statErr := file.Stat()
		if statErr == nil && !info.IsDir() {
			http.ServeContent(w, r, info.Name(), info.ModTime(), file)
			return true
		}
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		h.logger.Warn("open static file failed", zap.String("name", name), zap.Error(err))
	}
	if name == "index.html" || name == "admin.html" {
		respondError(w, http.StatusNotFound, "Not found")
		return true
	}
	return false
}
