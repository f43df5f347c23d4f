package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const indexPage = "/index.html"

// StaticHandler serves files under a root directory with content types from a [MIMETable].
type StaticHandler struct {
	root  string
	files http.Handler
	types *MIMETable
}

// NewStaticHandler creates a handler for root. A nil types table uses the default overrides.
func NewStaticHandler(root string, types *MIMETable) *StaticHandler {
	if types == nil {
		types = NewMIMETable(nil)
	}
	return &StaticHandler{
		root:  root,
		files: http.FileServer(http.Dir(root)),
		types: types,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *StaticHandler) Routes() []string {
	return []string{"GET /"}
}

// ServeHTTP sets the content type for the requested file, then delegates to [http.FileServer].
//
// Index pages are answered in place; [http.FileServer] would redirect them to their directory.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := h.filePath(r.URL.Path)
	if ct := h.types.TypeOf(name); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if strings.HasSuffix(r.URL.Path, indexPage) && serveFile(w, r, name) {
		return
	}
	h.files.ServeHTTP(w, r)
}

// serveFile writes the regular file at name and reports whether it did.
func serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}

// filePath maps a request path onto the filesystem the same way [http.Dir] does.
func (h *StaticHandler) filePath(urlPath string) string {
	return filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+urlPath)))
}
