package server

import (
	"maps"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultOverrides are the content types the lyrics player needs regardless of the platform's mime table.
var DefaultOverrides = map[string]string{
	".js":   "application/javascript",
	".css":  "text/css",
	".svg":  "image/svg+xml",
	".json": "application/json",
	".lrc":  "text/plain",
}

// MIMETable resolves a content type for a file.
//
// Lookup order: overrides, then [mime.TypeByExtension], then content sniffing of the file itself.
// A table is read-only once built and safe for concurrent use.
type MIMETable struct {
	overrides map[string]string
	sniff     bool
}

// NewMIMETable merges extra on top of [DefaultOverrides]. Extension keys are normalized with [NormalizeExtension].
func NewMIMETable(extra map[string]string) *MIMETable {
	overrides := make(map[string]string, len(DefaultOverrides)+len(extra))
	for ext, ct := range DefaultOverrides {
		overrides[ext] = ct
	}
	for ext, ct := range extra {
		if ext = NormalizeExtension(ext); ext != "" && ct != "" {
			overrides[ext] = ct
		}
	}
	return &MIMETable{overrides: overrides, sniff: true}
}

// withoutSniffing returns a copy of t that never reads file contents.
func (t *MIMETable) withoutSniffing() *MIMETable {
	return &MIMETable{overrides: t.overrides, sniff: false}
}

// NormalizeExtension lower-cases ext and ensures a leading dot. Blank input yields "".
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// TypeByExtension returns the content type for ext, or "" when neither the overrides nor the platform know it.
func (t *MIMETable) TypeByExtension(ext string) string {
	ext = NormalizeExtension(ext)
	if ext == "" {
		return ""
	}
	if ct, ok := t.overrides[ext]; ok {
		return ct
	}
	return mime.TypeByExtension(ext)
}

// TypeOf returns the content type for the file at path.
//
// Regular files with an unknown extension are sniffed. Returns "" when nothing matches, leaving the decision to
// [http.FileServer].
func (t *MIMETable) TypeOf(path string) string {
	if ct := t.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	if !t.sniff {
		return ""
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return mtype.String()
}

// Overrides returns a copy of the extension overrides.
func (t *MIMETable) Overrides() map[string]string {
	return maps.Clone(t.overrides)
}
