package server

import (
	"mime"
	"path/filepath"
	"strings"
	"testing"

	tu "github.com/desertthunder/lyrics-serve/internal/testing"
)

func TestNormalizeExtension(t *testing.T) {
	tc := map[string]string{
		".js":    ".js",
		"js":     ".js",
		" .LRC ": ".lrc",
		"":       "",
		".":      "",
	}

	for in, want := range tc {
		if got := NormalizeExtension(in); got != want {
			t.Errorf("NormalizeExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMIMETable(t *testing.T) {
	t.Run("overrides", func(t *testing.T) {
		table := NewMIMETable(nil)
		for ext, want := range map[string]string{
			".js":   "application/javascript",
			".css":  "text/css",
			".svg":  "image/svg+xml",
			".json": "application/json",
			".lrc":  "text/plain",
			".JS":   "application/javascript",
		} {
			if got := table.TypeByExtension(ext); got != want {
				t.Errorf("TypeByExtension(%q) = %q, want %q", ext, got, want)
			}
		}
	})

	t.Run("overrides beat platform defaults", func(t *testing.T) {
		if err := mime.AddExtensionType(".lrc", "application/x-lyrics"); err != nil {
			t.Fatalf("failed to register platform type: %v", err)
		}

		if got := NewMIMETable(nil).TypeByExtension(".lrc"); got != "text/plain" {
			t.Errorf("expected override text/plain, got %q", got)
		}
	})

	t.Run("falls back to platform defaults", func(t *testing.T) {
		table := NewMIMETable(nil)
		if got := table.TypeByExtension(".html"); !strings.HasPrefix(got, "text/html") {
			t.Errorf("expected text/html, got %q", got)
		}
		if got := table.TypeByExtension(".png"); got != "image/png" {
			t.Errorf("expected image/png, got %q", got)
		}
		if got := table.TypeByExtension(".definitely-unknown"); got != "" {
			t.Errorf("expected empty type, got %q", got)
		}
	})

	t.Run("extra mappings", func(t *testing.T) {
		table := NewMIMETable(map[string]string{
			"mp3":  "audio/mpeg",
			".LRC": "text/x-lrc",
			"":     "ignored/blank-ext",
			".ogg": "",
		})

		if got := table.TypeByExtension(".mp3"); got != "audio/mpeg" {
			t.Errorf("expected audio/mpeg, got %q", got)
		}
		if got := table.TypeByExtension(".lrc"); got != "text/x-lrc" {
			t.Errorf("configured mapping should replace built-in override, got %q", got)
		}
		if _, ok := table.Overrides()[""]; ok {
			t.Error("blank extension should be dropped")
		}
		if _, ok := table.Overrides()[".ogg"]; ok {
			t.Error("blank content type should be dropped")
		}
	})

	t.Run("Overrides returns a copy", func(t *testing.T) {
		table := NewMIMETable(nil)
		table.Overrides()[".js"] = "text/plain"

		if got := table.TypeByExtension(".js"); got != "application/javascript" {
			t.Errorf("table should be unchanged, got %q", got)
		}
	})

	t.Run("TypeOf sniffs unknown extensions", func(t *testing.T) {
		dir := t.TempDir()
		notes := tu.WriteFile(t, dir, "NOTES", "plain words for the player\n")
		cover := tu.WriteFile(t, dir, "cover", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

		table := NewMIMETable(nil)
		if got := table.TypeOf(notes); !strings.HasPrefix(got, "text/plain") {
			t.Errorf("expected text/plain for NOTES, got %q", got)
		}
		if got := table.TypeOf(cover); got != "image/png" {
			t.Errorf("expected image/png for cover, got %q", got)
		}
		if got := table.TypeOf(filepath.Join(dir, "song.lrc")); got != "text/plain" {
			t.Errorf("known extensions need no file, got %q", got)
		}
		if got := table.TypeOf(dir); got != "" {
			t.Errorf("directories are not sniffed, got %q", got)
		}
		if got := table.TypeOf(filepath.Join(dir, "missing")); got != "" {
			t.Errorf("missing files are not sniffed, got %q", got)
		}
		if got := table.withoutSniffing().TypeOf(notes); got != "" {
			t.Errorf("expected no type without sniffing, got %q", got)
		}
	})
}
