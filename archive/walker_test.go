package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func makeZip(t *testing.T, files map[string]string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fw, err := w.Create(k)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", k, err)
		}
		if _, err := fw.Write([]byte(files[k])); err != nil {
			t.Fatalf("Failed to write content for %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestWalk(t *testing.T) {
	name := makeZip(t, map[string]string{
		"[Content_Types].xml":          "types",
		"word/document.xml":            "document",
		"word/media/image1.png":        "png",
		"word/_rels/document.xml.rels": "rels",
		"docProps/core.xml":            "core",
	})

	tests := []struct {
		prefix string
		want   []string
	}{
		{"word/", []string{"word/_rels/document.xml.rels", "word/document.xml", "word/media/image1.png"}},
		{"word/media/", []string{"word/media/image1.png"}},
		{"", []string{"[Content_Types].xml", "docProps/core.xml", "word/_rels/document.xml.rels", "word/document.xml", "word/media/image1.png"}},
		{"customXml/", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			var visited []string
			err := Walk(name, tt.prefix, func(f *zip.File) error {
				visited = append(visited, f.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}

	t.Run("stops on error", func(t *testing.T) {
		stop := errors.New("stop")
		count := 0
		err := Walk(name, "", func(*zip.File) error {
			count++
			return stop
		})
		if !errors.Is(err, stop) || count != 1 {
			t.Errorf("Walk() = %v after %d files", err, count)
		}
	})
}

func TestWalk_Errors(t *testing.T) {
	if err := Walk(filepath.Join(t.TempDir(), "missing.zip"), "", func(*zip.File) error { return nil }); err == nil {
		t.Error("missing archive must fail")
	}

	notZip := filepath.Join(t.TempDir(), "plain.docx")
	if err := os.WriteFile(notZip, []byte("not a zip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(notZip, "", func(*zip.File) error { return nil }); err == nil {
		t.Error("not a zip must fail")
	}

	unsafe := makeZip(t, map[string]string{"word/../../evil.xml": "x"})
	visited := 0
	if err := Walk(unsafe, "", func(*zip.File) error { visited++; return nil }); err == nil || visited != 0 {
		t.Errorf("Walk() error = %v after %d files, want unsafe path rejected", err, visited)
	}
}

func TestReadParts(t *testing.T) {
	name := makeZip(t, map[string]string{
		"word/document.xml":     "document",
		"word/media/image1.png": strings.Repeat("x", 100),
		"docProps/core.xml":     "core",
	})

	parts, err := ReadParts(name, "word/", 0)
	if err != nil {
		t.Fatalf("ReadParts() error = %v", err)
	}
	if len(parts) != 2 || string(parts["word/document.xml"]) != "document" {
		t.Errorf("ReadParts() = %v", parts)
	}

	if _, err := ReadParts(name, "word/", 50); !errors.Is(err, ErrPartTooLarge) {
		t.Errorf("ReadParts() error = %v, want ErrPartTooLarge", err)
	}
	if parts, err := ReadParts(name, "docProps/", 50); err != nil || len(parts) != 1 {
		t.Errorf("ReadParts() = %v, %v", parts, err)
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"word/document.xml", true},
		{"[Content_Types].xml", true},
		{"a..b/c", true},
		{"/etc/passwd", false},
		{`\windows\system32`, false},
		{"../x", false},
		{"word/../../x", false},
		{`word\..\x`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
