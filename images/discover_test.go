package images

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"imglink/config"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func baseNames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	return out
}

func TestDiscover_FiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.png", "b.txt", "C.JPG"} {
		touch(t, filepath.Join(dir, n))
	}

	got, err := Discover(dir, config.DiscoveryOrderName)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{"a.png", "C.JPG"}
	if !slices.Equal(baseNames(got), want) {
		t.Errorf("Discover() = %v, want %v", baseNames(got), want)
	}
	for _, p := range got {
		if filepath.Dir(p) != dir {
			t.Errorf("path %q is not inside %q", p, dir)
		}
	}
}

func TestDiscover_AllExtensions(t *testing.T) {
	dir := t.TempDir()
	names := []string{"1.png", "2.jpg", "3.jpeg", "4.bmp", "5.gif", "6.tif", "7.TIFF", "8.webp", "9.svg", "noext"}
	for _, n := range names {
		touch(t, filepath.Join(dir, n))
	}
	got, err := Discover(dir, config.DiscoveryOrderName)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	want := []string{"1.png", "2.jpg", "3.jpeg", "4.bmp", "5.gif", "6.tif", "7.TIFF"}
	if !slices.Equal(baseNames(got), want) {
		t.Errorf("Discover() = %v, want %v", baseNames(got), want)
	}
}

func TestDiscover_NonRecursiveAndDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "folder.png"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "sub", "nested.png"))
	touch(t, filepath.Join(dir, "top.png"))

	got, err := Discover(dir, config.DiscoveryOrderName)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if !slices.Equal(baseNames(got), []string{"top.png"}) {
		t.Errorf("Discover() = %v", baseNames(got))
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "real.png"))
	if err := os.Symlink(filepath.Join(dir, "real.png"), filepath.Join(dir, "link.png")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "missing.png"), filepath.Join(dir, "dangling.png")); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "d"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(dir, "d"), filepath.Join(dir, "dir.png")); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(dir, config.DiscoveryOrderName)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if !slices.Equal(baseNames(got), []string{"link.png", "real.png"}) {
		t.Errorf("Discover() = %v", baseNames(got))
	}
}

func TestDiscover_Empty(t *testing.T) {
	got, err := Discover(t.TempDir(), config.DiscoveryOrderName)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Discover() = %v, want empty", got)
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), config.DiscoveryOrderName); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSortByName(t *testing.T) {
	tests := []struct {
		name  string
		order config.DiscoveryOrder
		in    []string
		want  []string
	}{
		{
			name:  "case insensitive",
			order: config.DiscoveryOrderName,
			in:    []string{"b.png", "A.png", "a.png", "C.png"},
			want:  []string{"A.png", "a.png", "b.png", "C.png"},
		},
		{
			name:  "lexical numbers",
			order: config.DiscoveryOrderName,
			in:    []string{"img10.png", "img2.png", "img1.png"},
			want:  []string{"img1.png", "img10.png", "img2.png"},
		},
		{
			name:  "natural numbers",
			order: config.DiscoveryOrderNatural,
			in:    []string{"img10.png", "IMG2.png", "img1.png"},
			want:  []string{"img1.png", "IMG2.png", "img10.png"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := slices.Clone(tt.in)
			SortByName(in, tt.order)
			if !slices.Equal(in, tt.want) {
				t.Errorf("SortByName() = %v, want %v", in, tt.want)
			}
		})
	}
}
