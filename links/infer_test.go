package links

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestInferBaseURL(t *testing.T) {
	root := t.TempDir()
	pics := filepath.Join(root, "Team Pics", "2024")
	if err := os.MkdirAll(pics, 0755); err != nil {
		t.Fatal(err)
	}
	const baseRoot = "https://contoso.sharepoint.com/personal/me/Documents/"

	got, ok := InferBaseURL(pics, root, baseRoot)
	if !ok {
		t.Fatal("expected base URL to be inferred")
	}
	if want := baseRoot + "Team Pics/2024/"; got != want {
		t.Errorf("InferBaseURL() = %q, want %q", got, want)
	}

	// inferred base goes through the same normalization as typed one
	link, ok := BuildHyperlink(got, "My Pic.png")
	if !ok || link != "https://contoso.sharepoint.com/personal/me/Documents/Team%20Pics/2024/My%20Pic.png" {
		t.Errorf("BuildHyperlink() = %q, %v", link, ok)
	}

	got, ok = InferBaseURL(root, root, strings.TrimSuffix(baseRoot, "/"))
	if !ok || got != baseRoot {
		t.Errorf("InferBaseURL(root) = %q, %v", got, ok)
	}
}

func TestInferBaseURL_Outside(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	if _, ok := InferBaseURL(other, root, "https://x/"); ok {
		t.Error("folder outside of root must not be inferred")
	}
	if _, ok := InferBaseURL(root, "", "https://x/"); ok {
		t.Error("empty local root must not be inferred")
	}
	if _, ok := InferBaseURL(root, root, " "); ok {
		t.Error("empty base root must not be inferred")
	}
	// sibling with common prefix
	sibling := root + "-sibling"
	if err := os.Mkdir(sibling, 0755); err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(sibling)
	if _, ok := InferBaseURL(sibling, root, "https://x/"); ok {
		t.Error("sibling folder must not be inferred")
	}
}

func TestFileURI(t *testing.T) {
	dir := t.TempDir()
	got, err := FileURI(filepath.Join(dir, "My Pic.png"))
	if err != nil {
		t.Fatalf("FileURI() error = %v", err)
	}
	if !strings.HasPrefix(got, "file:///") {
		t.Errorf("FileURI() = %q, want file:/// prefix", got)
	}
	if !strings.HasSuffix(got, "/My%20Pic.png") {
		t.Errorf("FileURI() = %q, want escaped name", got)
	}
	if runtime.GOOS != "windows" && !strings.Contains(got, filepath.ToSlash(dir)) && !strings.Contains(got, strings.ReplaceAll(filepath.ToSlash(dir), " ", "%20")) {
		t.Errorf("FileURI() = %q does not contain %q", got, dir)
	}

	rel, err := FileURI("relative.png")
	if err != nil {
		t.Fatalf("FileURI() error = %v", err)
	}
	wd, _ := os.Getwd()
	want, _ := FileURI(filepath.Join(wd, "relative.png"))
	if rel != want {
		t.Errorf("FileURI(relative) = %q, want %q", rel, want)
	}
}
