package links

import (
	"net/url"
	"path"
	"strings"
	"testing"
)

func TestBuildHyperlink(t *testing.T) {
	tests := []struct {
		name, base, file, want string
	}{
		{"spaces", "https://example.com/docs", "My Pic.png", "https://example.com/docs/My%20Pic.png"},
		{"trailing slash", "https://example.com/docs/", "a.png", "https://example.com/docs/a.png"},
		{"many trailing slashes", "https://example.com/docs///", "a.png", "https://example.com/docs/a.png"},
		{"host only", "https://example.com", "a.png", "https://example.com/a.png"},
		{"surrounding spaces", "  https://example.com/docs  ", "a.png", "https://example.com/docs/a.png"},
		{"encoded base kept", "https://example.com/My%20Docs/", "b c.jpg", "https://example.com/My%20Docs/b%20c.jpg"},
		{"unencoded base", "https://example.com/My Docs", "a.png", "https://example.com/My%20Docs/a.png"},
		{"backslashes", `https://example.com/a\b\`, "a.png", "https://example.com/a/b/a.png"},
		{"query and fragment dropped", "https://example.com/docs?x=1#frag", "a.png", "https://example.com/docs/a.png"},
		{"stray percent", "https://example.com/100%/pics", "a.png", "https://example.com/100%25/pics/a.png"},
		{"stray and encoded percent", "https://example.com/50%25/100%/x", "a.png", "https://example.com/50%25/100%25/x/a.png"},
		{"trailing percent", "https://example.com/p%", "a.png", "https://example.com/p%25/a.png"},
		{"reserved", "https://example.com/d", "a#1?b%.png", "https://example.com/d/a%231%3Fb%25.png"},
		{"sharepoint", "https://contoso.sharepoint.com/personal/me/Documents/Pics", "IMG 0001.JPG",
			"https://contoso.sharepoint.com/personal/me/Documents/Pics/IMG%200001.JPG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BuildHyperlink(tt.base, tt.file)
			if !ok {
				t.Fatalf("BuildHyperlink(%q, %q) returned no link", tt.base, tt.file)
			}
			if got != tt.want {
				t.Errorf("BuildHyperlink(%q, %q) = %q, want %q", tt.base, tt.file, got, tt.want)
			}
		})
	}
}

func TestBuildHyperlink_Invalid(t *testing.T) {
	for _, base := range []string{"", "   ", "example.com/docs", "/local/path", "https://", "mailto:me@example.com", "::not a url"} {
		if got, ok := BuildHyperlink(base, "a.png"); ok || got != "" {
			t.Errorf("BuildHyperlink(%q) = %q, %v; want no link", base, got, ok)
		}
	}
}

func TestBuildHyperlink_RoundTrip(t *testing.T) {
	names := []string{"plain.png", "My Pic.png", "100% done.jpg", "a&b=c.gif", "ümlaut ß.png", "semi;colon,comma.tif", "hash#tag.bmp", "q?.png", "plus+sign.png"}
	for _, name := range names {
		link, ok := BuildHyperlink("https://example.com/base dir/", name)
		if !ok {
			t.Fatalf("no link for %q", name)
		}
		u, err := url.Parse(link)
		if err != nil {
			t.Fatalf("link %q does not parse: %v", link, err)
		}
		if u.RawQuery != "" || u.Fragment != "" {
			t.Errorf("link %q leaked query or fragment", link)
		}
		segment := link[strings.LastIndex(link, "/")+1:]
		if strings.ContainsAny(segment, " ?#") {
			t.Errorf("segment %q is not escaped", segment)
		}
		decoded, err := url.PathUnescape(segment)
		if err != nil {
			t.Fatalf("segment %q does not unescape: %v", segment, err)
		}
		if decoded != name {
			t.Errorf("decoded %q, want %q", decoded, name)
		}
		if path.Base(u.Path) != name {
			t.Errorf("url path base = %q, want %q", path.Base(u.Path), name)
		}
	}
}

func TestBaseURL_Resolve(t *testing.T) {
	b := NewBaseURL("https://example.com/docs")
	if !b.Valid() {
		t.Fatal("expected valid base")
	}
	if b.String() != "https://example.com/docs/" {
		t.Errorf("String() = %q", b.String())
	}
	got, ok := b.Resolve("/some/dir/My Pic.png")
	if !ok || got != "https://example.com/docs/My%20Pic.png" {
		t.Errorf("Resolve() = %q, %v", got, ok)
	}

	empty := NewBaseURL("")
	if empty.Valid() {
		t.Error("empty base must be invalid")
	}
	if got, ok := empty.Resolve("/some/dir/a.png"); ok || got != "" {
		t.Errorf("Resolve() with empty base = %q, %v", got, ok)
	}
}
