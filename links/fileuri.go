package links

import (
	"net/url"
	"path/filepath"
	"strings"
)

// FileURI returns file:// URL for absolute form of path.
func FileURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		// drive letter
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}
