// Package links turns image files into hyperlinks pointing to the original
// assets.
package links

import (
	"fmt"
	"path/filepath"

	"imglink/config"
)

// Resolver produces hyperlink for image file. When no hyperlink could be
// produced false is returned and image should be skipped, resolvers never
// fall back to bare file names.
type Resolver interface {
	Resolve(path string) (string, bool)
}

// New selects resolver for images located in folder. Returned status
// describes what was selected and is meant for the user.
func New(strategy config.LinkStrategy, baseURL, folder string) (Resolver, string) {
	switch strategy {
	case config.LinkStrategyMapping:
		name := FindMappingFile(folder)
		if len(name) == 0 {
			return NewMapping(nil), "No links mapping found; falling back to file paths."
		}
		m, status := LoadMapping(name)
		return NewMapping(m), status
	default:
		b := NewBaseURL(baseURL)
		if !b.Valid() {
			return b, "No valid base URL; provide one to create hyperlinks."
		}
		return b, fmt.Sprintf("Linking to %s", b)
	}
}

// fileName is what resolvers look at.
func fileName(path string) string {
	return filepath.Base(path)
}
