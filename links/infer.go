package links

import (
	"path/filepath"
	"strings"
)

// InferBaseURL synthesizes base URL for a folder located under local root of
// cloud storage synchronization (OneDrive and alike). Relative folder path is
// appended to base root. False is returned when folder is outside of local
// root or roots are not configured.
func InferBaseURL(folder, localRoot, baseRoot string) (string, bool) {
	if len(strings.TrimSpace(localRoot)) == 0 || len(strings.TrimSpace(baseRoot)) == 0 {
		return "", false
	}

	folder, err := canonical(folder)
	if err != nil {
		return "", false
	}
	root, err := canonical(localRoot)
	if err != nil {
		return "", false
	}

	rel, err := filepath.Rel(root, folder)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	out := strings.TrimRight(strings.TrimSpace(baseRoot), "/") + "/"
	if rel != "." {
		out += filepath.ToSlash(rel) + "/"
	}
	return out, true
}

func canonical(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
