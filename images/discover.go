// Package images finds image files in a folder and prepares them for
// embedding.
package images

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"imglink/config"
)

var supportedExt = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".bmp":  {},
	".gif":  {},
	".tif":  {},
	".tiff": {},
}

// IsSupported reports whether file name has one of the supported image
// extensions, case is ignored.
func IsSupported(name string) bool {
	_, ok := supportedExt[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Discover returns paths of image files located directly in dir. It does not
// recurse, directories, symbolic links to anything but regular files and
// files with unknown extensions are silently skipped.
func Discover(dir string, order config.DiscoveryOrder) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list directory (%s): %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if !IsSupported(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch {
		case e.Type().IsRegular():
		case e.Type()&os.ModeSymlink != 0:
			fi, err := os.Stat(path)
			if err != nil || !fi.Mode().IsRegular() {
				continue
			}
		default:
			continue
		}
		paths = append(paths, path)
	}
	SortByName(paths, order)
	return paths, nil
}

// SortByName sorts paths by base file name ignoring case. Equal names (which
// only differ in case) are ordered by exact name so the result is stable.
func SortByName(paths []string, order config.DiscoveryOrder) {
	slices.SortFunc(paths, func(a, b string) int {
		na, nb := filepath.Base(a), filepath.Base(b)
		la, lb := strings.ToLower(na), strings.ToLower(nb)
		if la != lb {
			if order == config.DiscoveryOrderNatural {
				if natural.Less(la, lb) {
					return -1
				}
				if natural.Less(lb, la) {
					return 1
				}
			}
			return strings.Compare(la, lb)
		}
		return strings.Compare(na, nb)
	})
}
