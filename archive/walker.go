// Package archive reads parts of zip based packages such as Word documents.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrPartTooLarge is returned by ReadParts for entries above the limit.
var ErrPartTooLarge = errors.New("archive entry is too large")

// WalkFunc is called for every file in the package visited by Walk. If an
// error is returned, processing stops.
type WalkFunc func(file *zip.File) error

// Walk calls walkFn for every file in the package which name starts with
// prefix, in the order files are stored. Package with unsafe entry names
// (absolute or containing "..") is rejected.
func Walk(name, prefix string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(name)
	if err != nil {
		if r != nil {
			// zip.ErrInsecurePath
			r.Close()
		}
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

// ReadParts loads content of every file under prefix, keyed by entry name.
// Entries larger than limit bytes (when limit > 0) are an error.
func ReadParts(name, prefix string, limit int64) (map[string][]byte, error) {
	parts := make(map[string][]byte)
	err := Walk(name, prefix, func(f *zip.File) error {
		if limit > 0 && f.UncompressedSize64 > uint64(limit) {
			return fmt.Errorf("%w: %s (%d bytes)", ErrPartTooLarge, f.Name, f.UncompressedSize64)
		}
		data, err := readFile(f, limit)
		if err != nil {
			return fmt.Errorf("unable to read %s: %w", f.Name, err)
		}
		parts[f.Name] = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parts, nil
}

func readFile(f *zip.File, limit int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if limit > 0 {
		// header could lie about size
		r = io.LimitReader(rc, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, ErrPartTooLarge
	}
	return data, nil
}

// isSafePath returns false for absolute paths and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
