package links

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MappingFileName is preferred name of mapping file in the image folder.
const MappingFileName = "links.csv"

const mappingFilePattern = "*links*.csv"

// Mapping resolves file names through a table loaded from CSV, unmapped files
// get local file URIs.
type Mapping struct {
	links map[string]string
}

// NewMapping wraps loaded table, nil is the same as empty table.
func NewMapping(links map[string]string) *Mapping {
	if links == nil {
		links = map[string]string{}
	}
	return &Mapping{links: links}
}

// Len returns number of mapped file names.
func (m *Mapping) Len() int {
	return len(m.links)
}

func (m *Mapping) Resolve(p string) (string, bool) {
	if u, ok := m.links[fileName(p)]; ok {
		return u, true
	}
	u, err := FileURI(p)
	if err != nil {
		return "", false
	}
	return u, true
}

// FindMappingFile looks for mapping file directly in dir. File named exactly
// links.csv wins, otherwise first (by name) file which name matches
// *links*.csv ignoring case is selected. Empty string is returned when
// nothing was found.
func FindMappingFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if e.Name() == MappingFileName {
			return filepath.Join(dir, e.Name())
		}
		if ok, _ := path.Match(mappingFilePattern, strings.ToLower(e.Name())); ok {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	slices.Sort(candidates)
	return filepath.Join(dir, candidates[0])
}

// LoadMapping reads file name to URL table from CSV file. Header row must have
// "filename" and "url" columns (case is ignored), other columns are ignored,
// for duplicate file names last row wins. Problems with the file are never
// errors: empty table is returned and status explains what happened.
func LoadMapping(name string) (map[string]string, string) {
	base := filepath.Base(name)

	f, err := os.Open(name)
	if err != nil {
		return map[string]string{}, fmt.Sprintf("Unable to open %s (%v); falling back to file paths.", base, err)
	}
	defer f.Close()

	links, err := readMapping(f)
	if errors.Is(err, errNoColumns) {
		return map[string]string{}, fmt.Sprintf("%s must have 'filename' and 'url' columns; falling back to file paths.", base)
	}
	if err != nil {
		return map[string]string{}, fmt.Sprintf("Unable to read %s (%v); falling back to file paths.", base, err)
	}
	return links, fmt.Sprintf("Loaded %d links from %s.", len(links), base)
}

var errNoColumns = errors.New("required columns are missing")

func readMapping(r io.Reader) (map[string]string, error) {
	// UTF-8 with or without BOM
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errNoColumns
	}
	if err != nil {
		return nil, err
	}

	nameIdx, urlIdx := -1, -1
	for i, h := range header {
		switch {
		case strings.EqualFold(strings.TrimSpace(h), "filename") && nameIdx < 0:
			nameIdx = i
		case strings.EqualFold(strings.TrimSpace(h), "url") && urlIdx < 0:
			urlIdx = i
		}
	}
	if nameIdx < 0 || urlIdx < 0 {
		return nil, errNoColumns
	}

	links := make(map[string]string)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) <= max(nameIdx, urlIdx) {
			continue
		}
		name, link := strings.TrimSpace(rec[nameIdx]), strings.TrimSpace(rec[urlIdx])
		if len(name) == 0 || len(link) == 0 {
			continue
		}
		links[name] = link
	}
	return links, nil
}
