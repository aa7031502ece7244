// Package selection keeps per-image "include in document" flags for the
// current folder.
package selection

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// Set is ordered list of items with a boolean flag per item. Order never
// changes after Reset and selected count is kept in sync with flags.
// Not safe for concurrent use.
type Set struct {
	items   []string
	checked []bool
	count   int
}

// New returns set with nothing checked.
func New(items []string) *Set {
	s := &Set{}
	s.Reset(items)
	return s
}

// Reset replaces items, everything becomes unchecked.
func (s *Set) Reset(items []string) {
	s.items = append([]string(nil), items...)
	s.checked = make([]bool, len(items))
	s.count = 0
}

func (s *Set) Len() int {
	return len(s.items)
}

func (s *Set) Count() int {
	return s.count
}

// Items returns all items in original order.
func (s *Set) Items() []string {
	return append([]string(nil), s.items...)
}

func (s *Set) Checked(i int) bool {
	if i < 0 || i >= len(s.items) {
		return false
	}
	return s.checked[i]
}

// Set changes flag of item i.
func (s *Set) Set(i int, on bool) error {
	if i < 0 || i >= len(s.items) {
		return fmt.Errorf("no item %d, have %d", i+1, len(s.items))
	}
	if s.checked[i] == on {
		return nil
	}
	s.checked[i] = on
	if on {
		s.count++
	} else {
		s.count--
	}
	return nil
}

// Toggle flips flag of item i and returns its new state.
func (s *Set) Toggle(i int) (bool, error) {
	if i < 0 || i >= len(s.items) {
		return false, fmt.Errorf("no item %d, have %d", i+1, len(s.items))
	}
	on := !s.checked[i]
	return on, s.Set(i, on)
}

func (s *Set) SelectAll() {
	s.setAll(true)
}

func (s *Set) Clear() {
	s.setAll(false)
}

func (s *Set) setAll(on bool) {
	for i := range s.checked {
		s.checked[i] = on
	}
	if on {
		s.count = len(s.items)
	} else {
		s.count = 0
	}
}

// SelectMatching checks only items whose file names match any of shell
// patterns (case is ignored), everything else is unchecked. Number of
// selected items is returned.
func (s *Set) SelectMatching(patterns []string) (int, error) {
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if len(p) == 0 {
			continue
		}
		if _, err := path.Match(p, ""); err != nil {
			return s.count, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		lowered = append(lowered, p)
	}

	s.count = 0
	for i, item := range s.items {
		name := strings.ToLower(filepath.Base(item))
		s.checked[i] = false
		for _, p := range lowered {
			if ok, _ := path.Match(p, name); ok {
				s.checked[i] = true
				s.count++
				break
			}
		}
	}
	return s.count, nil
}

// Selected returns checked items in original order.
func (s *Set) Selected() []string {
	out := make([]string, 0, s.count)
	for i, item := range s.items {
		if s.checked[i] {
			out = append(out, item)
		}
	}
	return out
}
