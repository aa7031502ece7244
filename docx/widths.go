package docx

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrUnsupportedWidth is returned when requested display width is not in the
// width table.
var ErrUnsupportedWidth = errors.New("unsupported display width")

// display width in inches -> target pixel width of embedded image
var widthTable = map[float64]int{
	2.0:  600,
	2.25: 750,
	2.5:  900,
}

// Widths returns supported display widths in ascending order.
func Widths() []float64 {
	ws := make([]float64, 0, len(widthTable))
	for w := range widthTable {
		ws = append(ws, w)
	}
	slices.Sort(ws)
	return ws
}

// PixelsFor maps display width to the pixel width images are scaled down to.
func PixelsFor(inches float64) (int, bool) {
	px, ok := widthTable[inches]
	return px, ok
}

// FormatWidth returns width the way it is presented to the user.
func FormatWidth(inches float64) string {
	return strconv.FormatFloat(inches, 'f', -1, 64)
}

// ParseWidth accepts width as typed by the user, optional trailing inch mark
// included, and checks it against the width table.
func ParseWidth(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimSuffix(s, `"`), "in")
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("bad width %q: %w", s, err)
	}
	if _, ok := PixelsFor(w); !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedWidth, FormatWidth(w))
	}
	return w, nil
}
