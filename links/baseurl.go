package links

import (
	"net/url"
	"strings"
)

// BaseURL composes hyperlinks by appending escaped file name to the base.
type BaseURL struct {
	base string
}

// NewBaseURL validates and normalizes base. Base without scheme or host
// results in resolver which never produces links.
func NewBaseURL(raw string) *BaseURL {
	base, _ := normalizeBase(raw)
	return &BaseURL{base: base}
}

// Valid reports whether base URL is usable.
func (b *BaseURL) Valid() bool {
	return len(b.base) > 0
}

// String returns normalized base, always ending with a single slash.
func (b *BaseURL) String() string {
	return b.base
}

func (b *BaseURL) Resolve(path string) (string, bool) {
	if !b.Valid() {
		return "", false
	}
	return b.base + url.PathEscape(fileName(path)), true
}

// BuildHyperlink combines base URL and file name.
func BuildHyperlink(base, name string) (string, bool) {
	return NewBaseURL(base).Resolve(name)
}

// normalizeBase drops query and fragment, converts backslashes, keeps
// existing escaping of the path and makes sure there is exactly one trailing
// separator.
func normalizeBase(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	u, err := url.Parse(escapeStrayPercent(raw))
	if err != nil || len(u.Scheme) == 0 || len(u.Host) == 0 {
		return "", false
	}

	u.Path = strings.TrimRight(strings.ReplaceAll(u.Path, `\`, "/"), "/")
	u.RawPath = strings.TrimRight(strings.ReplaceAll(u.RawPath, `\`, "/"), "/")
	u.RawQuery, u.ForceQuery = "", false
	u.Fragment, u.RawFragment = "", ""

	return u.String() + "/", true
}

// escapeStrayPercent encodes '%' which does not start a valid escape sequence
// leaving proper sequences alone.
func escapeStrayPercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && (i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2])) {
			b.WriteString("%25")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}
