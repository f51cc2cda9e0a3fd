package url

import (
	"strconv"
	"strings"
)

// specialSchemePorts holds the default port for each special scheme; a
// port equal to this value is elided on parse (never stored explicitly).
var specialSchemePorts = map[string]int{
	"ftp":   21,
	"file":  -1, // file has no default port at all
	"http":  80,
	"https": 443,
	"ws":    80,
	"wss":   443,
}

// isSpecialScheme reports whether scheme is one of the WHATWG "special"
// schemes, which get authority + segment-list path handling.
func isSpecialScheme(scheme string) bool {
	_, ok := specialSchemePorts[scheme]
	return ok
}

// Path is either an opaque string (cannot-be-a-base-URL path) or an
// ordered list of segments.
type Path struct {
	opaque   string
	segments []string
	isOpaque bool
}

// OpaquePath builds a Path holding a single opaque string.
func OpaquePath(s string) Path {
	return Path{opaque: s, isOpaque: true}
}

// ListPath builds a Path holding an ordered segment list.
func ListPath(segments []string) Path {
	return Path{segments: segments}
}

// IsOpaque reports whether this path is an opaque string rather than a
// segment list.
func (p Path) IsOpaque() bool {
	return p.isOpaque
}

// Opaque returns the opaque string payload; only meaningful if IsOpaque().
func (p Path) Opaque() string {
	return p.opaque
}

// Segments returns the ordered path segments; only meaningful if
// !IsOpaque().
func (p Path) Segments() []string {
	return p.segments
}

// String renders the path the way it appears in a serialized URL: an
// opaque path renders verbatim, a segment list is joined with "/" and
// carries a leading slash whenever it has any segments.
func (p Path) String() string {
	if p.isOpaque {
		return p.opaque
	}
	if len(p.segments) == 0 {
		return ""
	}
	return "/" + strings.Join(p.segments, "/")
}

// shorten pops the last path segment, with one exception: for the file
// scheme, when the path has exactly one segment that is a normalized
// Windows drive letter (e.g. "c:"), popping is a no-op.
func (p *Path) shorten(scheme string) {
	if p.isOpaque || len(p.segments) == 0 {
		return
	}
	if scheme == "file" && len(p.segments) == 1 && isNormalizedWindowsDriveLetter(p.segments[0]) {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

func isNormalizedWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && s[1] == ':'
}

func isWindowsDriveLetter(s string) bool {
	return len(s) == 2 && isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

// Url is the in-memory representation of a parsed, valid URL.
type Url struct {
	scheme   string
	host     *string // nil = not present; "" = present but empty (e.g. file://)
	port     *int
	path     Path
	query    *string
	fragment *string
}

// New returns an empty Url record with no components set.
func New() Url {
	return Url{}
}

// Scheme returns the URL's lowercase ASCII scheme.
func (u Url) Scheme() string { return u.scheme }

// Host returns the URL's host and whether it is present.
func (u Url) Host() (string, bool) {
	if u.host == nil {
		return "", false
	}
	return *u.host, true
}

// Port returns the URL's non-default port and whether it is present.
func (u Url) Port() (int, bool) {
	if u.port == nil {
		return 0, false
	}
	return *u.port, true
}

// Path returns the URL's path, opaque or segment-list.
func (u Url) Path() Path { return u.path }

// Query returns the URL's query string and whether it is present.
func (u Url) Query() (string, bool) {
	if u.query == nil {
		return "", false
	}
	return *u.query, true
}

// Fragment returns the URL's fragment and whether it is present.
func (u Url) Fragment() (string, bool) {
	if u.fragment == nil {
		return "", false
	}
	return *u.fragment, true
}

// IsSpecial reports whether this URL's scheme is one of the special
// schemes {ftp, file, http, https, ws, wss}.
func (u Url) IsSpecial() bool {
	return isSpecialScheme(u.scheme)
}

// HasOpaquePath reports whether this URL's path is an opaque string.
func (u Url) HasOpaquePath() bool {
	return u.path.IsOpaque()
}

// String formats the URL as scheme://host[:port]/path[#fragment][?query].
//
// Fragment is emitted before query, not after: see the Display() order
// Open Question in DESIGN.md for why this order was chosen.
func (u Url) String() string {
	var b strings.Builder
	b.WriteString(u.scheme)
	b.WriteByte(':')
	if u.host != nil {
		b.WriteString("//")
		b.WriteString(*u.host)
		if u.port != nil {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(*u.port))
		}
	} else if u.path.IsOpaque() {
		// opaque path renders directly after the colon, no authority slashes
	}
	b.WriteString(u.path.String())
	if u.fragment != nil {
		b.WriteByte('#')
		b.WriteString(*u.fragment)
	}
	if u.query != nil {
		b.WriteByte('?')
		b.WriteString(*u.query)
	}
	return b.String()
}
