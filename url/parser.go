package url

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/corebrowser/maybe"
	"github.com/npillmayer/corebrowser/result"
)

// state is a parser state, one of the WHATWG URL state-machine states.
type state int

const (
	stateSchemeStart state = iota
	stateScheme
	stateNoScheme
	stateFile
	stateSpecialRelativeOrAuthority
	stateSpecialAuthoritySlashes
	statePathOrAuthority
	stateOpaquePath
	stateFragment
	stateRelative
	stateSpecialAuthorityIgnoreSlashes
	stateAuthority
	statePath
	stateRelativeSlash
	stateQuery
	stateHost
	stateHostname
	stateFileHost
	statePort
	statePathStart
	stateFileSlash
)

// eof is the end-of-input sentinel, distinct from any legal code point.
const eof rune = -1

// ParseError is returned when a URL fails hard validation.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string { return e.msg }

func fail(format string, args ...interface{}) result.Result[Url] {
	err := &ParseError{msg: fmt.Sprintf(format, args...)}
	tracer().Debugf("url parse error: %s", err.msg)
	return result.Err[Url](err)
}

// Parse parses input against an optional base Url, following the WHATWG
// URL state machine. Returns a Result wrapping the parsed Url, or an
// error on hard validation failure.
func Parse(input string, base maybe.Maybe[Url]) result.Result[Url] {
	p := newParser(input, base)
	return p.run()
}

type parser struct {
	input []rune
	pos   int
	state state
	url   Url
	base  *Url

	buffer            strings.Builder
	atFlag            bool // seen '@' while in Authority state
	passwordTokenSeen bool
	pathEntered       bool // at least one real path separator has been consumed
}

func newParser(input string, base maybe.Maybe[Url]) *parser {
	input = trimC0AndSpace(input)
	input = stripTabsAndNewlines(input)
	p := &parser{
		input: []rune(input),
		state: stateSchemeStart,
	}
	var b Url
	switch m := base.Match(); m {
	case m.Just(&b):
		p.base = &b
	case m.Nothing():
	}
	return p
}

func trimC0AndSpace(s string) string {
	isC0OrSpace := func(r rune) bool { return r <= 0x20 }
	runes := []rune(s)
	i, j := 0, len(runes)
	for i < j && isC0OrSpace(runes[i]) {
		i++
	}
	for j > i && isC0OrSpace(runes[j-1]) {
		j--
	}
	return string(runes[i:j])
}

func stripTabsAndNewlines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\t' || r == '\r' || r == '\n' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (p *parser) peek(offset int) rune {
	i := p.pos + offset
	if i < 0 || i >= len(p.input) {
		return eof
	}
	return p.input[i]
}

func (p *parser) c() rune { return p.peek(0) }

func (p *parser) remaining() string {
	if p.pos+1 >= len(p.input) {
		return ""
	}
	return string(p.input[p.pos+1:])
}

func (p *parser) remainingFrom(i int) string {
	if i >= len(p.input) {
		return ""
	}
	return string(p.input[i:])
}

// run drives the state machine to completion or failure.
func (p *parser) run() result.Result[Url] {
	for {
		r, errRes := p.step()
		if errRes != nil {
			return *errRes
		}
		if r == stepDone {
			return result.Ok(p.url)
		}
	}
}

type stepResult int

const (
	stepContinue stepResult = iota
	stepDone
)

func (p *parser) step() (stepResult, *result.Result[Url]) {
	c := p.c()
	switch p.state {
	case stateSchemeStart:
		return p.schemeStart(c)
	case stateScheme:
		return p.scheme(c)
	case stateNoScheme:
		return p.noScheme(c)
	case stateSpecialRelativeOrAuthority:
		return p.specialRelativeOrAuthority(c)
	case statePathOrAuthority:
		return p.pathOrAuthority(c)
	case stateRelative:
		return p.relative(c)
	case stateRelativeSlash:
		return p.relativeSlash(c)
	case stateSpecialAuthoritySlashes:
		return p.specialAuthoritySlashes(c)
	case stateSpecialAuthorityIgnoreSlashes:
		return p.specialAuthorityIgnoreSlashes(c)
	case stateAuthority:
		return p.authority(c)
	case stateHost, stateHostname:
		return p.host(c)
	case statePort:
		return p.port(c)
	case stateFile:
		return p.file(c)
	case stateFileSlash:
		return p.fileSlash(c)
	case stateFileHost:
		return p.fileHost(c)
	case statePathStart:
		return p.pathStart(c)
	case statePath:
		return p.path(c)
	case stateOpaquePath:
		return p.opaquePath(c)
	case stateQuery:
		return p.query(c)
	case stateFragment:
		return p.fragment(c)
	}
	panic("unreachable parser state")
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIAlphanumeric(r rune) bool {
	return isASCIIAlpha(r) || (r >= '0' && r <= '9')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// --- SchemeStart --------------------------------------------------------

func (p *parser) schemeStart(c rune) (stepResult, *result.Result[Url]) {
	if isASCIIAlpha(c) {
		p.buffer.WriteRune(toLower(c))
		p.state = stateScheme
		p.pos++
		return stepContinue, nil
	}
	p.state = stateNoScheme
	return stepContinue, nil
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 32
	}
	return r
}

// --- Scheme ---------------------------------------------------------------

func (p *parser) scheme(c rune) (stepResult, *result.Result[Url]) {
	if isASCIIAlphanumeric(c) || c == '+' || c == '-' || c == '.' {
		p.buffer.WriteRune(toLower(c))
		p.pos++
		return stepContinue, nil
	}
	if c == ':' {
		scheme := p.buffer.String()
		p.buffer.Reset()
		p.url.scheme = scheme
		rest := p.remaining()
		p.pos++ // consume ':'
		if scheme == "file" {
			p.state = stateFile
			return stepContinue, nil
		}
		if isSpecialScheme(scheme) {
			if p.base != nil && p.base.scheme == scheme && !strings.HasPrefix(rest, "//") {
				p.state = stateSpecialRelativeOrAuthority
			} else {
				p.state = stateSpecialAuthoritySlashes
			}
			return stepContinue, nil
		}
		if strings.HasPrefix(rest, "/") {
			p.state = statePathOrAuthority
			p.pos++ // consume the one slash
			return stepContinue, nil
		}
		p.url.path = OpaquePath("")
		p.state = stateOpaquePath
		return stepContinue, nil
	}
	// invalid scheme character: reset and try as relative URL
	p.buffer.Reset()
	p.pos = 0
	p.state = stateNoScheme
	return stepContinue, nil
}

// --- NoScheme ---------------------------------------------------------------

func (p *parser) noScheme(c rune) (stepResult, *result.Result[Url]) {
	if p.base == nil {
		res := fail("no scheme and no base URL")
		return stepDone, &res
	}
	if p.base.path.IsOpaque() {
		if c == '#' {
			p.url = *p.base
			p.url.fragment = nil
			p.state = stateFragment
			p.pos++
			return stepContinue, nil
		}
		res := fail("cannot-be-a-base-URL base with relative reference")
		return stepDone, &res
	}
	if p.base.scheme == "file" {
		p.state = stateFile
		return stepContinue, nil
	}
	p.state = stateRelative
	return stepContinue, nil
}

// --- SpecialRelativeOrAuthority --------------------------------------------

func (p *parser) specialRelativeOrAuthority(c rune) (stepResult, *result.Result[Url]) {
	if c == '/' && p.peek(1) == '/' {
		p.pos += 2
		p.state = stateSpecialAuthorityIgnoreSlashes
		return stepContinue, nil
	}
	p.state = stateRelative
	return stepContinue, nil
}

// --- PathOrAuthority --------------------------------------------------------

func (p *parser) pathOrAuthority(c rune) (stepResult, *result.Result[Url]) {
	if c == '/' {
		p.state = stateAuthority
		p.pos++
		return stepContinue, nil
	}
	p.state = statePath
	return stepContinue, nil
}

// --- Relative ---------------------------------------------------------------

func (p *parser) relative(c rune) (stepResult, *result.Result[Url]) {
	p.url.scheme = p.base.scheme
	switch {
	case c == eof:
		p.url.host = p.base.host
		p.url.port = p.base.port
		p.url.path = p.base.path
		p.url.query = p.base.query
		return stepDone, nil
	case c == '/':
		p.state = stateRelativeSlash
		p.pos++
	case isSpecialScheme(p.url.scheme) && c == '\\':
		p.state = stateRelativeSlash
		p.pos++
	case c == '?':
		p.url.host = p.base.host
		p.url.port = p.base.port
		p.url.path = p.base.path
		q := ""
		p.url.query = &q
		p.state = stateQuery
		p.pos++
	case c == '#':
		p.url.host = p.base.host
		p.url.port = p.base.port
		p.url.path = p.base.path
		p.url.query = p.base.query
		p.state = stateFragment
		p.pos++
	default:
		p.url.host = p.base.host
		p.url.port = p.base.port
		p.url.path = p.base.path
		if !p.url.path.IsOpaque() && len(p.url.path.segments) > 0 {
			p.url.path.segments = p.url.path.segments[:len(p.url.path.segments)-1]
		}
		p.state = statePath
	}
	return stepContinue, nil
}

func (p *parser) relativeSlash(c rune) (stepResult, *result.Result[Url]) {
	if isSpecialScheme(p.url.scheme) && (c == '/' || c == '\\') {
		p.state = stateSpecialAuthorityIgnoreSlashes
		p.pos++
		return stepContinue, nil
	}
	if c == '/' {
		p.state = stateAuthority
		p.pos++
		return stepContinue, nil
	}
	p.url.host = p.base.host
	p.url.port = p.base.port
	p.state = statePath
	return stepContinue, nil
}

// --- SpecialAuthoritySlashes / IgnoreSlashes -------------------------------

func (p *parser) specialAuthoritySlashes(c rune) (stepResult, *result.Result[Url]) {
	if c == '/' && p.peek(1) == '/' {
		p.pos += 2
	}
	p.state = stateSpecialAuthorityIgnoreSlashes
	return stepContinue, nil
}

func (p *parser) specialAuthorityIgnoreSlashes(c rune) (stepResult, *result.Result[Url]) {
	for c == '/' || c == '\\' {
		p.pos++
		c = p.c()
	}
	p.state = stateAuthority
	return stepContinue, nil
}

// --- Authority --------------------------------------------------------------

func (p *parser) authority(c rune) (stepResult, *result.Result[Url]) {
	if c == '@' {
		// a prior '@' still in the buffer means this is at least the second
		// one seen; per spec it gets re-encoded as "%40" rather than treated
		// as the userinfo/host separator.
		if p.atFlag {
			old := p.buffer.String()
			p.buffer.Reset()
			p.buffer.WriteString(strings.ReplaceAll(old, "@", "%40"))
			p.buffer.WriteString("%40")
		}
		p.atFlag = true
		raw := p.buffer.String()
		p.buffer.Reset()
		if colon := strings.IndexByte(raw, ':'); colon >= 0 {
			p.passwordTokenSeen = true
		}
		// userinfo (username/password) is parsed for the sake of locating
		// the host boundary but is not retained by the Url record.
		p.pos++
		return stepContinue, nil
	}
	if c == eof || c == '/' || c == '?' || c == '#' ||
		(isSpecialScheme(p.url.scheme) && c == '\\') {
		if p.atFlag && p.buffer.Len() == 0 {
			res := fail("empty host after '@' in authority")
			return stepDone, &res
		}
		p.pos -= len([]rune(p.buffer.String())) // back to the first host code point
		p.buffer.Reset()
		p.state = stateHost
		return stepContinue, nil
	}
	p.buffer.WriteRune(c)
	p.pos++
	return stepContinue, nil
}

// --- Host / Hostname --------------------------------------------------------

func (p *parser) host(c rune) (stepResult, *result.Result[Url]) {
	insideBrackets := false
	for {
		c = p.c()
		if c == '[' {
			insideBrackets = true
		} else if c == ']' {
			insideBrackets = false
		}
		if c == ':' && !insideBrackets {
			break
		}
		isTerminator := c == eof || c == '/' || c == '?' || c == '#' ||
			(isSpecialScheme(p.url.scheme) && c == '\\')
		if isTerminator {
			break
		}
		p.buffer.WriteRune(c)
		p.pos++
	}
	host := p.buffer.String()
	p.buffer.Reset()
	if isSpecialScheme(p.url.scheme) && host == "" {
		res := fail("empty host for special scheme %q", p.url.scheme)
		return stepDone, &res
	}
	host = strings.ToLower(host)
	p.url.host = &host
	if c == ':' {
		p.pos++
		p.state = statePort
		return stepContinue, nil
	}
	p.state = statePathStart
	return stepContinue, nil
}

// --- Port ---------------------------------------------------------------

func (p *parser) port(c rune) (stepResult, *result.Result[Url]) {
	for isASCIIDigit(p.c()) {
		p.buffer.WriteRune(p.c())
		p.pos++
	}
	c = p.c()
	isTerminator := c == eof || c == '/' || c == '?' || c == '#' ||
		(isSpecialScheme(p.url.scheme) && c == '\\')
	if !isTerminator {
		res := fail("invalid port %q", p.buffer.String())
		return stepDone, &res
	}
	if p.buffer.Len() > 0 {
		portStr := p.buffer.String()
		p.buffer.Reset()
		n, err := strconv.Atoi(portStr)
		if err != nil || n > 65535 {
			res := fail("invalid port %q", portStr)
			return stepDone, &res
		}
		if def, ok := specialSchemePorts[p.url.scheme]; !ok || n != def {
			p.url.port = &n
		}
	}
	p.state = statePathStart
	return stepContinue, nil
}

// --- File -----------------------------------------------------------------

func (p *parser) file(c rune) (stepResult, *result.Result[Url]) {
	p.url.scheme = "file"
	emptyHost := ""
	p.url.host = &emptyHost
	switch {
	case c == '/' || c == '\\':
		p.state = stateFileSlash
		p.pos++
	case p.base != nil && p.base.scheme == "file":
		p.url.host = p.base.host
		p.url.path = p.base.path
		p.url.query = p.base.query
		switch {
		case c == '?':
			q := ""
			p.url.query = &q
			p.state = stateQuery
			p.pos++
		case c == '#':
			p.state = stateFragment
			p.pos++
		case c == eof:
			// nothing more to do
		default:
			p.url.query = nil
			if isWindowsDriveLetterLookahead(p.remainingFrom(p.pos)) {
				p.url.path = ListPath(nil)
			} else if !p.url.path.IsOpaque() && len(p.url.path.segments) > 0 {
				p.url.path.segments = p.url.path.segments[:len(p.url.path.segments)-1]
			}
			p.state = statePath
		}
	default:
		p.state = statePath
	}
	return stepContinue, nil
}

func isWindowsDriveLetterLookahead(s string) bool {
	if len(s) < 2 {
		return false
	}
	return isASCIIAlpha(rune(s[0])) && (s[1] == ':' || s[1] == '|')
}

func (p *parser) fileSlash(c rune) (stepResult, *result.Result[Url]) {
	if c == '/' || c == '\\' {
		p.state = stateFileHost
		p.pos++
		return stepContinue, nil
	}
	if p.base != nil && p.base.scheme == "file" {
		p.url.host = p.base.host
		if segs := p.base.path.Segments(); len(segs) > 0 && isWindowsDriveLetter(segs[0]) {
			p.url.path = ListPath(append([]string{segs[0]}, nil...))
		}
	}
	p.state = statePath
	return stepContinue, nil
}

func (p *parser) fileHost(c rune) (stepResult, *result.Result[Url]) {
	isTerminator := c == eof || c == '/' || c == '\\' || c == '?' || c == '#'
	if isTerminator {
		host := p.buffer.String()
		p.buffer.Reset()
		if isWindowsDriveLetter(host) {
			p.state = statePath
			return stepContinue, nil
		}
		if host == "" {
			empty := ""
			p.url.host = &empty
		} else {
			host = strings.ToLower(host)
			p.url.host = &host
		}
		p.state = statePathStart
		return stepContinue, nil
	}
	p.buffer.WriteRune(c)
	p.pos++
	return stepContinue, nil
}

// --- PathStart / Path -------------------------------------------------------

func (p *parser) pathStart(c rune) (stepResult, *result.Result[Url]) {
	p.url.path = ListPath(nil)
	if isSpecialScheme(p.url.scheme) {
		p.state = statePath
		if c != '/' && c != '\\' {
			return stepContinue, nil
		}
		p.pathEntered = true
		p.pos++
		return stepContinue, nil
	}
	if c == '?' {
		q := ""
		p.url.query = &q
		p.state = stateQuery
		p.pos++
		return stepContinue, nil
	}
	if c == '#' {
		p.state = stateFragment
		p.pos++
		return stepContinue, nil
	}
	if c != eof {
		p.state = statePath
		return stepContinue, nil
	}
	return stepDone, nil
}

func (p *parser) path(c rune) (stepResult, *result.Result[Url]) {
	special := isSpecialScheme(p.url.scheme)
	isSlash := c == '/' || (special && c == '\\')
	atSegmentEnd := isSlash || c == eof || c == '?' || c == '#'
	if !atSegmentEnd {
		p.buffer.WriteString(percentEncodeIfNeeded(c, pathPercentEncodeSet))
		p.pos++
		return stepContinue, nil
	}
	segment := p.buffer.String()
	p.buffer.Reset()
	switch strings.ToLower(segment) {
	case "..":
		p.url.path.shorten(p.url.scheme)
		if !isSlash {
			p.url.path.segments = append(p.url.path.segments, "")
		}
	case ".":
		if !isSlash {
			p.url.path.segments = append(p.url.path.segments, "")
		}
	default:
		if segment == "" && !isSlash && !p.pathEntered {
			// a path-start state handed us straight to EOF/query/fragment
			// with no path content at all: the path stays empty rather than
			// gaining a spurious leading "" segment.
			break
		}
		if p.url.scheme == "file" && len(p.url.path.segments) == 0 && isWindowsDriveLetter(segment) {
			segment = string(segment[0]) + ":"
		}
		p.url.path.segments = append(p.url.path.segments, segment)
	}
	if isSlash {
		p.pathEntered = true
		p.pos++
		return stepContinue, nil
	}
	if c == '?' {
		q := ""
		p.url.query = &q
		p.state = stateQuery
		p.pos++
		return stepContinue, nil
	}
	if c == '#' {
		p.state = stateFragment
		p.pos++
		return stepContinue, nil
	}
	return stepDone, nil
}

// --- OpaquePath -------------------------------------------------------------

func (p *parser) opaquePath(c rune) (stepResult, *result.Result[Url]) {
	if c == '?' {
		q := ""
		p.url.query = &q
		p.state = stateQuery
		p.pos++
		return stepContinue, nil
	}
	if c == '#' {
		p.state = stateFragment
		p.pos++
		return stepContinue, nil
	}
	if c == eof {
		return stepDone, nil
	}
	cur := p.url.path.opaque
	p.url.path.opaque = cur + percentEncodeIfNeeded(c, c0ControlPercentEncodeSet)
	p.pos++
	return stepContinue, nil
}

// --- Query / Fragment --------------------------------------------------------

func (p *parser) query(c rune) (stepResult, *result.Result[Url]) {
	if c == '#' {
		p.state = stateFragment
		p.pos++
		return stepContinue, nil
	}
	if c == eof {
		return stepDone, nil
	}
	set := queryPercentEncodeSet
	if isSpecialScheme(p.url.scheme) {
		set = specialQueryPercentEncodeSet
	}
	*p.url.query += percentEncodeIfNeeded(c, set)
	p.pos++
	return stepContinue, nil
}

func (p *parser) fragment(c rune) (stepResult, *result.Result[Url]) {
	if c == eof {
		return stepDone, nil
	}
	if p.url.fragment == nil {
		f := ""
		p.url.fragment = &f
	}
	*p.url.fragment += percentEncodeIfNeeded(c, fragmentPercentEncodeSet)
	p.pos++
	return stepContinue, nil
}
