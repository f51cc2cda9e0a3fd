package url_test

import (
	"testing"

	"github.com/npillmayer/corebrowser/maybe"
	"github.com/npillmayer/corebrowser/url"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, input string, base maybe.Maybe[url.Url]) url.Url {
	t.Helper()
	var u url.Url
	var err error
	switch m := url.Parse(input, base).Match(); m {
	case m.Ok(&u):
		return u
	case m.Err(&err):
		t.Fatalf("parse(%q) failed unexpectedly: %v", input, err)
	}
	return u
}

func noBase() maybe.Maybe[url.Url] {
	return maybe.Nothing[url.Url]()
}

func TestParseSimpleHTTP(t *testing.T) {
	u := mustParse(t, "http://google.com/index.php", noBase())
	assert.Equal(t, "http", u.Scheme())
	host, ok := u.Host()
	assert.True(t, ok)
	assert.Equal(t, "google.com", host)
	_, hasPort := u.Port()
	assert.False(t, hasPort)
	assert.Equal(t, []string{"index.php"}, u.Path().Segments())
}

func TestParseHostOnlyPathEmpty(t *testing.T) {
	u := mustParse(t, "http://google.com", noBase())
	assert.Empty(t, u.Path().Segments())
}

func TestParseDefaultPortElided(t *testing.T) {
	u := mustParse(t, "https://google.com:443", noBase())
	_, hasPort := u.Port()
	assert.False(t, hasPort)
}

func TestParseNonDefaultPort(t *testing.T) {
	u := mustParse(t, "https://google.com:1242", noBase())
	port, ok := u.Port()
	assert.True(t, ok)
	assert.Equal(t, 1242, port)
}

func TestParseInvalidPortFails(t *testing.T) {
	switch m := url.Parse("https://google.com:44a3", noBase()).Match(); m {
	case m.Ok(new(url.Url)):
		t.Error("expected parsing an alphabetic port to fail, succeeded")
	case m.Err(new(error)):
	}
}

func TestParseFileURL(t *testing.T) {
	u := mustParse(t, "file:///home/user/html/index.html", noBase())
	assert.Equal(t, "file", u.Scheme())
	assert.Equal(t, "/home/user/html/index.html", u.Path().String())
}

func TestParseRelativeToHTTPBase(t *testing.T) {
	base := mustParse(t, "http://google.com", noBase())
	u := mustParse(t, "index.html", maybe.Just(base))
	assert.Equal(t, "http", u.Scheme())
	host, _ := u.Host()
	assert.Equal(t, "google.com", host)
	assert.Equal(t, []string{"index.html"}, u.Path().Segments())
}

func TestParseRelativeToFileBase(t *testing.T) {
	base := mustParse(t, "file:///home/user/data/", noBase())
	u := mustParse(t, "index.html", maybe.Just(base))
	assert.Equal(t, "file", u.Scheme())
	assert.Equal(t, "/home/user/data/index.html", u.Path().String())
}

func TestShortenPathNoopForFileDriveLetter(t *testing.T) {
	// ".." applied to a path whose sole segment is a normalized drive
	// letter must leave the drive letter in place rather than popping it.
	u := mustParse(t, "file:///c:/..", noBase())
	segs := u.Path().Segments()
	if assert.NotEmpty(t, segs) {
		assert.Equal(t, "c:", segs[0])
	}
}

func TestShortenPathPopsOrdinarySegment(t *testing.T) {
	// contrast case: with more than one segment, ".." pops the last one
	// as usual and the drive letter exception does not apply.
	u := mustParse(t, "file:///c:/foo/..", noBase())
	segs := u.Path().Segments()
	if assert.NotEmpty(t, segs) {
		assert.Equal(t, "c:", segs[0])
		for _, s := range segs {
			assert.NotEqual(t, "foo", s)
		}
	}
}

func TestParseIdempotent(t *testing.T) {
	inputs := []string{
		"http://google.com/index.php",
		"https://google.com:1242",
		"file:///home/user/html/index.html",
	}
	for _, in := range inputs {
		first := mustParse(t, in, noBase())
		second := mustParse(t, first.String(), noBase())
		assert.Equal(t, first.Scheme(), second.Scheme())
		assert.Equal(t, first.Path().String(), second.Path().String())
	}
}
