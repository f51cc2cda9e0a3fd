package render_test

import (
	"context"
	"testing"

	"github.com/npillmayer/corebrowser/maybe"
	"github.com/npillmayer/corebrowser/paint"
	"github.com/npillmayer/corebrowser/render"
	"github.com/npillmayer/corebrowser/url"
	"github.com/stretchr/testify/assert"
)

func mustParseURL(t *testing.T, s string) url.Url {
	t.Helper()
	var u url.Url
	var err error
	switch m := url.Parse(s, maybe.Nothing[url.Url]()).Match(); m {
	case m.Ok(&u):
		return u
	case m.Err(&err):
		t.Fatalf("parsing %q: %v", s, err)
	}
	return u
}

func TestOnceWithoutRasterizerReturnsDisplayList(t *testing.T) {
	base := mustParseURL(t, "http://example.com/")
	html := `<html><head><style>div{background-color:red;}</style></head><body><div>hi</div></body></html>`

	bitmap, err := render.Once(context.Background(), html, base, render.Viewport{Width: 800, Height: 600}, nil)
	if !assert.NoError(t, err) {
		return
	}
	assert.Equal(t, base, bitmap.BaseURL)
	if assert.NotEmpty(t, bitmap.Commands) {
		assert.Equal(t, paint.KindFillRect, bitmap.Commands[0].Kind)
	}
}

type fakeRasterizer struct {
	called   bool
	commands []paint.DisplayCommand
}

func (f *fakeRasterizer) Rasterize(ctx context.Context, viewport render.Viewport, commands []paint.DisplayCommand) error {
	f.called = true
	f.commands = commands
	return nil
}

func TestOnceInvokesRasterizer(t *testing.T) {
	base := mustParseURL(t, "http://example.com/")
	html := `<div style="background-color:blue;">x</div>`

	fake := &fakeRasterizer{}
	_, err := render.Once(context.Background(), html, base, render.Viewport{Width: 100, Height: 100}, fake)
	assert.NoError(t, err)
	assert.True(t, fake.called)
}

func TestOnceRespectsCanceledContext(t *testing.T) {
	base := mustParseURL(t, "http://example.com/")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeRasterizer{}
	_, err := render.Once(ctx, "<div>x</div>", base, render.Viewport{}, fake)
	assert.Error(t, err)
	assert.False(t, fake.called)
}
