package render

import (
	"context"
	"errors"

	"github.com/npillmayer/corebrowser/cssadapter"
	"github.com/npillmayer/corebrowser/cssom"
	"github.com/npillmayer/corebrowser/dom"
	"github.com/npillmayer/corebrowser/htmlparse"
	"github.com/npillmayer/corebrowser/layout"
	"github.com/npillmayer/corebrowser/paint"
	"github.com/npillmayer/corebrowser/styledtree"
	"github.com/npillmayer/corebrowser/tree"
	"github.com/npillmayer/corebrowser/url"
)

// Viewport describes the rendering surface a document is laid out for.
type Viewport struct {
	Width, Height int
}

// Bitmap is the pipeline's output: the base URL the document resolved
// against, the viewport it was produced for, and the display list a
// backend rasterizer would turn into pixels. Actual rasterization is out
// of scope for this module — see paint.Emit's doc comment — so Bitmap
// carries the display list rather than pixel data.
type Bitmap struct {
	BaseURL  url.Url
	Viewport Viewport
	Commands []paint.DisplayCommand
}

// Rasterizer is the one-method seam a backend would implement to turn a
// display list into actual pixels. Once calls it only if one is supplied;
// without one, Once still returns the display list inside Bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, viewport Viewport, commands []paint.DisplayCommand) error
}

// Once runs the render pipeline exactly once over htmlSource, resolved
// against baseURL, producing a Bitmap. The stages run strictly in order —
// URL resolution (by the caller, via baseURL) → HTML parse → style →
// layout → paint — and each stage fully completes before the next
// begins; no stage observes a partially built upstream structure.
//
// If rasterizer is non-nil, its Rasterize method is called as the final
// step; ctx governs only that call, the single blocking-shaped seam in
// an otherwise synchronous pipeline (the parser and tree builder never
// suspend).
func Once(ctx context.Context, htmlSource string, baseURL url.Url, viewport Viewport, rasterizer Rasterizer) (Bitmap, error) {
	document := htmlparse.Parse(htmlSource)
	if document == nil {
		return Bitmap{}, errors.New("render: HTML parse produced no document")
	}

	styledRoot, err := styleDocument(document)
	if err != nil {
		return Bitmap{}, err
	}

	layoutRoot := layout.Build(styledRoot)
	commands := paint.Emit(layoutRoot)

	bitmap := Bitmap{BaseURL: baseURL, Viewport: viewport, Commands: commands}

	if rasterizer == nil {
		return bitmap, nil
	}
	if err := ctx.Err(); err != nil {
		return Bitmap{}, err
	}
	if err := rasterizer.Rasterize(ctx, viewport, commands); err != nil {
		return Bitmap{}, err
	}
	return bitmap, nil
}

func styleDocument(document *dom.Node) (*tree.Node[*styledtree.StyNode], error) {
	om := cssom.NewCSSOM(nil)
	for _, sheet := range cssadapter.ExtractStyleElements(document) {
		if err := om.AddStylesForScope(nil, sheet, cssom.Author); err != nil {
			tracer().Errorf("adding extracted stylesheet: %v", err)
			return nil, err
		}
	}
	styledRoot, err := om.Style(document)
	if err != nil {
		return nil, err
	}
	return styledRoot, nil
}
