package htmlparse

import (
	"testing"

	"github.com/npillmayer/corebrowser/dom"
	"github.com/stretchr/testify/assert"
)

func findFirst(n *dom.Node, tagName string) *dom.Node {
	if n == nil {
		return nil
	}
	if n.IsElement(tagName) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tagName); found != nil {
			return found
		}
	}
	return nil
}

func TestParseImpliesHtmlHeadBody(t *testing.T) {
	doc := Parse(`<div>hello</div>`)
	html := findFirst(doc, "html")
	if !assert.NotNil(t, html) {
		return
	}
	head := findFirst(html, "head")
	body := findFirst(html, "body")
	assert.NotNil(t, head)
	assert.NotNil(t, body)
	div := findFirst(body, "div")
	if !assert.NotNil(t, div) {
		return
	}
	assert.Equal(t, "hello", div.TextContent())
}

func TestParseExplicitStructure(t *testing.T) {
	doc := Parse(`<!DOCTYPE html><html><head><title>T</title></head><body><p>hi</p></body></html>`)
	assert.NotNil(t, doc.FirstChild)
	assert.Equal(t, dom.DocumentTypeNode, doc.FirstChild.Kind)

	html := findFirst(doc, "html")
	if !assert.NotNil(t, html) {
		return
	}
	title := findFirst(html, "title")
	if assert.NotNil(t, title) {
		assert.Equal(t, "T", title.TextContent())
	}
	p := findFirst(html, "p")
	if assert.NotNil(t, p) {
		assert.Equal(t, "hi", p.TextContent())
	}
}

func TestParseAttributes(t *testing.T) {
	doc := Parse(`<div class="box" data-x="1">content</div>`)
	div := findFirst(doc, "div")
	if !assert.NotNil(t, div) {
		return
	}
	class, ok := div.Attr("class")
	assert.True(t, ok)
	assert.Equal(t, "box", class)
}

func TestParseNestedElements(t *testing.T) {
	doc := Parse(`<div><span>one</span><p>two</p></div>`)
	div := findFirst(doc, "div")
	if !assert.NotNil(t, div) {
		return
	}
	children := div.ChildNodes()
	if !assert.Len(t, children, 2) {
		return
	}
	assert.True(t, children[0].IsElement("span"))
	assert.True(t, children[1].IsElement("p"))
}

func TestParseUnclosedTagsRecoverGracefully(t *testing.T) {
	doc := Parse(`<div><p>open paragraph<div>next</div>`)
	html := findFirst(doc, "html")
	assert.NotNil(t, html)
}

func TestParseMisnestedFormattingElementsRunsAdoptionAgency(t *testing.T) {
	doc := Parse(`<p><b>1<i>2</b>3</i></p>`)
	html := findFirst(doc, "html")
	if !assert.NotNil(t, html) {
		return
	}
	p := findFirst(html, "p")
	if !assert.NotNil(t, p) {
		return
	}
	// the adoption agency must not crash and must preserve all text
	assert.Equal(t, "123", p.TextContent())
}

func TestParseScriptContentNotTreatedAsMarkup(t *testing.T) {
	doc := Parse(`<script>if (1 < 2) {}</script><div>after</div>`)
	script := findFirst(doc, "script")
	if !assert.NotNil(t, script) {
		return
	}
	assert.Equal(t, "if (1 < 2) {}", script.TextContent())
	div := findFirst(doc, "div")
	assert.NotNil(t, div)
}

func TestParseComment(t *testing.T) {
	doc := Parse(`<div><!-- note --></div>`)
	div := findFirst(doc, "div")
	if !assert.NotNil(t, div) {
		return
	}
	children := div.ChildNodes()
	if !assert.Len(t, children, 1) {
		return
	}
	assert.Equal(t, dom.CommentNode, children[0].Kind)
	assert.Equal(t, " note ", children[0].Data)
}
