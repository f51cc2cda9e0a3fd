package htmlparse

import (
	"github.com/npillmayer/corebrowser/dom"
)

// insertionMode names the subset of the HTML standard's insertion modes
// this engine implements. Table, select and template modes are not
// modeled; a token that would normally switch into one of those modes is
// instead processed as if the current mode were inBody (documented
// limitation, see DESIGN.md).
type insertionMode int

const (
	modeInitial insertionMode = iota
	modeBeforeHTML
	modeBeforeHead
	modeInHead
	modeAfterHead
	modeInBody
	modeText
	modeAfterBody
	modeAfterAfterBody
)

// formattingElements are the tag names the adoption agency algorithm
// applies to: elements whose start/end tags can become unbalanced with
// respect to other open elements (e.g. "<b>1<i>2</b>3</i>").
var formattingElements = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true,
	"font": true, "i": true, "nobr": true, "s": true, "small": true,
	"strike": true, "strong": true, "tt": true, "u": true,
}

// voidElements never get a matching end tag and are never pushed onto
// the open-elements stack.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// treeBuilder drives the insertion-mode state machine over a Tokenizer's
// output, maintaining the open-elements stack and the active formatting
// elements list, and producing a dom.Node document tree.
type treeBuilder struct {
	tok *Tokenizer

	document *dom.Node
	htmlElem *dom.Node
	headElem *dom.Node
	bodyElem *dom.Node

	mode         insertionMode
	originalMode insertionMode

	open openElements
	afe  activeFormattingElements

	framesetOK bool
}

// Parse tokenizes src and builds a document tree, returning its root. The
// builder never aborts on malformed input: unrecognized structure is
// absorbed per the insertion-mode rules below and the worst case is a
// differently-shaped (but always well-formed) tree.
func Parse(src string) *dom.Node {
	tb := &treeBuilder{
		tok:        NewTokenizer(src),
		document:   dom.NewDocument(),
		mode:       modeInitial,
		framesetOK: true,
	}
	tb.run()
	return tb.document
}

func (tb *treeBuilder) run() {
	for {
		tok := tb.tok.Next()
		tb.dispatch(tok)
		if tok.Type == EOFToken {
			return
		}
	}
}

func (tb *treeBuilder) dispatch(tok Token) {
	switch tb.mode {
	case modeInitial:
		tb.initial(tok)
	case modeBeforeHTML:
		tb.beforeHTML(tok)
	case modeBeforeHead:
		tb.beforeHead(tok)
	case modeInHead:
		tb.inHead(tok)
	case modeAfterHead:
		tb.afterHead(tok)
	case modeInBody:
		tb.inBody(tok)
	case modeText:
		tb.text(tok)
	case modeAfterBody:
		tb.afterBody(tok)
	case modeAfterAfterBody:
		tb.afterAfterBody(tok)
	}
}

// currentNode returns the element content is currently being inserted
// into: the top of the open-elements stack, or the document itself
// before <html> has been seen.
func (tb *treeBuilder) currentNode() *dom.Node {
	if n := tb.open.top(); n != nil {
		return n
	}
	return tb.document
}

func (tb *treeBuilder) insertElement(tok Token) *dom.Node {
	n := dom.NewElement(tok.Name)
	for _, a := range tok.Attrs {
		n.SetAttribute(a.Name, a.Value)
	}
	tb.currentNode().AppendChild(n)
	if !voidElements[tok.Name] {
		tb.open.push(n)
	}
	return n
}

func (tb *treeBuilder) insertCharacter(data string) {
	if data == "" {
		return
	}
	parent := tb.currentNode()
	if last := parent.LastChild; last != nil && last.Kind == dom.TextNode {
		last.Data += data
		return
	}
	parent.AppendChild(dom.NewText(data))
}

func (tb *treeBuilder) insertComment(data string) {
	tb.currentNode().AppendChild(dom.NewComment(data))
}

// --- initial / before-html / before-head / in-head / after-head --------

func (tb *treeBuilder) initial(tok Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			return
		}
	case DoctypeToken:
		tb.document.AppendChild(dom.NewDocumentType(tok.Name))
		tb.mode = modeBeforeHTML
		return
	case CommentToken:
		tb.insertComment(tok.Data)
		return
	}
	tb.mode = modeBeforeHTML
	tb.beforeHTML(tok)
}

func (tb *treeBuilder) beforeHTML(tok Token) {
	switch {
	case tok.Type == CharacterToken && isAllWhitespace(tok.Data):
		return
	case tok.Type == CommentToken:
		tb.insertComment(tok.Data)
		return
	case tok.Type == StartTagToken && tok.Name == "html":
		tb.htmlElem = tb.insertElement(tok)
		tb.mode = modeBeforeHead
		return
	case tok.Type == EndTagToken:
		return
	}
	tb.htmlElem = tb.insertElement(Token{Type: StartTagToken, Name: "html"})
	tb.mode = modeBeforeHead
	tb.beforeHead(tok)
}

func (tb *treeBuilder) beforeHead(tok Token) {
	switch {
	case tok.Type == CharacterToken && isAllWhitespace(tok.Data):
		return
	case tok.Type == CommentToken:
		tb.insertComment(tok.Data)
		return
	case tok.Type == StartTagToken && tok.Name == "html":
		tb.mergeHTMLAttributes(tok)
		return
	case tok.Type == StartTagToken && tok.Name == "head":
		tb.headElem = tb.insertElement(tok)
		tb.mode = modeInHead
		return
	case tok.Type == EndTagToken && (tok.Name == "head" || tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		// fall through to implied <head>
	case tok.Type == EndTagToken:
		return
	}
	tb.headElem = tb.insertElement(Token{Type: StartTagToken, Name: "head"})
	tb.mode = modeInHead
	tb.inHead(tok)
}

func (tb *treeBuilder) inHead(tok Token) {
	switch {
	case tok.Type == CharacterToken && isAllWhitespace(tok.Data):
		tb.insertCharacter(tok.Data)
		return
	case tok.Type == CommentToken:
		tb.insertComment(tok.Data)
		return
	case tok.Type == StartTagToken && tok.Name == "html":
		tb.mergeHTMLAttributes(tok)
		return
	case tok.Type == StartTagToken && (tok.Name == "base" || tok.Name == "link" || tok.Name == "meta"):
		tb.insertElement(tok)
		return
	case tok.Type == StartTagToken && tok.Name == "title":
		tb.insertElement(tok)
		tb.startText(modeInHead)
		return
	case tok.Type == StartTagToken && tok.Name == "style":
		tb.insertElement(tok)
		tb.startText(modeInHead)
		return
	case tok.Type == StartTagToken && tok.Name == "script":
		tb.insertElement(tok)
		tb.startText(modeInHead)
		return
	case tok.Type == EndTagToken && tok.Name == "head":
		tb.open.pop()
		tb.mode = modeAfterHead
		return
	case tok.Type == EndTagToken && (tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		// fall through to implied </head>
	case tok.Type == EndTagToken:
		return
	case tok.Type == EOFToken:
		tb.open.pop()
		tb.mode = modeAfterHead
		tb.afterHead(tok)
		return
	}
	tb.open.pop()
	tb.mode = modeAfterHead
	tb.afterHead(tok)
}

func (tb *treeBuilder) afterHead(tok Token) {
	switch {
	case tok.Type == CharacterToken && isAllWhitespace(tok.Data):
		tb.insertCharacter(tok.Data)
		return
	case tok.Type == CommentToken:
		tb.insertComment(tok.Data)
		return
	case tok.Type == StartTagToken && tok.Name == "html":
		tb.mergeHTMLAttributes(tok)
		return
	case tok.Type == StartTagToken && tok.Name == "body":
		tb.bodyElem = tb.insertElement(tok)
		tb.framesetOK = false
		tb.mode = modeInBody
		return
	case tok.Type == StartTagToken && tok.Name == "head":
		return
	case tok.Type == EndTagToken && (tok.Name == "body" || tok.Name == "html" || tok.Name == "br"):
		// fall through to implied <body>
	case tok.Type == EndTagToken:
		return
	}
	tb.bodyElem = tb.insertElement(Token{Type: StartTagToken, Name: "body"})
	tb.mode = modeInBody
	tb.inBody(tok)
}

// mergeHTMLAttributes folds a reentrant <html> start tag's attributes
// into the already-created root element, matching the HTML standard's
// "before html"/"in body" handling of a second <html> tag.
func (tb *treeBuilder) mergeHTMLAttributes(tok Token) {
	if tb.htmlElem == nil {
		return
	}
	for _, a := range tok.Attrs {
		if _, had := tb.htmlElem.Attr(a.Name); !had {
			tb.htmlElem.SetAttribute(a.Name, a.Value)
		}
	}
}

// startText switches to the "text" insertion mode, used for elements
// whose content the tokenizer already isolated as raw text (title,
// style, script, textarea).
func (tb *treeBuilder) startText(returnTo insertionMode) {
	tb.originalMode = returnTo
	tb.mode = modeText
}

func (tb *treeBuilder) text(tok Token) {
	switch tok.Type {
	case CharacterToken:
		tb.insertCharacter(tok.Data)
	case EndTagToken:
		tb.open.pop()
		tb.mode = tb.originalMode
	case EOFToken:
		tb.open.pop()
		tb.mode = tb.originalMode
		tb.dispatch(tok)
	}
}

// --- in-body -------------------------------------------------------

func (tb *treeBuilder) inBody(tok Token) {
	switch tok.Type {
	case CharacterToken:
		tb.insertCharacter(tok.Data)
		if !isAllWhitespace(tok.Data) {
			tb.framesetOK = false
		}
		return
	case CommentToken:
		tb.insertComment(tok.Data)
		return
	case DoctypeToken:
		return
	case EOFToken:
		return
	}

	if tok.Type == StartTagToken {
		switch {
		case tok.Name == "html":
			tb.mergeHTMLAttributes(tok)
			return
		case tok.Name == "head":
			return
		case rawTextElements[tok.Name]:
			tb.insertElement(tok)
			tb.startText(modeInBody)
			return
		case formattingElements[tok.Name]:
			n := tb.insertElement(tok)
			tb.afe.push(n)
			return
		case voidElements[tok.Name]:
			tb.insertElement(tok)
			return
		default:
			tb.insertElement(tok)
			return
		}
	}

	// EndTagToken
	switch {
	case tok.Name == "body" || tok.Name == "html":
		if tb.open.contains("body") {
			tb.mode = modeAfterBody
		}
		return
	case formattingElements[tok.Name]:
		tb.adoptionAgency(tok.Name)
		return
	default:
		tb.genericEndTag(tok.Name)
		return
	}
}

// genericEndTag implements the "any other end tag" clause: pop elements
// until one matching tagName is popped, provided it is in scope. Out of
// scope end tags are silently ignored, matching the spec's parse-error
// recoverability contract.
func (tb *treeBuilder) genericEndTag(tagName string) {
	if !tb.open.inScope(tagName) {
		return
	}
	tb.open.popUntil(tagName)
}

// adoptionAgency is a simplified, bounded rendition of the adoption
// agency algorithm: it reparents a misnested formatting element's
// descendants under a clone of the formatting element, then continues
// popping the open-elements stack as usual. The full algorithm's
// "bookmark" reinsertion across the active formatting elements list and
// its multi-element furthest-block walk are collapsed into a single
// reparenting step per outer-loop iteration, bounded (as the standard
// itself bounds it) to 8 iterations.
func (tb *treeBuilder) adoptionAgency(tagName string) {
	for i := 0; i < 8; i++ {
		formatting, ok := tb.afe.getElementAfterLastMarker(tagName)
		if !ok {
			tb.genericEndTag(tagName)
			return
		}
		if !tb.open.contains(tagName) {
			tb.afe.removeElement(formatting)
			return
		}
		if !tb.open.inScope(tagName) {
			return
		}
		if tb.currentNode() == formatting {
			tb.open.pop()
			tb.afe.removeElement(formatting)
			return
		}
		furthestBlock, ok := tb.open.elementAbove(formatting)
		if !ok {
			tb.open.popUntil(tagName)
			tb.afe.removeElement(formatting)
			return
		}
		clone := dom.NewElement(formatting.TagName())
		for _, a := range formatting.Element.Attrs() {
			clone.SetAttribute(a.Name, a.Value)
		}
		for _, child := range furthestBlock.ChildNodes() {
			clone.AppendChild(child)
		}
		furthestBlock.AppendChild(clone)

		if idx, ok := tb.afe.indexOf(formatting); ok {
			tb.afe.removeElement(formatting)
			tb.afe.insertAt(idx, clone)
		}
		tb.open.removeElement(formatting)
	}
}

// --- after-body / after-after-body ----------------------------------

func (tb *treeBuilder) afterBody(tok Token) {
	switch {
	case tok.Type == CharacterToken && isAllWhitespace(tok.Data):
		tb.inBody(tok)
		return
	case tok.Type == CommentToken:
		if tb.htmlElem != nil {
			tb.htmlElem.AppendChild(dom.NewComment(tok.Data))
		}
		return
	case tok.Type == StartTagToken && tok.Name == "html":
		tb.mergeHTMLAttributes(tok)
		return
	case tok.Type == EndTagToken && tok.Name == "html":
		tb.mode = modeAfterAfterBody
		return
	case tok.Type == EOFToken:
		return
	}
	tb.mode = modeInBody
	tb.inBody(tok)
}

func (tb *treeBuilder) afterAfterBody(tok Token) {
	switch {
	case tok.Type == CharacterToken && isAllWhitespace(tok.Data):
		tb.inBody(tok)
		return
	case tok.Type == CommentToken:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return
	case tok.Type == StartTagToken && tok.Name == "html":
		tb.mergeHTMLAttributes(tok)
		return
	case tok.Type == EOFToken:
		return
	}
	tb.mode = modeInBody
	tb.inBody(tok)
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if !isWhitespace(r) {
			return false
		}
	}
	return true
}
