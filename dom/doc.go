/*
Package dom implements the document tree built by the HTML parser: nodes,
their kinds and the sibling/child linkage that the rest of the rendering
pipeline (styling, layout, painting) walks.

In a fully object oriented programming language we would subclass Node for
every element kind (anchor, body, div, ...). Go has no subclassing, so we
resort to composition instead: an Element carries a small ElementHooks
value selected by tag name, and every Node, regardless of kind, shares the
same struct and the same five link fields.

The five link fields (Parent, FirstChild, LastChild, NextSibling,
PrevSibling) are the sole ownership model for the tree: a node is reachable
from its parent's FirstChild/NextSibling chain, full stop. There is no
separate child slice or registry, matching the reference implementation's
Rc/Weak node graph, translated to plain pointers since Go's collector
handles the cycles a naive translation would otherwise leak.
*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("corebrowser.dom")
}
