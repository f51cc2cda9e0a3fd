package dom

import "golang.org/x/net/html/atom"

// Attribute is a single name/value pair, kept in source order.
type Attribute struct {
	Name  string
	Value string
}

// Element holds the data specific to an ElementNode: its ordered
// attributes and a tag-specific ElementHooks implementation.
//
// The reference implementation dispatches per-tag behavior through a
// closed Rust enum (ElementData) with one variant per supported tag,
// routed via enum_dispatch. Go has no open enum-dispatch mechanism, so we
// use the idiom already established by this module for "would be a
// subclass elsewhere": a small interface implemented by one type per tag,
// selected once at element-construction time from a tag-name table.
type Element struct {
	TagName string
	attrs   []Attribute
	Hooks   ElementHooks
}

// ElementHooks lets a tag-specific element variant react to attribute
// changes and to being inserted into a tree. Most tags need neither and
// use noopHooks.
type ElementHooks interface {
	// OnAttributeChange is called after SetAttribute changes (or sets for
	// the first time) an attribute on n.
	OnAttributeChange(n *Node, name, oldValue, newValue string, hadOld bool)
	// OnInserted is called after n has been linked into a tree as a
	// child (of any parent).
	OnInserted(n *Node)
}

// Attr returns an attribute's value and whether it is present.
func (el *Element) Attr(name string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attrs returns all attributes in source order. The returned slice must
// not be mutated by the caller.
func (el *Element) Attrs() []Attribute {
	if el == nil {
		return nil
	}
	return el.attrs
}

func (el *Element) setAttr(name, value string) {
	for i, a := range el.attrs {
		if a.Name == name {
			el.attrs[i].Value = value
			return
		}
	}
	el.attrs = append(el.attrs, Attribute{Name: name, Value: value})
}

// --- tag-specific variants --------------------------------------------

// noopHooks is used for every tag that has no special attribute or
// insertion behavior (div, span, p, li, the h1-h6 family, ...).
type noopHooks struct{}

func (noopHooks) OnAttributeChange(*Node, string, string, string, bool) {}
func (noopHooks) OnInserted(*Node)                                      {}

// anchorElement traces changes of its href attribute; it stores nothing
// and does not resolve the href against the document's base URL.
type anchorElement struct {
	noopHooks
}

func (h *anchorElement) OnAttributeChange(n *Node, name, oldValue, newValue string, hadOld bool) {
	if name == "href" {
		tracer().Debugf("anchor href changed: %q -> %q", oldValue, newValue)
	}
}

// bodyElement, headElement and htmlElement are distinct variants for the
// document-structure elements. They have no hooks of their own; the tree
// builder recognizes these elements by tag name, not by variant type.
type bodyElement struct{ noopHooks }

type headElement struct{ noopHooks }

type htmlElement struct{ noopHooks }

// linkElement, titleElement and styleElement are distinct variants with no
// hooks of their own; code that looks for these elements (such as
// cssadapter.ExtractStyleElements) compares tag names.
type linkElement struct{ noopHooks }
type titleElement struct{ noopHooks }
type styleElement struct{ noopHooks }

// unknownElement is used for any tag name this module does not special
// case; it behaves exactly like noopHooks but keeps an explicit type so a
// debugger can tell "known-and-uninteresting" apart from "not recognized
// at all".
type unknownElement struct{ noopHooks }

func newElementForTag(tagName string) *Element {
	var hooks ElementHooks
	switch atom.Lookup([]byte(tagName)) {
	case atom.A:
		hooks = &anchorElement{}
	case atom.Body:
		hooks = &bodyElement{}
	case atom.Head:
		hooks = &headElement{}
	case atom.Html:
		hooks = &htmlElement{}
	case atom.Link:
		hooks = &linkElement{}
	case atom.Title:
		hooks = &titleElement{}
	case atom.Style:
		hooks = &styleElement{}
	default:
		hooks = &unknownElement{}
	}
	return &Element{TagName: tagName, Hooks: hooks}
}
