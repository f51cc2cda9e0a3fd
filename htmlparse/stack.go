package htmlparse

import "github.com/npillmayer/corebrowser/dom"

// scopeBoundary tags are the elements that stop scope-checking walks
// (has-element-in-scope and its variants) from reaching past a nested
// sub-document context, e.g. a table cell or an applet.
var scopeBoundary = map[string]bool{
	"applet":   true,
	"caption":  true,
	"html":     true,
	"table":    true,
	"td":       true,
	"th":       true,
	"marquee":  true,
	"object":   true,
	"template": true,
}

// openElements is the tree builder's open-elements stack: it mirrors the
// DOM insertion path, growing on element insertion and shrinking on the
// matching end tag.
type openElements struct {
	stack []*dom.Node
}

func (s *openElements) push(n *dom.Node) { s.stack = append(s.stack, n) }

func (s *openElements) pop() *dom.Node {
	if len(s.stack) == 0 {
		return nil
	}
	n := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return n
}

func (s *openElements) top() *dom.Node {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *openElements) empty() bool { return len(s.stack) == 0 }

// popUntil pops elements until one matching tagName has been popped
// (inclusive), for processing a matching end tag.
func (s *openElements) popUntil(tagName string) {
	for len(s.stack) > 0 {
		n := s.pop()
		if n.IsElement(tagName) {
			return
		}
	}
}

// contains reports whether an element with tagName is anywhere on the
// stack.
func (s *openElements) contains(tagName string) bool {
	for _, n := range s.stack {
		if n.IsElement(tagName) {
			return true
		}
	}
	return false
}

// inScope reports whether an element named tagName is in scope: present
// on the stack above the nearest scopeBoundary element (or the stack
// bottom, if none).
func (s *openElements) inScope(tagName string) bool {
	for i := len(s.stack) - 1; i >= 0; i-- {
		n := s.stack[i]
		if n.IsElement(tagName) {
			return true
		}
		if scopeBoundary[n.TagName()] {
			return false
		}
	}
	return false
}

// indexOf returns the stack index of n by object identity.
func (s *openElements) indexOf(n *dom.Node) (int, bool) {
	for i, e := range s.stack {
		if e == n {
			return i, true
		}
	}
	return 0, false
}

// removeElement removes n from the stack by object identity.
func (s *openElements) removeElement(n *dom.Node) {
	i, ok := s.indexOf(n)
	if !ok {
		return
	}
	s.stack = append(s.stack[:i], s.stack[i+1:]...)
}

// insertAt inserts n at stack index i.
func (s *openElements) insertAt(i int, n *dom.Node) {
	s.stack = append(s.stack, nil)
	copy(s.stack[i+1:], s.stack[i:])
	s.stack[i] = n
}

// elementAbove returns the element immediately above n on the stack (the
// one inserted after it), used by the adoption agency's "furthest block"
// search.
func (s *openElements) elementAbove(n *dom.Node) (*dom.Node, bool) {
	i, ok := s.indexOf(n)
	if !ok || i+1 >= len(s.stack) {
		return nil, false
	}
	return s.stack[i+1], true
}
