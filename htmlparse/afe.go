package htmlparse

import "github.com/npillmayer/corebrowser/dom"

// afeEntry is either a formatting element or a scope marker. Markers are
// represented as a nil Node so identity comparisons (pointer equality)
// never confuse a marker with a real element.
type afeEntry struct {
	node *dom.Node
}

func (e afeEntry) isMarker() bool { return e.node == nil }

// activeFormattingElements tracks formatting elements (a, b, i, ...)
// still in scope for the adoption agency algorithm, plus scope markers
// pushed when entering a new formatting context (e.g. a table cell).
// Identity comparisons throughout use object identity (pointer equality
// on *dom.Node), never structural equality — two distinct <b> elements
// with identical attributes are not the same entry.
type activeFormattingElements struct {
	entries []afeEntry
}

// push appends a formatting element to the top (end) of the list.
func (afe *activeFormattingElements) push(n *dom.Node) {
	afe.entries = append(afe.entries, afeEntry{node: n})
}

// pushMarker appends a scope marker to the top of the list.
func (afe *activeFormattingElements) pushMarker() {
	afe.entries = append(afe.entries, afeEntry{})
}

// clearUpToLastMarker discards every entry from the top of the list down
// to and including the most recent marker. If there is no marker, the
// entire list is cleared.
func (afe *activeFormattingElements) clearUpToLastMarker() {
	for i := len(afe.entries) - 1; i >= 0; i-- {
		marker := afe.entries[i].isMarker()
		afe.entries = afe.entries[:i]
		if marker {
			return
		}
	}
}

// getElementAfterLastMarker searches from the top of the list toward the
// most recent marker and returns the first element whose tag name matches
// tagName. It stops and returns (nil, false) if a marker is reached
// before any match.
func (afe *activeFormattingElements) getElementAfterLastMarker(tagName string) (*dom.Node, bool) {
	for i := len(afe.entries) - 1; i >= 0; i-- {
		e := afe.entries[i]
		if e.isMarker() {
			return nil, false
		}
		if e.node.IsElement(tagName) {
			return e.node, true
		}
	}
	return nil, false
}

// contains reports whether n is present in the list by object identity.
func (afe *activeFormattingElements) contains(n *dom.Node) bool {
	_, ok := afe.indexOf(n)
	return ok
}

// indexOf returns the index of n in the list by object identity.
func (afe *activeFormattingElements) indexOf(n *dom.Node) (int, bool) {
	for i, e := range afe.entries {
		if e.node == n {
			return i, true
		}
	}
	return 0, false
}

// removeElement removes n from the list by object identity, removing at
// most one entry and preserving the relative order of the others.
func (afe *activeFormattingElements) removeElement(n *dom.Node) {
	i, ok := afe.indexOf(n)
	if !ok {
		return
	}
	afe.entries = append(afe.entries[:i], afe.entries[i+1:]...)
}

// replaceElement substitutes replacement for old at old's current
// position, used by the adoption agency algorithm when it rebuilds a
// formatting element's clone in place.
func (afe *activeFormattingElements) replaceElement(old, replacement *dom.Node) {
	i, ok := afe.indexOf(old)
	if !ok {
		return
	}
	afe.entries[i] = afeEntry{node: replacement}
}

// insertAt inserts n at index i, shifting later entries up, used when the
// adoption agency reinserts a formatting element's clone at its bookmark
// position.
func (afe *activeFormattingElements) insertAt(i int, n *dom.Node) {
	entry := afeEntry{node: n}
	afe.entries = append(afe.entries, afeEntry{})
	copy(afe.entries[i+1:], afe.entries[i:])
	afe.entries[i] = entry
}

// len reports the number of entries, markers included.
func (afe *activeFormattingElements) len() int { return len(afe.entries) }

// last returns the entry at the top of the list, if any.
func (afe *activeFormattingElements) last() (afeEntry, bool) {
	if len(afe.entries) == 0 {
		return afeEntry{}, false
	}
	return afe.entries[len(afe.entries)-1], true
}
