package htmlparse

import (
	"testing"

	"github.com/npillmayer/corebrowser/dom"
	"github.com/stretchr/testify/assert"
)

// TestActiveFormattingElementsClearUpToLastMarker reproduces §8.5's first
// vector: after "push marker; push A; push B; push marker; push C",
// clear_up_to_last_marker leaves [marker, A, B].
func TestActiveFormattingElementsClearUpToLastMarker(t *testing.T) {
	a := dom.NewElement("a")
	b := dom.NewElement("b")
	c := dom.NewElement("code")

	var afe activeFormattingElements
	afe.pushMarker()
	afe.push(a)
	afe.push(b)
	afe.pushMarker()
	afe.push(c)

	afe.clearUpToLastMarker()

	assert.Equal(t, 3, afe.len())
	assert.True(t, afe.entries[0].isMarker())
	assert.Equal(t, a, afe.entries[1].node)
	assert.Equal(t, b, afe.entries[2].node)
}

// TestActiveFormattingElementsGetAfterLastMarkerStopsAtMarker reproduces
// §8.5's second vector: get_element_after_last_marker("A") after the
// same push sequence (before any clear) returns nothing, since the search
// from the top passes "code" and stops at the marker below it before
// reaching any "a".
func TestActiveFormattingElementsGetAfterLastMarkerStopsAtMarker(t *testing.T) {
	a := dom.NewElement("a")
	b := dom.NewElement("b")
	c := dom.NewElement("code")

	var afe activeFormattingElements
	afe.pushMarker()
	afe.push(a)
	afe.push(b)
	afe.pushMarker()
	afe.push(c)

	_, found := afe.getElementAfterLastMarker("a")
	assert.False(t, found)
}

// TestActiveFormattingElementsGetAfterLastMarkerFindsMatch confirms the
// positive case: with no marker above the match, the search succeeds.
func TestActiveFormattingElementsGetAfterLastMarkerFindsMatch(t *testing.T) {
	a := dom.NewElement("a")
	b := dom.NewElement("b")

	var afe activeFormattingElements
	afe.push(a)
	afe.push(b)

	found, ok := afe.getElementAfterLastMarker("a")
	assert.True(t, ok)
	assert.Equal(t, a, found)
}

// TestActiveFormattingElementsRemoveElement reproduces §8.5's third
// vector: remove_element(B) removes exactly one entry and preserves the
// order of the others.
func TestActiveFormattingElementsRemoveElement(t *testing.T) {
	a := dom.NewElement("a")
	b := dom.NewElement("b")
	c := dom.NewElement("code")

	var afe activeFormattingElements
	afe.push(a)
	afe.push(b)
	afe.push(c)

	afe.removeElement(b)

	assert.Equal(t, 2, afe.len())
	assert.False(t, afe.contains(b))
	assert.Equal(t, a, afe.entries[0].node)
	assert.Equal(t, c, afe.entries[1].node)
}

func TestActiveFormattingElementsIdentityNotStructuralEquality(t *testing.T) {
	first := dom.NewElement("b")
	second := dom.NewElement("b")

	var afe activeFormattingElements
	afe.push(first)

	assert.True(t, afe.contains(first))
	assert.False(t, afe.contains(second))
}
