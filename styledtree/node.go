package styledtree

import (
	"github.com/npillmayer/corebrowser/dom"
	"github.com/npillmayer/corebrowser/style"
	"github.com/npillmayer/corebrowser/tree"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	tree.Node[*StyNode] // we build on top of general purpose tree
	domNode             *dom.Node
	computedStyles       *style.PropertyMap
}

// NewNodeForDOMNode creates a new styled node linked to a DOM node.
func NewNodeForDOMNode(n *dom.Node) *tree.Node[*StyNode] {
	sn := &StyNode{}
	sn.Payload = sn // Payload will always reference the node itself
	sn.domNode = n
	return &sn.Node
}

// Node gets the styled node from a generic tree node.
func Node(n *tree.Node[*StyNode]) *StyNode {
	if n == nil {
		return nil
	}
	return n.Payload
}

// DOMNode gets the DOM node corresponding to this styled node.
func (sn *StyNode) DOMNode() *dom.Node {
	return sn.Payload.domNode
}

// Styles returns the computed property map of a styled node.
func (sn *StyNode) Styles() *style.PropertyMap {
	return sn.computedStyles
}

// StyleParent returns the styled-tree parent as a style.StyledNode,
// satisfying style.StyledNode for use by style.GetCascadedProperty.
// Returns an untyped nil interface value at the root, which style's
// cascade loop checks for with node != nil.
func (sn *StyNode) StyleParent() style.StyledNode {
	parent := sn.Parent()
	if parent == nil || parent.Payload == nil {
		return nil
	}
	return parent.Payload
}

// DOMTagName returns the tag name of the DOM node this styled node wraps.
func (sn *StyNode) DOMTagName() string {
	return sn.domNode.TagName()
}

// SetStyles sets the styling properties of a styled node.
func (sn *StyNode) SetStyles(styles *style.PropertyMap) {
	sn.computedStyles = styles
}

// GetPropertyValue returns the property value for a given key, local to
// pmap. If the value is "inherit", or the property is of an inheriting
// kind and absent locally, the search walks up to the styled-tree parent
// and cascades from there.
func (sn *StyNode) GetPropertyValue(key string, pmap *style.PropertyMap) style.Property {
	p, ok := pmap.Property(key)
	if ok && p != "inherit" {
		return p
	}
	if !ok && !style.IsCascading(key) {
		return style.NullStyle
	}
	tracer().Debugf("styling: cascading for key %s", key)
	groupname := style.GroupNameFromPropertyKey(key)
	for anc := sn.Parent(); anc != nil && anc.Payload != nil; anc = anc.Parent() {
		if g := anc.Payload.Styles().Group(groupname); g != nil {
			v, _ := g.Cascade(key).Get(key)
			return v
		}
	}
	return style.NullStyle
}
