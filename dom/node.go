package dom

import "strings"

// NodeKind identifies the kind of a Node. Values match the W3C DOM Level 1
// nodeType constants, so code that has to interoperate with that numbering
// (debug dumps, tests ported from the reference implementation) doesn't
// need a translation table.
type NodeKind uint8

const (
	_ NodeKind = iota // 0 is not a valid node kind
	ElementNode
	_ // 2: Attr, not modeled as a Node in this tree
	TextNode
	CDataSectionNode
	_ // 5: EntityReference, obsolete
	_ // 6: Entity, obsolete
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CDataSectionNode:
		return "cdata-section"
	case ProcessingInstructionNode:
		return "processing-instruction"
	case CommentNode:
		return "comment"
	case DocumentNode:
		return "document"
	case DocumentTypeNode:
		return "document-type"
	case DocumentFragmentNode:
		return "document-fragment"
	}
	return "unknown"
}

// Node is a single entry in the document tree. Every node kind (element,
// text, comment, ...) shares this struct; the Kind field and the Element/
// CharacterData payloads discriminate what it actually represents.
//
// The five link fields are the tree's ONLY ownership/adjacency model.
// Parent, PrevSibling and LastChild point "backwards" (towards the root or
// towards an earlier sibling); FirstChild and NextSibling point "forwards".
// Inserting or removing a node must keep all four directions of all
// affected neighbors consistent — see InsertBefore/AppendChild/Remove.
type Node struct {
	Kind NodeKind

	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	NextSibling *Node
	PrevSibling *Node

	// Element is non-nil iff Kind == ElementNode.
	Element *Element
	// Data holds the node's string payload: the tag name for elements
	// (mirrored in Element.TagName), the character data for
	// Text/CDataSection/Comment/ProcessingInstruction nodes, or the
	// document-type name for DocumentTypeNode.
	Data string
}

// NewDocument creates an empty document node, the root of a parse tree.
func NewDocument() *Node {
	return &Node{Kind: DocumentNode}
}

// NewDocumentFragment creates a detached document-fragment node.
func NewDocumentFragment() *Node {
	return &Node{Kind: DocumentFragmentNode}
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{Kind: TextNode, Data: data}
}

// NewComment creates a detached comment node.
func NewComment(data string) *Node {
	return &Node{Kind: CommentNode, Data: data}
}

// NewDocumentType creates a detached doctype node.
func NewDocumentType(name string) *Node {
	return &Node{Kind: DocumentTypeNode, Data: name}
}

// NewElement creates a detached element node for tagName, wiring up the
// ElementHooks appropriate for that tag (see element.go).
func NewElement(tagName string) *Node {
	el := newElementForTag(tagName)
	return &Node{Kind: ElementNode, Element: el, Data: tagName}
}

// TagName returns the element's tag name, or "" for non-element nodes.
func (n *Node) TagName() string {
	if n == nil || n.Kind != ElementNode {
		return ""
	}
	return n.Data
}

// IsElement reports whether n is an element with the given tag name
// (case-insensitive, matching HTML's ASCII-case-insensitive tag matching).
func (n *Node) IsElement(tagName string) bool {
	return n != nil && n.Kind == ElementNode && strings.EqualFold(n.Data, tagName)
}

// HasChildNodes reports whether n has at least one child.
func (n *Node) HasChildNodes() bool {
	return n != nil && n.FirstChild != nil
}

// ChildNodes returns n's children as a slice, in document order.
func (n *Node) ChildNodes() []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// AppendChild appends child as the last child of n, detaching it from any
// previous tree position first.
func (n *Node) AppendChild(child *Node) {
	if n == nil || child == nil {
		return
	}
	child.Remove()
	child.Parent = n
	child.PrevSibling = n.LastChild
	child.NextSibling = nil
	if n.LastChild != nil {
		n.LastChild.NextSibling = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
	if child.Kind == ElementNode && child.Element != nil && child.Element.Hooks != nil {
		child.Element.Hooks.OnInserted(child)
	}
}

// InsertBefore inserts newChild as n's child immediately before reference.
// If reference is nil, newChild is appended as the last child, matching
// the DOM InsertBefore contract.
func (n *Node) InsertBefore(newChild, reference *Node) {
	if n == nil || newChild == nil {
		return
	}
	if reference == nil {
		n.AppendChild(newChild)
		return
	}
	newChild.Remove()
	newChild.Parent = n
	newChild.NextSibling = reference
	newChild.PrevSibling = reference.PrevSibling
	if reference.PrevSibling != nil {
		reference.PrevSibling.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	reference.PrevSibling = newChild
	if newChild.Kind == ElementNode && newChild.Element != nil && newChild.Element.Hooks != nil {
		newChild.Element.Hooks.OnInserted(newChild)
	}
}

// Remove detaches n from its parent and siblings. It is a no-op if n is
// already detached. Children of n are left untouched, still reachable from
// n itself; n simply stops being reachable from its old parent.
func (n *Node) Remove() {
	if n == nil || n.Parent == nil {
		return
	}
	if n.PrevSibling != nil {
		n.PrevSibling.NextSibling = n.NextSibling
	} else {
		n.Parent.FirstChild = n.NextSibling
	}
	if n.NextSibling != nil {
		n.NextSibling.PrevSibling = n.PrevSibling
	} else {
		n.Parent.LastChild = n.PrevSibling
	}
	n.Parent = nil
	n.NextSibling = nil
	n.PrevSibling = nil
}

// TextContent concatenates the character data of n and all its text-kind
// descendants, in document order, matching the DOM textContent algorithm
// restricted to the node kinds this tree supports.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case TextNode, CDataSectionNode, CommentNode:
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == CommentNode {
			continue
		}
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// SetAttribute sets an attribute on an element node, invoking the
// element's OnAttributeChange hook if one is registered. It is a no-op on
// non-element nodes.
func (n *Node) SetAttribute(name, value string) {
	if n == nil || n.Kind != ElementNode || n.Element == nil {
		return
	}
	old, had := n.Element.Attr(name)
	n.Element.setAttr(name, value)
	if n.Element.Hooks != nil {
		n.Element.Hooks.OnAttributeChange(n, name, old, value, had)
	}
}

// Attr returns an element's attribute value and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Kind != ElementNode || n.Element == nil {
		return "", false
	}
	return n.Element.Attr(name)
}
