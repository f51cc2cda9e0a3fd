package layout

import (
	"fmt"

	"github.com/npillmayer/corebrowser/dom"
	"github.com/npillmayer/corebrowser/style"
	"github.com/npillmayer/corebrowser/styledtree"
	"github.com/npillmayer/corebrowser/tree"
)

// BoxType is the kind of a layout box.
type BoxType int

// Values for BoxType.
const (
	TypeBlock BoxType = iota
	TypeInline
	TypeAnonymous
)

func (t BoxType) String() string {
	switch t {
	case TypeBlock:
		return "Block"
	case TypeInline:
		return "Inline"
	case TypeAnonymous:
		return "Anonymous"
	}
	return "?"
}

// FormattingContext is the layout regime governing a box's direct
// children: Block stacks them vertically, Inline flows them horizontally.
// ContextUnset means no context could be determined (the box is empty or
// not a block-container).
type FormattingContext int

// Values for FormattingContext.
const (
	ContextUnset FormattingContext = iota
	ContextBlock
	ContextInline
)

func (c FormattingContext) String() string {
	switch c {
	case ContextBlock:
		return "Block"
	case ContextInline:
		return "Inline"
	}
	return "unset"
}

// Box is a node of the layout tree: a box type, an optional backing
// styled node (nil for anonymous boxes), the formatting context this box
// establishes for its own children, and the formatting context inherited
// from its parent.
type Box struct {
	tree.Node[*Box]
	styled        *tree.Node[*styledtree.StyNode] // nil for anonymous boxes
	boxType       BoxType
	context       FormattingContext
	parentContext FormattingContext
}

func newBox(t BoxType, sn *tree.Node[*styledtree.StyNode]) *Box {
	b := &Box{boxType: t, styled: sn}
	b.Payload = b
	return b
}

// Type returns the box's type.
func (b *Box) Type() BoxType { return b.boxType }

// Context returns the formatting context this box establishes for its
// own children.
func (b *Box) Context() FormattingContext { return b.context }

// ParentContext returns the formatting context inherited from this box's
// parent.
func (b *Box) ParentContext() FormattingContext { return b.parentContext }

// StyledNode returns the backing styled node, or nil for anonymous boxes.
func (b *Box) StyledNode() *tree.Node[*styledtree.StyNode] {
	return b.styled
}

// TagName returns the backing DOM element's tag name, or "" for anonymous
// or text-backed boxes.
func (b *Box) TagName() string {
	if b.styled == nil {
		return ""
	}
	dn := b.styled.Payload.DOMNode()
	if dn.Kind != dom.ElementNode {
		return ""
	}
	return dn.TagName()
}

func (b *Box) String() string {
	name := b.TagName()
	if name != "" {
		return fmt.Sprintf("%s(%s) ctx=%s", b.boxType, name, b.context)
	}
	return fmt.Sprintf("%s ctx=%s", b.boxType, b.context)
}

// Build transforms a styled node tree into a layout tree, applying
// box-type assignment, anonymous-box wrapping, and formatting-context
// assignment as described by the box generation rules. Returns nil if the
// root itself produces no box (e.g. display:none on the document element).
func Build(styledRoot *tree.Node[*styledtree.StyNode]) *tree.Node[*Box] {
	if styledRoot == nil {
		return nil
	}
	box, ok := buildBox(styledRoot)
	if !ok {
		return nil
	}
	box.parentContext = ContextUnset
	return &box.Node
}

func buildBox(sn *tree.Node[*styledtree.StyNode]) (*Box, bool) {
	styNode := sn.Payload
	domNode := styNode.DOMNode()

	if domNode.Kind == dom.TextNode || domNode.Kind == dom.CDataSectionNode {
		return newBox(TypeAnonymous, sn), true
	}
	if domNode.Kind != dom.ElementNode && domNode.Kind != dom.DocumentNode {
		return nil, false
	}

	boxType, ok := boxTypeFor(styNode)
	if !ok {
		tracer().Debugf("node %v produces no box (display:none or unrecognized)", domNode)
		return nil, false
	}
	b := newBox(boxType, sn)

	var rawChildren []*Box
	for _, ch := range sn.Children(true) {
		if cb, ok := buildBox(ch); ok {
			rawChildren = append(rawChildren, cb)
		}
	}
	wrapped := wrapAnonymous(rawChildren)
	assignContext(b, wrapped)
	for _, c := range wrapped {
		c.parentContext = b.context
		b.AddChild(&c.Node)
	}
	return b, true
}

// boxTypeFor assigns a box type from the node's computed 'display'
// property. A text node always yields Anonymous (handled by the caller
// before this is reached); an element yields Block or Inline according to
// its display property, or no box at all for display:none or an
// unrecognized display keyword.
func boxTypeFor(styNode *styledtree.StyNode) (BoxType, bool) {
	domNode := styNode.DOMNode()
	if domNode.Kind == dom.DocumentNode {
		return TypeBlock, true
	}
	value, err := style.GetCascadedProperty(styNode, "display")
	if err != nil || value.IsEmpty() {
		return TypeBlock, true
	}
	mode, err := style.ParseDisplay(value.String())
	if err != nil {
		return TypeBlock, false
	}
	if mode == style.DisplayNone {
		return TypeBlock, false
	}
	if mode.IsBlockLevel() {
		return TypeBlock, true
	}
	if mode.Contains(style.InlineMode) {
		return TypeInline, true
	}
	return TypeBlock, false
}

// assignContext implements §4.5's formatting-context rule: Block if any
// direct child is Block; Inline if the box is a block container (any box
// type but Inline) with children, none of them Block; otherwise unset.
func assignContext(b *Box, children []*Box) {
	for _, c := range children {
		if c.boxType == TypeBlock {
			b.context = ContextBlock
			return
		}
	}
	if len(children) > 0 && b.boxType != TypeInline {
		b.context = ContextInline
		return
	}
	b.context = ContextUnset
}

// wrapAnonymous groups consecutive runs of non-Block boxes under a single
// Anonymous wrapper whenever the sibling list also contains at least one
// Block box, satisfying the invariant that a Block-context box exposes
// only Block or Anonymous children at its direct level. When no Block
// sibling is present the children are returned unchanged — wrapping a
// lone already-anonymous box, or a set of purely inline content with no
// surrounding block, would add nothing.
func wrapAnonymous(children []*Box) []*Box {
	hasBlock := false
	for _, c := range children {
		if c.boxType == TypeBlock {
			hasBlock = true
			break
		}
	}
	if !hasBlock {
		return children
	}
	var result []*Box
	var run []*Box
	flush := func() {
		if len(run) == 0 {
			return
		}
		if len(run) == 1 && run[0].boxType == TypeAnonymous {
			result = append(result, run[0])
			run = nil
			return
		}
		wrapper := newAnonymousWrapper()
		assignContext(wrapper, run)
		for _, r := range run {
			r.parentContext = wrapper.context
			wrapper.AddChild(&r.Node)
		}
		result = append(result, wrapper)
		run = nil
	}
	for _, c := range children {
		if c.boxType == TypeBlock {
			flush()
			result = append(result, c)
			continue
		}
		run = append(run, c)
	}
	flush()
	return result
}

func newAnonymousWrapper() *Box {
	b := &Box{boxType: TypeAnonymous}
	b.Payload = b
	return b
}
