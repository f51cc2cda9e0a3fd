/*
Package domdbg implements helpers to debug a DOM / styled-node tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package domdbg

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/corebrowser/dom"
	"github.com/npillmayer/corebrowser/style"
	"github.com/npillmayer/corebrowser/styledtree"
	"github.com/npillmayer/corebrowser/tree"
	"github.com/xlab/treeprint"
)

var defaultGroups = []string{
	style.PGMargins,
	style.PGPadding,
	style.PGBorder,
	style.PGDisplay,
}

// Dump renders a DOM tree as an ASCII tree, one line per node, annotated
// with tag name or a shortened text-node preview.
func Dump(n *dom.Node) string {
	if n == nil {
		return "(empty)"
	}
	root := treeprint.New()
	root.SetValue(nodeLabel(n))
	domChildren(n, root)
	return root.String()
}

func domChildren(n *dom.Node, branch treeprint.Tree) {
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		b := branch.AddBranch(nodeLabel(ch))
		domChildren(ch, b)
	}
}

func nodeLabel(n *dom.Node) string {
	switch n.Kind {
	case dom.TextNode, dom.CommentNode, dom.CDataSectionNode:
		return shortText(n.Data)
	default:
		return fmt.Sprintf("<%s>", n.TagName())
	}
}

// DumpStyled renders a styled-node tree as an ASCII tree, listing for each
// node the DOM tag name plus the computed properties of the requested
// style groups (defaulting to margins/padding/border/display).
func DumpStyled(sn *tree.Node[*styledtree.StyNode], styleGroups []string) string {
	if sn == nil {
		return "(empty)"
	}
	if styleGroups == nil {
		styleGroups = defaultGroups
	}
	root := treeprint.New()
	root.SetValue(styledNodeLabel(sn, styleGroups))
	styledChildren(sn, root, styleGroups)
	return root.String()
}

func styledChildren(sn *tree.Node[*styledtree.StyNode], branch treeprint.Tree, styleGroups []string) {
	for _, ch := range sn.Children(true) {
		b := branch.AddBranch(styledNodeLabel(ch, styleGroups))
		styledChildren(ch, b, styleGroups)
	}
}

func styledNodeLabel(sn *tree.Node[*styledtree.StyNode], styleGroups []string) string {
	styNode := sn.Payload
	label := fmt.Sprintf("<%s>", styNode.DOMTagName())
	pmap := styNode.Styles()
	if pmap == nil {
		return label
	}
	var props []string
	for _, gname := range styleGroups {
		pg := pmap.Group(gname)
		if pg == nil {
			continue
		}
		for _, kv := range pg.Properties() {
			props = append(props, fmt.Sprintf("%s=%s", kv.Key, kv.Value))
		}
	}
	if len(props) == 0 {
		return label
	}
	return label + " [" + strings.Join(props, " ") + "]"
}

// Dotty is a helper for testing. Given a DOM node and a testing.T, it logs
// an ASCII dump of the DOM tree rooted at n.
func Dotty(n *dom.Node, t *testing.T) {
	t.Logf("DOM tree:\n%s", Dump(n))
}

func shortText(data string) string {
	s := strings.ReplaceAll(data, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	if len(s) > 20 {
		s = s[:20] + "..."
	}
	return fmt.Sprintf("%q", s)
}
