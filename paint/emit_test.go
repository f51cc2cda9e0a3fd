package paint_test

import (
	"testing"

	"github.com/npillmayer/corebrowser/dom"
	"github.com/npillmayer/corebrowser/layout"
	"github.com/npillmayer/corebrowser/paint"
	"github.com/npillmayer/corebrowser/style"
	"github.com/npillmayer/corebrowser/styledtree"
	"github.com/npillmayer/corebrowser/tree"
	"github.com/stretchr/testify/assert"
)

// styled wraps a dom node into a styled-tree node carrying the given
// declarations, linking it under parent if given.
func styled(parent *tree.Node[*styledtree.StyNode], n *dom.Node, decls map[string]string) *tree.Node[*styledtree.StyNode] {
	sn := styledtree.NewNodeForDOMNode(n)
	pmap := style.NewPropertyMap()
	groups := map[string]*style.PropertyGroup{}
	for key, value := range decls {
		gname := style.GroupNameFromPropertyKey(key)
		pg, ok := groups[gname]
		if !ok {
			pg = style.NewPropertyGroup(gname)
			groups[gname] = pg
		}
		pg.Set(key, style.Property(value))
	}
	for _, pg := range groups {
		pmap = pmap.AddAllFromGroup(pg, true)
	}
	sn.Payload.SetStyles(pmap)
	if parent != nil {
		parent.AddChild(sn)
	}
	return sn
}

func TestEmitBackgroundColorProducesFillRect(t *testing.T) {
	div := dom.NewElement("div")
	divNode := styled(nil, div, map[string]string{
		"display":          "block",
		"background-color": "red",
	})
	root := layout.Build(divNode)
	commands := paint.Emit(root)

	if !assert.Len(t, commands, 1) {
		return
	}
	assert.Equal(t, paint.KindFillRect, commands[0].Kind)
	assert.Equal(t, paint.Color{R: 0xff, A: 0xff}, commands[0].Color)
}

func TestEmitOrdersCommandsInDocumentOrder(t *testing.T) {
	parent := dom.NewElement("div")
	child := dom.NewElement("span")
	parent.AppendChild(child)

	parentNode := styled(nil, parent, map[string]string{
		"display":          "block",
		"background-color": "red",
	})
	styled(parentNode, child, map[string]string{
		"display":          "inline",
		"background-color": "blue",
	})

	root := layout.Build(parentNode)
	commands := paint.Emit(root)

	if !assert.Len(t, commands, 2) {
		return
	}
	assert.Equal(t, paint.Color{R: 0xff, A: 0xff}, commands[0].Color)
	assert.Equal(t, paint.Color{B: 0xff, A: 0xff}, commands[1].Color)
}

func TestEmitSkipsNodesWithoutColorProperties(t *testing.T) {
	div := dom.NewElement("div")
	divNode := styled(nil, div, map[string]string{"display": "block"})
	root := layout.Build(divNode)
	commands := paint.Emit(root)
	assert.Empty(t, commands)
}

func TestEmitNilRootReturnsNoCommands(t *testing.T) {
	assert.Nil(t, paint.Emit(nil))
}
