package paint

import (
	"strconv"

	"github.com/npillmayer/corebrowser/layout"
	"github.com/npillmayer/corebrowser/style"
	"github.com/npillmayer/corebrowser/tree"
)

// Emit traverses a laid-out box tree in document order and returns the
// ordered display list of paint commands.
//
// Box geometry (position and size) is produced by a box-model pass this
// module does not implement — §1 scopes layout to box type and
// formatting-context assignment only, not box dimensioning — so every
// emitted command carries a zero Rect/RRect as a geometry placeholder;
// the backend rasterizer is expected to combine the display list with
// positions computed by its own box-model pass.
func Emit(root *tree.Node[*layout.Box]) []DisplayCommand {
	if root == nil {
		return nil
	}
	var commands []DisplayCommand
	emitBox(root, &commands)
	return commands
}

func emitBox(n *tree.Node[*layout.Box], commands *[]DisplayCommand) {
	box := n.Payload
	sn := box.StyledNode()
	if sn != nil {
		pmap := sn.Payload.Styles()
		if pmap != nil {
			emitBackground(box, pmap, commands)
			emitBorder(box, pmap, commands)
		}
	}
	for _, ch := range n.Children(true) {
		emitBox(ch, commands)
	}
}

func emitBackground(box *layout.Box, pmap *style.PropertyMap, commands *[]DisplayCommand) {
	pg := pmap.Group(style.PGColor)
	if pg == nil {
		return
	}
	v, ok := pg.Get("background-color")
	if !ok || v.IsEmpty() || v == "transparent" {
		return
	}
	color := colorFromProperty(v)
	*commands = append(*commands, FillRect(Rect{}, color))
	tracer().Debugf("emitted FillRect for %v background %s", box, v)
}

func emitBorder(box *layout.Box, pmap *style.PropertyMap, commands *[]DisplayCommand) {
	pg := pmap.Group(style.PGBorder)
	if pg == nil {
		return
	}
	anySide := false
	for _, side := range []string{"top", "right", "bottom", "left"} {
		if v, ok := pg.Get("border-" + side + "-width"); ok && !v.IsEmpty() && v != "0" {
			anySide = true
			break
		}
	}
	if !anySide {
		return
	}
	colorProp, _ := pg.Get("border-top-color")
	radii := cornerRadiiFromGroup(pg)
	if radii != (CornerRadii{}) {
		*commands = append(*commands, FillRRect(RRect{Radii: radii}, colorFromProperty(colorProp)))
		return
	}
	*commands = append(*commands, StrokeRect(Rect{}, colorFromProperty(colorProp)))
	tracer().Debugf("emitted StrokeRect for %v border", box)
}

func cornerRadiiFromGroup(pg *style.PropertyGroup) CornerRadii {
	parse := func(key string) float64 {
		v, ok := pg.Get(key)
		if !ok {
			return 0
		}
		return parsePixelValue(v.String())
	}
	return CornerRadii{
		TopLeft:     parse("border-top-left-radius"),
		TopRight:    parse("border-top-right-radius"),
		BottomRight: parse("border-bottom-right-radius"),
		BottomLeft:  parse("border-bottom-left-radius"),
	}
}

// colorFromProperty resolves a computed color property to an RGBA Color,
// reusing the named-color table style.Property.Color() already carries.
// An unrecognized value resolves to opaque black, style.Property.Color()'s
// own fallback; "default", for which Color() returns nil, resolves to the
// zero Color (fully transparent).
func colorFromProperty(v style.Property) Color {
	c := v.Color()
	if c == nil {
		return Color{}
	}
	r, g, b, a := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

// parsePixelValue strips a trailing CSS unit (e.g. "3px", "1.5em") and
// returns the leading numeric magnitude; unit-aware conversion belongs to
// the box-model pass this module does not implement.
func parsePixelValue(s string) float64 {
	i := 0
	for i < len(s) && (s[i] == '-' || s[i] == '.' || (s[i] >= '0' && s[i] <= '9')) {
		i++
	}
	if i == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0
	}
	return n
}
