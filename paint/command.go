package paint

import "fmt"

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// CornerRadii holds a per-corner radius for a rounded rectangle.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// RRect is a rounded rectangle: a Rect plus per-corner radii.
type RRect struct {
	Rect  Rect
	Radii CornerRadii
}

// CommandKind tags the closed vocabulary of paint commands.
type CommandKind string

// Values for CommandKind — the complete, closed vocabulary.
const (
	KindFillRect   CommandKind = "FillRect"
	KindFillRRect  CommandKind = "FillRRect"
	KindStrokeRect CommandKind = "StrokeRect"
)

// DisplayCommand is a single entry in the serializable display list handed
// to a backend rasterizer. Exactly one of Rect/RRect is meaningful,
// selected by Kind.
type DisplayCommand struct {
	Kind  CommandKind `json:"kind"`
	Rect  Rect        `json:"rect,omitempty"`
	RRect RRect       `json:"rrect,omitempty"`
	Color Color       `json:"color"`
}

// FillRect constructs a FillRect command.
func FillRect(rect Rect, color Color) DisplayCommand {
	return DisplayCommand{Kind: KindFillRect, Rect: rect, Color: color}
}

// FillRRect constructs a FillRRect command.
func FillRRect(rrect RRect, color Color) DisplayCommand {
	return DisplayCommand{Kind: KindFillRRect, RRect: rrect, Color: color}
}

// StrokeRect constructs a StrokeRect command.
func StrokeRect(rect Rect, color Color) DisplayCommand {
	return DisplayCommand{Kind: KindStrokeRect, Rect: rect, Color: color}
}
