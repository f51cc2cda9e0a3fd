package style

import (
	"strings"

	"github.com/npillmayer/corebrowser/cssvalue"
)

// position is an enum type for the CSS position property.
type position uint16

// Enum values for type position.
const (
	positionUnset    position = iota
	positionStatic            // CSS static (default)
	positionRelative          // CSS relative
	positionAbsolute          // CSS absolute
	positionFixed             // CSS fixed
)

// PositionT is an option type for CSS positions.
type PositionT struct {
	offsets []PositionOffset
	kind    position
}

// PositionOffset is one of a position's Top/Right/Bottom/Left offsets.
type PositionOffset struct {
	Dim cssvalue.DimenT
	Dir PosDir
}

// PosDir is either Top, Right, Bottom or Left.
type PosDir uint8

const (
	Top PosDir = iota
	Right
	Bottom
	Left
)

// NormalizeOffsets normalizes offset properties (Top, Right, Bottom, Left) into
// a 4-way slice, ordered by PosDir. Invalid PosDir-s are silently dropped.
func NormalizeOffsets(offsets []PositionOffset) []PositionOffset {
	norm := make([]PositionOffset, 4)
	for i := Top; i <= Left; i++ {
		norm[i].Dir = i
	}
	for _, o := range offsets {
		if o.Dir >= Top && o.Dir <= Left {
			norm[int(o.Dir)] = o
		}
	}
	return norm
}

// ZeroOffsets returns (Top, Right, Bottom, Left) = (0, 0, 0, 0).
func ZeroOffsets() []PositionOffset {
	zeros := make([]PositionOffset, 4)
	for i := Top; i <= Left; i++ {
		zeros[i].Dir = i
	}
	return zeros
}

// Static creates a CSS position of value `static`.
func Static() PositionT {
	return PositionT{kind: positionStatic}
}

// Relative creates a CSS position of value `relative`, given optional offsets.
func Relative(offsets []PositionOffset) PositionT {
	return PositionT{kind: positionRelative, offsets: NormalizeOffsets(offsets)}
}

// Absolute creates a CSS position of value `absolute`, given optional offsets.
func Absolute(offsets []PositionOffset) PositionT {
	return PositionT{kind: positionAbsolute, offsets: NormalizeOffsets(offsets)}
}

// Fixed creates a CSS position of value `fixed`, given optional offsets.
func Fixed(offsets []PositionOffset) PositionT {
	return PositionT{kind: positionFixed, offsets: NormalizeOffsets(offsets)}
}

var positionStringMap = map[string]position{
	"static":   positionStatic,
	"relative": positionRelative,
	"absolute": positionAbsolute,
	"fixed":    positionFixed,
}

// Position returns an optional position type from a property string.
// It will never return an error, even with illegal input, but instead will
// return an unset position.
func Position(p Property) PositionT {
	p = Property(strings.ToLower(string(p)))
	if k, ok := positionStringMap[string(p)]; ok {
		return PositionT{kind: k}
	}
	return PositionT{}
}

// ---------------------------------------------------------------------------

func (p PositionT) Match() *PMatcher {
	return &PMatcher{pos: p}
}

type PMatcher struct {
	pos PositionT
}

func (m *PMatcher) IsKind(p PositionT) *PMatcher {
	if m.pos.kind == p.kind {
		return m
	}
	return nil
}

func (m *PMatcher) Absolute(o *[]PositionOffset) *PMatcher {
	if m.pos.kind == positionAbsolute {
		if o != nil {
			*o = m.pos.offsets
		}
		return m
	}
	return nil
}

func (m *PMatcher) Relative(o *[]PositionOffset) *PMatcher {
	if m.pos.kind == positionRelative {
		if o != nil {
			*o = m.pos.offsets
		}
		return m
	}
	return nil
}

func (m *PMatcher) Fixed(o *[]PositionOffset) *PMatcher {
	if m.pos.kind == positionFixed {
		if o != nil {
			*o = m.pos.offsets
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

type PositionPatterns[T any] struct {
	Unset    T
	Static   T
	Absolute T
	Relative T
	Fixed    T
	Default  T
}

func PositionPattern[T any](p PositionT) *PMatchExpr[T] {
	return &PMatchExpr[T]{pos: p}
}

// PMatchExpr is part of pattern matching for PositionT types and intended
// to be instantiated using PositionPattern() only.
type PMatchExpr[T any] struct {
	pos PositionT
}

func (m *PMatchExpr[T]) OneOf(patterns PositionPatterns[T]) T {
	switch m.pos.kind {
	case positionUnset:
		return patterns.Unset
	case positionStatic:
		return patterns.Static
	case positionAbsolute:
		return patterns.Absolute
	case positionRelative:
		return patterns.Relative
	case positionFixed:
		return patterns.Fixed
	}
	return patterns.Default
}

func (m *PMatchExpr[T]) With(o *[]PositionOffset) *PMatchExpr[T] {
	if o != nil {
		*o = m.pos.offsets
	}
	return m
}

func (m *PMatchExpr[T]) Const(x T) T {
	return x
}

// ---------------------------------------------------------------------------

// IsUnset returns true if p is unset.
func (p PositionT) IsUnset() bool {
	return p.kind == positionUnset
}

// IsRelative returns true if p represents a valid relative position.
func (p PositionT) IsRelative() bool {
	return p.kind == positionRelative
}

// IsAbsolute returns true if p represents a valid absolute position.
func (p PositionT) IsAbsolute() bool {
	return p.kind == positionAbsolute
}

// IsFixed returns true if p represents a fixed position.
func (p PositionT) IsFixed() bool {
	return p.kind == positionFixed
}
