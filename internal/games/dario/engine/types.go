// Package engine provides the deterministic simulation for the Dario pill
// puzzle game. It is UI-agnostic: it never renders, never touches the network
// or the disk and advances strictly by logical ticks supplied by a caller.
package engine

import "fmt"

// Color is the color of a virus or pill half.
type Color uint8

const (
	ColorNone Color = iota // Colorless objects (Empty, Destroyed)
	Color1
	Color2
	Color3
)

// Colors lists every playable color in order.
var Colors = []Color{Color1, Color2, Color3}

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case Color1:
		return "color1"
	case Color2:
		return "color2"
	case Color3:
		return "color3"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the three playable colors.
func (c Color) Valid() bool {
	return c >= Color1 && c <= Color3
}

// ObjectType is the kind of thing occupying a grid cell.
type ObjectType uint8

const (
	Empty ObjectType = iota
	Destroyed
	Virus
	PillSegment
	PillTop
	PillBottom
	PillLeft
	PillRight
)

// String returns the string representation of an object type.
func (t ObjectType) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Destroyed:
		return "Destroyed"
	case Virus:
		return "Virus"
	case PillSegment:
		return "PillSegment"
	case PillTop:
		return "PillTop"
	case PillBottom:
		return "PillBottom"
	case PillLeft:
		return "PillLeft"
	case PillRight:
		return "PillRight"
	default:
		return "Unknown"
	}
}

// HasColor reports whether objects of this type carry a color.
func (t ObjectType) HasColor() bool {
	return t >= Virus && t <= PillRight
}

// IsPillHalf reports whether the type is one half of a two-cell pill.
func (t ObjectType) IsPillHalf() bool {
	return t >= PillTop && t <= PillRight
}

// GridObject is the content of a single grid cell.
// Color is ColorNone for Empty and Destroyed.
type GridObject struct {
	Type  ObjectType
	Color Color
}

// EmptyObject returns an empty cell.
func EmptyObject() GridObject {
	return GridObject{Type: Empty}
}

// DestroyedObject returns a cell that is pending removal.
func DestroyedObject() GridObject {
	return GridObject{Type: Destroyed}
}

// Obj is a convenience constructor for colored objects.
func Obj(t ObjectType, c Color) GridObject {
	if !t.HasColor() {
		return GridObject{Type: t}
	}
	return GridObject{Type: t, Color: c}
}

// IsEmpty reports whether the cell is empty.
func (o GridObject) IsEmpty() bool {
	return o.Type == Empty
}

// IsVirus reports whether the cell holds a virus.
func (o GridObject) IsVirus() bool {
	return o.Type == Virus
}

// CanFall reports whether gravity applies to this object during a cascade.
func (o GridObject) CanFall() bool {
	return o.Type == PillSegment || o.Type.IsPillHalf()
}

// String returns a compact representation, e.g. "Virus(color2)".
func (o GridObject) String() string {
	if !o.Type.HasColor() {
		return o.Type.String()
	}
	return fmt.Sprintf("%s(%s)", o.Type, o.Color)
}

// Location is a (row, col) pair, 0-indexed, row-major.
type Location struct {
	Row int
	Col int
}

// Loc is a convenience constructor for Location.
func Loc(row, col int) Location {
	return Location{Row: row, Col: col}
}

// String returns a string representation of the location.
func (l Location) String() string {
	return fmt.Sprintf("[%d,%d]", l.Row, l.Col)
}

// Add returns the location offset by (dRow, dCol).
func (l Location) Add(dRow, dCol int) Location {
	return Location{Row: l.Row + dRow, Col: l.Col + dCol}
}

// Direction is one of the four cardinal grid directions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}
