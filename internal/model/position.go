package model

import "fmt"

// Position is a cell coordinate. Canvas, layer offsets and selections all
// share the same coordinate space.
type Position struct {
	X, Y int
}

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

type Size struct {
	Width, Height int
}

// Contains reports whether the layer-local position p lies inside s.
func (s Size) Contains(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < s.Width && p.Y < s.Height
}

// Rectangle is an axis aligned cell rectangle. Start is the top left cell.
type Rectangle struct {
	Start Position
	Size  Size
}

// RectFromPoints builds the rectangle spanning a and b inclusive, whatever
// their order.
func RectFromPoints(a, b Position) Rectangle {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rectangle{
		Start: Position{X: minX, Y: minY},
		Size:  Size{Width: maxX - minX + 1, Height: maxY - minY + 1},
	}
}

func (r Rectangle) Left() int   { return r.Start.X }
func (r Rectangle) Top() int    { return r.Start.Y }
func (r Rectangle) Right() int  { return r.Start.X + r.Size.Width - 1 }  // inclusive
func (r Rectangle) Bottom() int { return r.Start.Y + r.Size.Height - 1 } // inclusive

func (r Rectangle) Contains(p Position) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

func (r Rectangle) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}
