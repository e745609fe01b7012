package raster

import "ansiedit/internal/model"

// AddLine adds the cells of a Bresenham line from a to b. Endpoints are
// ordered first so the line does not depend on drag direction.
func (s *ScanLines) AddLine(a, b model.Position) {
	if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
		a, b = b, a
	}
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx := 1
	if a.X > b.X {
		sx = -1
	}
	sy := 1
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	x, y := a.X, a.Y
	for {
		s.AddSpan(y, x, x)
		if x == b.X && y == b.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// AddRectangle adds every cell of r.
func (s *ScanLines) AddRectangle(r model.Rectangle) {
	if r.IsEmpty() {
		return
	}
	for y := r.Top(); y <= r.Bottom(); y++ {
		s.AddSpan(y, r.Left(), r.Right())
	}
}

// AddRectangleOutline adds the four edges of r.
func (s *ScanLines) AddRectangleOutline(r model.Rectangle) {
	if r.IsEmpty() {
		return
	}
	tl := model.Position{X: r.Left(), Y: r.Top()}
	tr := model.Position{X: r.Right(), Y: r.Top()}
	bl := model.Position{X: r.Left(), Y: r.Bottom()}
	br := model.Position{X: r.Right(), Y: r.Bottom()}
	s.AddLine(tl, tr)
	s.AddLine(bl, br)
	s.AddLine(tl, bl)
	s.AddLine(tr, br)
}

// Shape is a drawable primitive.
type Shape int

const (
	ShapeLine Shape = iota
	ShapeRectangle
	ShapeEllipse
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeEllipse:
		return "ellipse"
	default:
		return "line"
	}
}

// AddShape rasterizes shape between the drag points start and cur. The
// bounding rectangle is normalized, so the drag may go in any direction.
func (s *ScanLines) AddShape(shape Shape, filled bool, start, cur model.Position) {
	r := model.RectFromPoints(start, cur)
	switch shape {
	case ShapeLine:
		s.AddLine(start, cur)
	case ShapeRectangle:
		if filled {
			s.AddRectangle(r)
		} else {
			s.AddRectangleOutline(r)
		}
	case ShapeEllipse:
		if filled {
			s.AddEllipse(r)
		} else {
			s.AddEllipseOutline(r)
		}
	}
}

// AddEllipse adds the filled ellipse inscribed in r.
//
// Cells are tested at their centres against the ellipse touching the outer
// cell edges of r, in doubled integer coordinates:
//
//	dx² B² + dy² A² <= A² B²   with A = 2·rx, B = 2·ry
//
// The left end of each row is searched and the right end mirrored, so the
// region is symmetric about both axes of r. Rows that would be empty keep
// their centre cell.
func (s *ScanLines) AddEllipse(r model.Rectangle) {
	if r.IsEmpty() {
		return
	}
	x0, x1 := r.Left(), r.Right()
	y0, y1 := r.Top(), r.Bottom()
	a := int64(r.Size.Width)
	b := int64(r.Size.Height)
	a2, b2 := a*a, b*b
	limit := a2 * b2
	cx2 := int64(x0 + x1)
	cy2 := int64(y0 + y1)

	for y := y0; y <= y1; y++ {
		dy := 2*int64(y) - cy2
		left := -1
		for x := x0; 2*x <= x0+x1; x++ {
			dx := 2*int64(x) - cx2
			if dx*dx*b2+dy*dy*a2 <= limit {
				left = x
				break
			}
		}
		if left < 0 {
			left = (x0 + x1) / 2
		}
		right := x0 + x1 - left
		s.AddSpan(y, left, right)
	}
}

// AddEllipseOutline adds the boundary cells of the ellipse inscribed in r.
func (s *ScanLines) AddEllipseOutline(r model.Rectangle) {
	filled := New()
	filled.AddEllipse(r)
	filled.Outline(s.AddPoint)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
