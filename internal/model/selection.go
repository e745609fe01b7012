package model

// Selection is either a rectangle or an arbitrary cell mask, in canvas
// coordinates.
type Selection struct {
	rect Rectangle
	mask map[Position]struct{}
}

func NewRectSelection(r Rectangle) *Selection {
	return &Selection{rect: r}
}

func NewMaskSelection(cells []Position) *Selection {
	s := &Selection{mask: make(map[Position]struct{}, len(cells))}
	for _, p := range cells {
		s.mask[p] = struct{}{}
	}
	return s
}

func (s *Selection) IsMask() bool {
	return s.mask != nil
}

func (s *Selection) Contains(p Position) bool {
	if s.mask != nil {
		_, ok := s.mask[p]
		return ok
	}
	return s.rect.Contains(p)
}

// Bounds is the smallest rectangle holding every selected cell.
func (s *Selection) Bounds() Rectangle {
	if s.mask == nil {
		return s.rect
	}
	first := true
	var minP, maxP Position
	for p := range s.mask {
		if first {
			minP, maxP = p, p
			first = false
			continue
		}
		minP.X, minP.Y = min(minP.X, p.X), min(minP.Y, p.Y)
		maxP.X, maxP.Y = max(maxP.X, p.X), max(maxP.Y, p.Y)
	}
	if first {
		return Rectangle{}
	}
	return RectFromPoints(minP, maxP)
}
