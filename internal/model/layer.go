package model

// Role tags how a layer takes part in compositing.
type Role int

const (
	RoleNormal Role = iota
	RoleOverlay
	RoleBackground
)

func (r Role) String() string {
	switch r {
	case RoleOverlay:
		return "overlay"
	case RoleBackground:
		return "background"
	default:
		return "normal"
	}
}

// Layer is an offset plane of cells. Positions passed to Get and Set are
// layer local; the canvas translates through Offset.
type Layer struct {
	Title            string
	Offset           Position
	IsVisible        bool
	IsLocked         bool
	IsPositionLocked bool
	HasAlpha         bool
	Role             Role

	// ForcedAttr, when set, replaces the attribute of every cell the layer
	// contributes to the composite (fixed attribute fonts).
	ForcedAttr *Attribute

	size  Size
	cells []Cell
}

// NewLayer returns a visible, transparent layer of the given size.
func NewLayer(title string, width, height int) *Layer {
	l := &Layer{
		Title:     title,
		IsVisible: true,
		HasAlpha:  true,
	}
	l.Resize(Size{Width: width, Height: height})
	return l
}

// NewBackgroundLayer returns an opaque layer filled with blank cells.
func NewBackgroundLayer(width, height int) *Layer {
	l := &Layer{
		Title:     "Background",
		IsVisible: true,
		Role:      RoleBackground,
	}
	l.Resize(Size{Width: width, Height: height})
	return l
}

func (l *Layer) Size() Size {
	return l.size
}

// Rect is the layer's extent in canvas coordinates.
func (l *Layer) Rect() Rectangle {
	return Rectangle{Start: l.Offset, Size: l.size}
}

// DefaultCell is what an untouched cell of this layer holds.
func (l *Layer) DefaultCell() Cell {
	if l.HasAlpha {
		return Transparent
	}
	return Blank
}

// Get returns the cell at the local position, or Transparent outside the
// layer.
func (l *Layer) Get(pos Position) Cell {
	if !l.size.Contains(pos) {
		return Transparent
	}
	return l.cells[pos.Y*l.size.Width+pos.X]
}

// Set stores c at the local position. Locked layers and positions outside
// the layer are ignored.
func (l *Layer) Set(pos Position, c Cell) {
	if l.IsLocked || !l.size.Contains(pos) {
		return
	}
	l.cells[pos.Y*l.size.Width+pos.X] = c
}

// Restore stores c regardless of the lock flags. Undo replay uses it so a
// layer locked after an edit can still be rolled back.
func (l *Layer) Restore(pos Position, c Cell) {
	if !l.size.Contains(pos) {
		return
	}
	l.cells[pos.Y*l.size.Width+pos.X] = c
}

// MoveBy shifts the layer offset.
func (l *Layer) MoveBy(delta Position) error {
	if l.IsPositionLocked {
		return ErrLayerLocked
	}
	l.Offset = l.Offset.Add(delta)
	return nil
}

// Resize changes the layer size, keeping the cells that still fit.
func (l *Layer) Resize(size Size) {
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	cells := make([]Cell, size.Width*size.Height)
	def := l.DefaultCell()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			c := def
			if x < l.size.Width && y < l.size.Height {
				c = l.cells[y*l.size.Width+x]
			}
			cells[y*size.Width+x] = c
		}
	}
	l.size = size
	l.cells = cells
}

// Clear resets every cell to the layer default.
func (l *Layer) Clear() {
	def := l.DefaultCell()
	for i := range l.cells {
		l.cells[i] = def
	}
}

// Clone returns a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	n := *l
	n.cells = append([]Cell(nil), l.cells...)
	if l.ForcedAttr != nil {
		attr := *l.ForcedAttr
		n.ForcedAttr = &attr
	}
	return &n
}

// Equal reports whether both layers hold the same cells and metadata.
func (l *Layer) Equal(o *Layer) bool {
	if l.Title != o.Title || l.Offset != o.Offset || l.size != o.size ||
		l.IsVisible != o.IsVisible || l.IsLocked != o.IsLocked ||
		l.IsPositionLocked != o.IsPositionLocked || l.HasAlpha != o.HasAlpha ||
		l.Role != o.Role {
		return false
	}
	if (l.ForcedAttr == nil) != (o.ForcedAttr == nil) {
		return false
	}
	if l.ForcedAttr != nil && *l.ForcedAttr != *o.ForcedAttr {
		return false
	}
	for i := range l.cells {
		if l.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Properties is the editable metadata of a layer, journaled as a whole.
type Properties struct {
	Title            string
	IsVisible        bool
	IsLocked         bool
	IsPositionLocked bool
	HasAlpha         bool
}

func (l *Layer) Properties() Properties {
	return Properties{
		Title:            l.Title,
		IsVisible:        l.IsVisible,
		IsLocked:         l.IsLocked,
		IsPositionLocked: l.IsPositionLocked,
		HasAlpha:         l.HasAlpha,
	}
}

func (l *Layer) SetProperties(p Properties) {
	l.Title = p.Title
	l.IsVisible = p.IsVisible
	l.IsLocked = p.IsLocked
	l.IsPositionLocked = p.IsPositionLocked
	l.HasAlpha = p.HasAlpha
}
