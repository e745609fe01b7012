// Package edit is the mutation gateway of a document. Every change to
// canvas cells or layers goes through State, which journals it in the undo
// log.
package edit

import (
	"fmt"

	"go.uber.org/zap"

	"ansiedit/internal/model"
	"ansiedit/internal/undo"
)

// Caret is the text cursor together with the attribute new characters get.
type Caret struct {
	Pos      model.Position
	Attr     model.Attribute
	FontPage int
}

// FillScope selects where the fill tool reads cells from.
type FillScope int

const (
	// FillLayer reads the raw current layer.
	FillLayer FillScope = iota
	// FillComposite reads what is visible through all layers.
	FillComposite
)

func ParseFillScope(s string) (FillScope, error) {
	switch s {
	case "", "layer":
		return FillLayer, nil
	case "composite":
		return FillComposite, nil
	}
	return FillLayer, fmt.Errorf("unknown fill scope %q", s)
}

type State struct {
	canvas       *model.Canvas
	log          *undo.Log
	caret        Caret
	currentLayer int
	fillScope    FillScope
	drag         drag
	logger       *zap.Logger
}

type Option func(*State)

func WithLogger(l *zap.Logger) Option {
	return func(s *State) { s.logger = l }
}

func WithFillScope(scope FillScope) Option {
	return func(s *State) { s.fillScope = scope }
}

// NewState wraps c. The current layer starts at the top of the stack.
func NewState(c *model.Canvas, opts ...Option) *State {
	s := &State{
		canvas:       c,
		log:          undo.NewLog(),
		caret:        Caret{Attr: model.DefaultAttribute},
		currentLayer: c.LayerCount() - 1,
		logger:       zap.NewNop(),
	}
	if s.currentLayer < 0 {
		s.currentLayer = 0
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Canvas gives read access to the document. Callers must not mutate it.
func (s *State) Canvas() *model.Canvas {
	return s.canvas
}

// SetLayerIndex implements undo.Target.
func (s *State) SetLayerIndex(i int) {
	s.currentLayer = i
}

func (s *State) UndoLog() *undo.Log {
	return s.log
}

func (s *State) FillScope() FillScope {
	return s.fillScope
}

func (s *State) SetFillScope(scope FillScope) {
	s.fillScope = scope
}

// Load replaces the document, dropping history and any drag in progress.
func (s *State) Load(c *model.Canvas) {
	s.canvas = c
	s.log.Clear()
	s.drag = drag{}
	s.currentLayer = max(c.LayerCount()-1, 0)
	s.caret.Pos = model.Position{}
}

// ---- transactions ----

// BeginAtomicUndo opens a transaction. Nested calls join the outer one.
func (s *State) BeginAtomicUndo(description string) {
	s.log.Begin(description)
}

// EndAtomicUndo closes the innermost BeginAtomicUndo.
func (s *State) EndAtomicUndo() {
	desc := s.log.OpenDescription()
	n := s.log.OpenLen()
	if s.log.End() {
		s.logger.Debug("commit", zap.String("transaction", desc), zap.Int("ops", n))
	}
}

// RollbackAtomicUndo reverts and drops the open transaction. Nothing is
// left to undo or redo from it.
func (s *State) RollbackAtomicUndo() error {
	desc := s.log.OpenDescription()
	n := s.log.OpenLen()
	if err := s.log.Rollback(s); err != nil {
		return err
	}
	s.clampCurrentLayer()
	if n > 0 {
		s.logger.Debug("rollback", zap.String("transaction", desc), zap.Int("ops", n))
	}
	return nil
}

// atomic runs fn inside a transaction, so a lone mutator still commits as
// exactly one undo step.
func (s *State) atomic(description string, fn func() error) error {
	s.BeginAtomicUndo(description)
	defer s.EndAtomicUndo()
	return fn()
}

func (s *State) Undo() error {
	tr, err := s.log.Undo(s)
	if err != nil {
		return err
	}
	s.clampCurrentLayer()
	s.logger.Debug("undo", zap.String("transaction", tr.Description))
	return nil
}

func (s *State) Redo() error {
	tr, err := s.log.Redo(s)
	if err != nil {
		return err
	}
	s.clampCurrentLayer()
	s.logger.Debug("redo", zap.String("transaction", tr.Description))
	return nil
}

func (s *State) clampCurrentLayer() {
	if n := s.canvas.LayerCount(); s.currentLayer >= n {
		s.currentLayer = max(n-1, 0)
	}
}

// ---- caret ----

func (s *State) Caret() Caret {
	return s.caret
}

func (s *State) SetCaretPosition(p model.Position) {
	s.caret.Pos = p
}

func (s *State) SetCaretAttribute(a model.Attribute) {
	s.caret.Attr = a
}

func (s *State) SetFontPage(page int) {
	s.caret.FontPage = page
}

// SetForeground sets the caret foreground after checking it against the
// palette.
func (s *State) SetForeground(i int) error {
	if _, err := s.canvas.Palette.Color(i); err != nil {
		return err
	}
	s.caret.Attr.Foreground = uint32(i)
	return nil
}

func (s *State) SetBackground(i int) error {
	if _, err := s.canvas.Palette.Color(i); err != nil {
		return err
	}
	s.caret.Attr.Background = uint32(i)
	return nil
}

// PickAttribute copies the visible attribute at p into the caret.
func (s *State) PickAttribute(p model.Position) error {
	if !s.canvas.IsValid(p) {
		return fmt.Errorf("pick %v: %w", p, model.ErrInvalidPosition)
	}
	s.caret.Attr = s.canvas.CompositeCell(p).Attr
	return nil
}

// ---- current layer ----

func (s *State) CurrentLayer() int {
	return s.currentLayer
}

// Layer returns the current layer.
func (s *State) Layer() (*model.Layer, error) {
	l, err := s.canvas.LayerAt(s.currentLayer)
	if err != nil {
		return nil, fmt.Errorf("layer %d: %w", s.currentLayer, model.ErrLayerOutOfRange)
	}
	return l, nil
}

func (s *State) SetCurrentLayer(i int) error {
	if _, err := s.canvas.LayerAt(i); err != nil {
		return err
	}
	if i == s.currentLayer {
		return nil
	}
	op := undo.CurrentLayerData{Old: s.currentLayer, New: i}
	s.currentLayer = i
	s.log.Push("Select layer", op)
	return nil
}

// ---- cells ----

// GetChar reads the current layer at canvas position p.
func (s *State) GetChar(p model.Position) (model.Cell, error) {
	l, err := s.Layer()
	if err != nil {
		return model.Cell{}, err
	}
	return l.Get(p.Sub(l.Offset)), nil
}

// writableLayer returns the current layer if it accepts cell edits.
func (s *State) writableLayer() (*model.Layer, error) {
	l, err := s.Layer()
	if err != nil {
		return nil, err
	}
	if l.IsLocked {
		return nil, fmt.Errorf("layer %q: %w", l.Title, model.ErrLayerLocked)
	}
	return l, nil
}

// SetChar writes c into the current layer at canvas position p. Writes that
// change nothing are not journaled.
func (s *State) SetChar(p model.Position, c model.Cell) error {
	l, err := s.writableLayer()
	if err != nil {
		return err
	}
	return s.setChar(l, p, c)
}

func (s *State) setChar(l *model.Layer, p model.Position, c model.Cell) error {
	local := p.Sub(l.Offset)
	if !l.Size().Contains(local) {
		return fmt.Errorf("set char %v: %w", p, model.ErrInvalidPosition)
	}
	old := l.Get(local)
	if old == c {
		return nil
	}
	l.Set(local, c)
	s.log.Push("Set char", undo.SetCharData{Layer: s.currentLayer, Pos: local, Old: old, New: c})
	return nil
}

// TypeChar writes ch with the caret attribute at the caret and advances it.
func (s *State) TypeChar(ch rune) error {
	p := s.caret.Pos
	if err := s.SetChar(p, model.NewCell(ch, s.caret.Attr)); err != nil {
		return err
	}
	if p.X+1 < s.canvas.Width() {
		s.caret.Pos.X++
	}
	return nil
}

// EraseRect resets every cell of r in the current layer to its default.
func (s *State) EraseRect(r model.Rectangle) error {
	l, err := s.writableLayer()
	if err != nil {
		return err
	}
	return s.atomic("Erase", func() error {
		def := l.DefaultCell()
		for y := r.Top(); y <= r.Bottom(); y++ {
			for x := r.Left(); x <= r.Right(); x++ {
				p := model.Position{X: x, Y: y}
				if !l.Size().Contains(p.Sub(l.Offset)) {
					continue
				}
				if err := s.setChar(l, p, def); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ---- layers ----

// MoveLayer shifts the current layer by delta.
func (s *State) MoveLayer(delta model.Position) error {
	l, err := s.Layer()
	if err != nil {
		return err
	}
	return s.SetLayerOffset(s.currentLayer, l.Offset.Add(delta))
}

func (s *State) SetLayerOffset(i int, offset model.Position) error {
	l, err := s.canvas.LayerAt(i)
	if err != nil {
		return err
	}
	if l.IsPositionLocked {
		return fmt.Errorf("move layer %q: %w", l.Title, model.ErrLayerLocked)
	}
	if l.Offset == offset {
		return nil
	}
	op := undo.MoveLayerData{Layer: i, From: l.Offset, To: offset}
	l.Offset = offset
	s.log.Push("Move layer", op)
	return nil
}

// AddLayer inserts a new transparent canvas sized layer above the current
// one and selects it.
func (s *State) AddLayer(title string) (int, error) {
	if title == "" {
		title = "New Layer"
	}
	idx := min(s.currentLayer+1, s.canvas.LayerCount())
	l := model.NewLayer(title, s.canvas.Width(), s.canvas.Height())
	err := s.atomic("Add layer", func() error {
		if err := s.canvas.InsertLayer(idx, l); err != nil {
			return err
		}
		s.log.Push("", undo.AddLayerData{Index: idx, Layer: l})
		return s.SetCurrentLayer(idx)
	})
	return idx, err
}

// RemoveLayer deletes layer i; the current layer pointer is kept valid.
func (s *State) RemoveLayer(i int) error {
	l, err := s.canvas.LayerAt(i)
	if err != nil {
		return err
	}
	if s.canvas.LayerCount() == 1 {
		return fmt.Errorf("remove last layer: %w", model.ErrIndexOutOfRange)
	}
	return s.atomic("Remove layer", func() error {
		// move the pointer first so it never points past the stack
		next := s.currentLayer
		if next >= i && next > 0 {
			next--
		}
		if err := s.SetCurrentLayer(next); err != nil {
			return err
		}
		if _, err := s.canvas.RemoveLayer(i); err != nil {
			return err
		}
		s.log.Push("", undo.RemoveLayerData{Index: i, Layer: l})
		return nil
	})
}

// SwapLayers exchanges two layers; the current layer follows its layer.
func (s *State) SwapLayers(i, j int) error {
	if _, err := s.canvas.LayerAt(i); err != nil {
		return err
	}
	if _, err := s.canvas.LayerAt(j); err != nil {
		return err
	}
	if i == j {
		return nil
	}
	return s.atomic("Swap layers", func() error {
		if err := s.canvas.Swap(i, j); err != nil {
			return err
		}
		s.log.Push("", undo.SwapLayersData{I: i, J: j})
		switch s.currentLayer {
		case i:
			return s.SetCurrentLayer(j)
		case j:
			return s.SetCurrentLayer(i)
		}
		return nil
	})
}

// RaiseLayer moves the current layer one step up the stack.
func (s *State) RaiseLayer() error {
	return s.SwapLayers(s.currentLayer, s.currentLayer+1)
}

func (s *State) LowerLayer() error {
	return s.SwapLayers(s.currentLayer, s.currentLayer-1)
}

func (s *State) updateProperties(i int, desc string, fn func(*model.Properties)) error {
	l, err := s.canvas.LayerAt(i)
	if err != nil {
		return err
	}
	old := l.Properties()
	next := old
	fn(&next)
	if next == old {
		return nil
	}
	l.SetProperties(next)
	s.log.Push(desc, undo.LayerPropertiesData{Layer: i, Old: old, New: next})
	return nil
}

func (s *State) SetLayerVisible(i int, visible bool) error {
	return s.updateProperties(i, "Toggle visibility", func(p *model.Properties) { p.IsVisible = visible })
}

func (s *State) SetLayerLocked(i int, locked bool) error {
	return s.updateProperties(i, "Toggle lock", func(p *model.Properties) { p.IsLocked = locked })
}

func (s *State) SetLayerPositionLocked(i int, locked bool) error {
	return s.updateProperties(i, "Toggle position lock", func(p *model.Properties) { p.IsPositionLocked = locked })
}

func (s *State) SetLayerTitle(i int, title string) error {
	return s.updateProperties(i, "Rename layer", func(p *model.Properties) { p.Title = title })
}

// ResizeLayer changes the size of layer i.
func (s *State) ResizeLayer(i int, size model.Size) error {
	l, err := s.canvas.LayerAt(i)
	if err != nil {
		return err
	}
	if size.Width < 0 || size.Height < 0 {
		return fmt.Errorf("resize to %dx%d: %w", size.Width, size.Height, model.ErrInvalidPosition)
	}
	if l.Size() == size {
		return nil
	}
	op := undo.ResizeLayerData{Layer: i, Old: l.Size(), New: size, Snapshot: l.Clone()}
	l.Resize(size)
	s.log.Push("Resize layer", op)
	return nil
}

// ResizeCanvas changes the document size.
func (s *State) ResizeCanvas(size model.Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		return fmt.Errorf("resize canvas to %dx%d: %w", size.Width, size.Height, model.ErrInvalidPosition)
	}
	old := s.canvas.Size()
	if old == size {
		return nil
	}
	s.canvas.SetSize(size)
	s.log.Push("Resize canvas", undo.ResizeCanvasData{Old: old, New: size})
	return nil
}

// ---- palette ----

// SwitchToPalette replaces the palette. Undo restores the previous palette
// object as a whole.
func (s *State) SwitchToPalette(p *model.Palette) error {
	if p == nil {
		return fmt.Errorf("switch palette: %w", model.ErrIndexOutOfRange)
	}
	old := s.canvas.Palette
	if old == p {
		return nil
	}
	s.canvas.Palette = p
	s.log.Push("Switch palette", undo.SwitchPaletteData{Old: old, New: p})
	return nil
}

// InsertColorRGB returns the palette index of the colour, appending it to
// the palette when missing.
func (s *State) InsertColorRGB(c model.Color) (int, error) {
	i, p := s.canvas.Palette.WithColor(c)
	if err := s.SwitchToPalette(p); err != nil {
		return 0, err
	}
	return i, nil
}

// ---- selection ----

func (s *State) SetSelection(sel *model.Selection) {
	s.canvas.Selection = sel
}

func (s *State) ClearSelection() {
	s.canvas.Selection = nil
}
