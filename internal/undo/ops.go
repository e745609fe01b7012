package undo

import "ansiedit/internal/model"

func layerAt(t Target, i int) (*model.Layer, error) {
	return t.Canvas().LayerAt(i)
}

// SetCharData replaces one cell of a layer. Pos is layer local.
type SetCharData struct {
	Layer    int
	Pos      model.Position
	Old, New model.Cell
}

func (d SetCharData) Undo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.Restore(d.Pos, d.Old)
	return nil
}

func (d SetCharData) Redo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.Restore(d.Pos, d.New)
	return nil
}

// MoveLayerData changes a layer offset.
type MoveLayerData struct {
	Layer    int
	From, To model.Position
}

func (d MoveLayerData) Undo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.Offset = d.From
	return nil
}

func (d MoveLayerData) Redo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.Offset = d.To
	return nil
}

// LayerPropertiesData replaces the flags and title of a layer.
type LayerPropertiesData struct {
	Layer    int
	Old, New model.Properties
}

func (d LayerPropertiesData) Undo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.SetProperties(d.Old)
	return nil
}

func (d LayerPropertiesData) Redo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.SetProperties(d.New)
	return nil
}

// AddLayerData inserts Layer at Index.
type AddLayerData struct {
	Index int
	Layer *model.Layer
}

func (d AddLayerData) Undo(t Target) error {
	_, err := t.Canvas().RemoveLayer(d.Index)
	return err
}

func (d AddLayerData) Redo(t Target) error {
	return t.Canvas().InsertLayer(d.Index, d.Layer)
}

// RemoveLayerData is the inverse of AddLayerData.
type RemoveLayerData struct {
	Index int
	Layer *model.Layer
}

func (d RemoveLayerData) Undo(t Target) error {
	return t.Canvas().InsertLayer(d.Index, d.Layer)
}

func (d RemoveLayerData) Redo(t Target) error {
	_, err := t.Canvas().RemoveLayer(d.Index)
	return err
}

// SwapLayersData exchanges two layers of the stack.
type SwapLayersData struct {
	I, J int
}

func (d SwapLayersData) Undo(t Target) error {
	return t.Canvas().Swap(d.I, d.J)
}

func (d SwapLayersData) Redo(t Target) error {
	return t.Canvas().Swap(d.I, d.J)
}

// CurrentLayerData moves the edit state's current layer pointer.
type CurrentLayerData struct {
	Old, New int
}

func (d CurrentLayerData) Undo(t Target) error {
	t.SetLayerIndex(d.Old)
	return nil
}

func (d CurrentLayerData) Redo(t Target) error {
	t.SetLayerIndex(d.New)
	return nil
}

// SwitchPaletteData swaps the whole palette object.
type SwitchPaletteData struct {
	Old, New *model.Palette
}

func (d SwitchPaletteData) Undo(t Target) error {
	t.Canvas().Palette = d.Old
	return nil
}

func (d SwitchPaletteData) Redo(t Target) error {
	t.Canvas().Palette = d.New
	return nil
}

// ResizeCanvasData changes the document size. Layers keep their own size.
type ResizeCanvasData struct {
	Old, New model.Size
}

func (d ResizeCanvasData) Undo(t Target) error {
	t.Canvas().SetSize(d.Old)
	return nil
}

func (d ResizeCanvasData) Redo(t Target) error {
	t.Canvas().SetSize(d.New)
	return nil
}

// ResizeLayerData resizes a layer. Cells cut off by a shrink are kept in
// Snapshot so undo can restore them.
type ResizeLayerData struct {
	Layer    int
	Old, New model.Size
	Snapshot *model.Layer
}

func (d ResizeLayerData) Undo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.Resize(d.Old)
	for y := 0; y < d.Old.Height; y++ {
		for x := 0; x < d.Old.Width; x++ {
			p := model.Position{X: x, Y: y}
			l.Restore(p, d.Snapshot.Get(p))
		}
	}
	return nil
}

func (d ResizeLayerData) Redo(t Target) error {
	l, err := layerAt(t, d.Layer)
	if err != nil {
		return err
	}
	l.Resize(d.New)
	return nil
}
