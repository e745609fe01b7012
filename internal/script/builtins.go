package script

import (
	"fmt"
	"unicode/utf8"

	"ansiedit/internal/edit"
	"ansiedit/internal/model"
)

func checkRange(what string, v, lo, hi int, err error) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s %d not in [%d, %d]: %w", what, v, lo, hi, err)
	}
	return nil
}

func checkPosition(s *edit.State, x, y int) (model.Position, error) {
	p := model.Position{X: x, Y: y}
	if !s.Canvas().IsValid(p) {
		return p, fmt.Errorf("position %v: %w", p, model.ErrInvalidPosition)
	}
	return p, nil
}

func checkLayer(s *edit.State, i int) error {
	return checkRange("layer", i, 0, s.Canvas().LayerCount()-1, model.ErrIndexOutOfRange)
}

func checkCode(code int) error {
	if code < 0 || !utf8.ValidRune(rune(code)) {
		return fmt.Errorf("char code %d: %w", code, model.ErrIndexOutOfRange)
	}
	return nil
}

func rgb(args []int) (model.Color, error) {
	for _, v := range args {
		if err := checkRange("colour component", v, 0, 255, model.ErrIndexOutOfRange); err != nil {
			return model.Color{}, err
		}
	}
	return model.Color{R: uint8(args[0]), G: uint8(args[1]), B: uint8(args[2])}, nil
}

var builtins = []Command{
	{
		Name: "layer", Args: 1, Usage: "layer N",
		Run: func(e *Env, a []int) error {
			if err := checkLayer(e.State, a[0]); err != nil {
				return err
			}
			return e.State.SetCurrentLayer(a[0])
		},
	},
	{
		Name: "fg", Args: 1, Usage: "fg N",
		Run: func(e *Env, a []int) error { return e.State.SetForeground(a[0]) },
	},
	{
		Name: "bg", Args: 1, Usage: "bg N",
		Run: func(e *Env, a []int) error { return e.State.SetBackground(a[0]) },
	},
	{
		Name: "x", Args: 1, Usage: "x N",
		Run: func(e *Env, a []int) error {
			p := e.State.Caret().Pos
			p.X = a[0]
			if !e.State.Canvas().IsValid(p) {
				return fmt.Errorf("caret %v: %w", p, model.ErrInvalidPosition)
			}
			e.State.SetCaretPosition(p)
			return nil
		},
	},
	{
		Name: "y", Args: 1, Usage: "y N",
		Run: func(e *Env, a []int) error {
			p := e.State.Caret().Pos
			p.Y = a[0]
			if !e.State.Canvas().IsValid(p) {
				return fmt.Errorf("caret %v: %w", p, model.ErrInvalidPosition)
			}
			e.State.SetCaretPosition(p)
			return nil
		},
	},
	{
		Name: "set_char", Args: 3, Usage: "set_char X Y CODE",
		Run: func(e *Env, a []int) error {
			p, err := checkPosition(e.State, a[0], a[1])
			if err != nil {
				return err
			}
			if err := checkCode(a[2]); err != nil {
				return err
			}
			return e.State.SetChar(p, model.NewCell(rune(a[2]), e.State.Caret().Attr))
		},
	},
	{
		Name: "get_char", Args: 2, Usage: "get_char X Y",
		Run: func(e *Env, a []int) error {
			p, err := checkPosition(e.State, a[0], a[1])
			if err != nil {
				return err
			}
			c, err := e.State.GetChar(p)
			if err != nil {
				return err
			}
			e.Printf("%d %d %d", c.Ch, c.Attr.Foreground, c.Attr.Background)
			return nil
		},
	},
	{
		Name: "fg_rgb", Args: 3, Usage: "fg_rgb R G B",
		Run: func(e *Env, a []int) error {
			c, err := rgb(a)
			if err != nil {
				return err
			}
			i, err := e.State.InsertColorRGB(c)
			if err != nil {
				return err
			}
			return e.State.SetForeground(i)
		},
	},
	{
		Name: "bg_rgb", Args: 3, Usage: "bg_rgb R G B",
		Run: func(e *Env, a []int) error {
			c, err := rgb(a)
			if err != nil {
				return err
			}
			i, err := e.State.InsertColorRGB(c)
			if err != nil {
				return err
			}
			return e.State.SetBackground(i)
		},
	},
	{
		Name: "set_layer_position", Args: 3, Usage: "set_layer_position L X Y",
		Run: func(e *Env, a []int) error {
			if err := checkLayer(e.State, a[0]); err != nil {
				return err
			}
			return e.State.SetLayerOffset(a[0], model.Position{X: a[1], Y: a[2]})
		},
	},
	{
		Name: "set_layer_visible", Args: 2, Usage: "set_layer_visible L 0|1",
		Run: func(e *Env, a []int) error {
			if err := checkLayer(e.State, a[0]); err != nil {
				return err
			}
			if err := checkRange("visibility", a[1], 0, 1, model.ErrIndexOutOfRange); err != nil {
				return err
			}
			return e.State.SetLayerVisible(a[0], a[1] == 1)
		},
	},
	{
		Name: "fill", Args: 3, Usage: "fill X Y CODE",
		Run: func(e *Env, a []int) error {
			p, err := checkPosition(e.State, a[0], a[1])
			if err != nil {
				return err
			}
			if err := checkCode(a[2]); err != nil {
				return err
			}
			target := model.NewCell(rune(a[2]), e.State.Caret().Attr)
			return e.State.Fill(p, model.ChannelAll, target)
		},
	},
	{
		Name: "undo", Args: 0, Usage: "undo",
		Run: func(e *Env, _ []int) error { return e.State.Undo() },
	},
	{
		Name: "redo", Args: 0, Usage: "redo",
		Run: func(e *Env, _ []int) error { return e.State.Redo() },
	},
}

// history commands step outside the script transaction.
func isHistory(name string) bool {
	return name == "undo" || name == "redo"
}
