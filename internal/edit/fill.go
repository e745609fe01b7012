package edit

import (
	"fmt"

	"go.uber.org/zap"

	"ansiedit/internal/model"
)

// Fill flood fills the 4-connected region around seed in the current layer.
//
// A cell belongs to the region when it agrees with the seed cell on every
// channel in matcher and writing target would change at least one of those
// channels. Matching cells get the matcher channels of target. The whole
// fill is one undo step.
func (s *State) Fill(seed model.Position, matcher model.Channels, target model.Cell) error {
	if matcher&model.ChannelAll == model.ChannelNone {
		return model.ErrEmptyMatcher
	}
	l, err := s.writableLayer()
	if err != nil {
		return err
	}
	if !s.fillable(l, seed) {
		return fmt.Errorf("fill at %v: %w", seed, model.ErrInvalidPosition)
	}

	read := func(p model.Position) model.Cell {
		if s.fillScope == FillComposite {
			return s.canvas.CompositeCell(p)
		}
		return l.Get(p.Sub(l.Offset))
	}
	seedCell := read(seed)

	s.BeginAtomicUndo("Fill")
	defer s.EndAtomicUndo()

	visited := make(map[model.Position]struct{})
	stack := []model.Position{seed}
	changed := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[p]; ok {
			continue
		}
		visited[p] = struct{}{}
		if !s.fillable(l, p) {
			continue
		}

		cur := read(p)
		if !cur.Matches(seedCell, matcher) || cur.Matches(target, matcher) {
			continue
		}
		repl := model.Replace(l.Get(p.Sub(l.Offset)), target, matcher)
		if err := s.setChar(l, p, repl); err != nil {
			return err
		}
		changed++

		stack = append(stack,
			model.Position{X: p.X, Y: p.Y - 1},
			model.Position{X: p.X, Y: p.Y + 1},
			model.Position{X: p.X - 1, Y: p.Y},
			model.Position{X: p.X + 1, Y: p.Y},
		)
	}
	s.logger.Debug("fill",
		zap.Stringer("seed", seed),
		zap.Stringer("matcher", matcher),
		zap.Int("cells", changed))
	return nil
}

// fillable reports whether p is inside both the document and the layer.
func (s *State) fillable(l *model.Layer, p model.Position) bool {
	return s.canvas.IsValid(p) && l.Size().Contains(p.Sub(l.Offset))
}
