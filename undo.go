package main

import "ansiedit/internal/edit"

func (m *model) undo() {
	var desc string
	if m.do(func(s *edit.State) error {
		desc = s.UndoLog().UndoDescription()
		return s.Undo()
	}) {
		m.succeed("Undid %s", desc)
	}
}

func (m *model) redo() {
	var desc string
	if m.do(func(s *edit.State) error {
		desc = s.UndoLog().RedoDescription()
		return s.Redo()
	}) {
		m.succeed("Redid %s", desc)
	}
}
