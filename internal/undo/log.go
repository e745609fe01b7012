// Package undo journals reversible edits to a canvas.
//
// Every edit is an Operation carrying both its forward data and what it
// needs to reverse itself. Operations are grouped into transactions; undo
// and redo always move one whole transaction.
package undo

import (
	"errors"

	"ansiedit/internal/model"
)

// ErrTransactionOpen is returned by Undo and Redo while a transaction is
// still being recorded.
var ErrTransactionOpen = errors.New("transaction still open")

// Target is what operations are replayed against.
type Target interface {
	Canvas() *model.Canvas
	SetLayerIndex(i int)
}

// Operation is one applied, reversible edit.
type Operation interface {
	Undo(t Target) error
	Redo(t Target) error
}

// Transaction is a group of operations that undo and redo as one.
type Transaction struct {
	Description string
	ops         []Operation
}

func (t *Transaction) Len() int {
	return len(t.ops)
}

func (t *Transaction) undo(target Target) error {
	for i := len(t.ops) - 1; i >= 0; i-- {
		if err := t.ops[i].Undo(target); err != nil {
			return err
		}
	}
	return nil
}

func (t *Transaction) redo(target Target) error {
	for _, op := range t.ops {
		if err := op.Redo(target); err != nil {
			return err
		}
	}
	return nil
}

// Log is the undo/redo journal of one document.
type Log struct {
	undoStack []*Transaction
	redoStack []*Transaction

	open  *Transaction
	depth int
}

func NewLog() *Log {
	return &Log{}
}

// Begin opens a transaction. Calls while one is open only deepen it; the
// outer description wins.
func (l *Log) Begin(description string) {
	l.depth++
	if l.depth == 1 {
		l.open = &Transaction{Description: description}
	}
}

// End closes the innermost Begin. When the outermost one closes, the
// transaction is pushed if it recorded anything, and the redo stack is
// dropped. It reports whether a transaction was committed.
func (l *Log) End() bool {
	if l.depth == 0 {
		return false
	}
	l.depth--
	if l.depth > 0 {
		return false
	}
	t := l.open
	l.open = nil
	if t.Len() == 0 {
		return false
	}
	l.undoStack = append(l.undoStack, t)
	l.redoStack = l.redoStack[:0]
	return true
}

// Rollback reverts everything recorded in the open transaction and closes
// it without touching either stack. Only the outermost Begin can be rolled
// back.
func (l *Log) Rollback(t Target) error {
	switch {
	case l.depth == 0:
		return nil
	case l.depth > 1:
		return ErrTransactionOpen
	}
	tr := l.open
	l.open = nil
	l.depth = 0
	return tr.undo(t)
}

// InTransaction reports whether a Begin is pending.
func (l *Log) InTransaction() bool {
	return l.depth > 0
}

// Push records an already applied operation. Outside a transaction it is
// committed on its own.
func (l *Log) Push(description string, op Operation) {
	l.Begin(description)
	l.open.ops = append(l.open.ops, op)
	l.End()
}

// OpenDescription describes the transaction being recorded.
func (l *Log) OpenDescription() string {
	if l.open == nil {
		return ""
	}
	return l.open.Description
}

// OpenLen is the number of operations recorded in the open transaction.
func (l *Log) OpenLen() int {
	if l.open == nil {
		return 0
	}
	return l.open.Len()
}

func (l *Log) Undo(t Target) (*Transaction, error) {
	if l.depth > 0 {
		return nil, ErrTransactionOpen
	}
	if len(l.undoStack) == 0 {
		return nil, model.ErrNothingToUndo
	}
	last := len(l.undoStack) - 1
	tr := l.undoStack[last]
	if err := tr.undo(t); err != nil {
		return nil, err
	}
	l.undoStack = l.undoStack[:last]
	l.redoStack = append(l.redoStack, tr)
	return tr, nil
}

func (l *Log) Redo(t Target) (*Transaction, error) {
	if l.depth > 0 {
		return nil, ErrTransactionOpen
	}
	if len(l.redoStack) == 0 {
		return nil, model.ErrNothingToRedo
	}
	last := len(l.redoStack) - 1
	tr := l.redoStack[last]
	if err := tr.redo(t); err != nil {
		return nil, err
	}
	l.redoStack = l.redoStack[:last]
	l.undoStack = append(l.undoStack, tr)
	return tr, nil
}

func (l *Log) UndoLen() int { return len(l.undoStack) }
func (l *Log) RedoLen() int { return len(l.redoStack) }

// UndoDescription describes the transaction Undo would revert.
func (l *Log) UndoDescription() string {
	if len(l.undoStack) == 0 {
		return ""
	}
	return l.undoStack[len(l.undoStack)-1].Description
}

func (l *Log) RedoDescription() string {
	if len(l.redoStack) == 0 {
		return ""
	}
	return l.redoStack[len(l.redoStack)-1].Description
}

// Clear drops all history, e.g. after loading a new document.
func (l *Log) Clear() {
	l.undoStack = nil
	l.redoStack = nil
	l.open = nil
	l.depth = 0
}
