package model

import "errors"

// Sentinel errors shared by the editing core. Callers match them with
// errors.Is; they are always recoverable.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrLayerOutOfRange = errors.New("current layer out of range")
	ErrLayerLocked     = errors.New("layer is locked")
	ErrInvalidPosition = errors.New("invalid position")
	ErrNothingToUndo   = errors.New("nothing to undo")
	ErrNothingToRedo   = errors.New("nothing to redo")
	ErrEmptyMatcher    = errors.New("fill matcher has no channel enabled")
)
