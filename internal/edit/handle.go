package edit

import (
	"sync"

	"ansiedit/internal/model"
)

// Handle shares one State between the UI, tool handlers, scripts and the
// render path. Each call holds the lock for one logical operation; callers
// must not block inside fn.
type Handle struct {
	mu    sync.Mutex
	state *State
}

func NewHandle(s *State) *Handle {
	return &Handle{state: s}
}

// Do runs fn with exclusive access to the state.
func (h *Handle) Do(fn func(*State) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.state)
}

// View runs fn with exclusive, read-only access to the canvas.
func (h *Handle) View(fn func(*model.Canvas)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.state.canvas)
}
