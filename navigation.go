package main

import (
	"ansiedit/internal/edit"
	doc "ansiedit/internal/model"
)

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

func (m *model) handlePan(key string, speed int) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	switch key {
	case "h", "left", "H", "shift+left":
		buf.panX -= speed
	case "l", "right", "L", "shift+right":
		buf.panX += speed
	case "k", "up", "K", "shift+up":
		buf.panY -= speed
	case "j", "down", "J", "shift+down":
		buf.panY += speed
	}
}

func (m *model) handleCursorMove(key string, speed int) {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	if m.mode == ModeDrag {
		m.toolMotion(m.worldCoords())
	}
}

// handleLayerMove shifts the current layer while in move mode.
func (m *model) handleLayerMove(key string, speed int) {
	dx, dy := direction(key)
	if dx == 0 && dy == 0 {
		return
	}
	delta := doc.Position{X: dx * speed, Y: dy * speed}
	m.do(func(s *edit.State) error { return s.MoveLayer(delta) })
}

func direction(key string) (int, int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func isDirection(key string) bool {
	dx, dy := direction(key)
	return dx != 0 || dy != 0
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// canvasTop is the first screen row of the canvas view.
func (m *model) canvasTop() int {
	if len(m.buffers) > 1 {
		return 1
	}
	return 0
}

// viewHeight is the number of canvas rows on screen; the layer bar and the
// status line take the last two rows.
func (m *model) viewHeight() int {
	return max(m.height-2-m.canvasTop(), 1)
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	if maxY := m.viewHeight() - 1; m.height > 0 && m.cursorY > maxY {
		m.cursorY = maxY
	}
}
