package main

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"ansiedit/internal/edit"
	"ansiedit/internal/logger"
	doc "ansiedit/internal/model"
	"ansiedit/internal/render"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getPanOffset() (int, int) {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.panX, buf.panY
	}
	return 0, 0
}

func (m *model) worldCoords() doc.Position {
	panX, panY := m.getPanOffset()
	return doc.Position{X: m.cursorX + panX, Y: m.cursorY + panY}
}

func (m *model) getWorldCoordsAt(screenX, screenY int) doc.Position {
	panX, panY := m.getPanOffset()
	return doc.Position{X: screenX + panX, Y: screenY - m.canvasTop() + panY}
}

func (m *model) newHandle(c *doc.Canvas) *edit.Handle {
	return edit.NewHandle(edit.NewState(c,
		edit.WithLogger(logger.L(m.ctx)),
		edit.WithFillScope(m.config.FillScope),
	))
}

func (m *model) newCanvas() *doc.Canvas {
	c := doc.New(m.config.Width, m.config.Height)
	if p, err := doc.BuiltinPalette(m.config.Palette); err == nil {
		c.Palette = p
	}
	return c
}

func (m *model) addNewBuffer(c *doc.Canvas, filename string) {
	m.buffers = append(m.buffers, Buffer{handle: m.newHandle(c), filename: filename})
	m.currentBufferIndex = len(m.buffers) - 1
}

// do runs fn against the current buffer and reports a failure in the status
// line.
func (m *model) do(fn func(*edit.State) error) bool {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return false
	}
	if err := buf.handle.Do(fn); err != nil {
		m.fail(err)
		return false
	}
	return true
}

func (m *model) fail(err error) {
	m.errorMessage = err.Error()
	m.successMessage = ""
	logger.L(m.ctx).Warn("operation failed", zap.Error(err))
}

func (m *model) succeed(format string, args ...any) {
	m.successMessage = fmt.Sprintf(format, args...)
	m.errorMessage = ""
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func cleanClipboardText(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

// selectionText renders the cells under the selection, or the whole canvas
// when nothing is selected, as plain text.
func selectionText(c *doc.Canvas) string {
	r := doc.Rectangle{Size: c.Size()}
	if c.Selection != nil {
		r = c.Selection.Bounds()
	}
	var sb strings.Builder
	for y := r.Top(); y <= r.Bottom(); y++ {
		var row strings.Builder
		for x := r.Left(); x <= r.Right(); x++ {
			p := doc.Position{X: x, Y: y}
			if !c.IsValid(p) || (c.Selection != nil && !c.Selection.Contains(p)) {
				row.WriteByte(' ')
				continue
			}
			row.WriteRune(render.Glyph(c.CompositeCell(p).Ch))
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
		if y < r.Bottom() {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (m *model) copySelection() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	var text string
	buf.handle.View(func(c *doc.Canvas) { text = selectionText(c) })
	if err := clipboard.WriteAll(text); err != nil {
		m.fail(err)
		return
	}
	m.succeed("Copied %d lines", strings.Count(text, "\n")+1)
}

// pasteText writes text into the current layer at the cursor with the caret
// attribute. Newlines start over at the cursor column.
func pasteText(s *edit.State, at doc.Position, text string) (int, error) {
	n := 0
	s.BeginAtomicUndo("Paste")
	defer s.EndAtomicUndo()
	p := at
	for _, r := range text {
		if r == '\n' {
			p = doc.Position{X: at.X, Y: p.Y + 1}
			continue
		}
		if s.Canvas().IsValid(p) {
			err := s.SetChar(p, doc.NewCell(render.CharCode(r), s.Caret().Attr))
			switch {
			case errors.Is(err, doc.ErrInvalidPosition):
				// outside an offset layer
			case err != nil:
				return n, err
			default:
				n++
			}
		}
		p.X++
	}
	return n, nil
}

func (m *model) paste() {
	text, err := readClipboardText()
	if err != nil {
		m.fail(err)
		return
	}
	text = cleanClipboardText(text)
	at := m.worldCoords()
	var n int
	if m.do(func(s *edit.State) error {
		var err error
		n, err = pasteText(s, at, text)
		return err
	}) {
		m.succeed("Pasted %d cells", n)
	}
}
