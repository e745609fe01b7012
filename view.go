package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"ansiedit/internal/edit"
	doc "ansiedit/internal/model"
	"ansiedit/internal/render"
)

var (
	barStyle     = lipgloss.NewStyle().Reverse(true)
	currentStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Bold(true)
)

var helpLines = []string{
	"ansiedit Help",
	"=============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"  z                Toggle pan mode (direction keys scroll the view)",
	"  Mouse wheel      Scroll the view",
	"",
	"Tools:",
	"------",
	"  b  pencil     f  fill       i  pipette",
	"  g  line       r  rectangle  e  ellipse    v  select",
	"  Space/Enter      Use tool at cursor; shapes and select start a drag,",
	"                   move the cursor, then Space/Enter again to finish",
	"  Mouse            Press, drag and release with the left button",
	"  o                Toggle outline/filled shapes",
	"  m                Cycle draw mode: solid, char, shade, colorize",
	"  C                Set the brush character (next key)",
	"  1/2/3            Toggle character/foreground/background channel",
	"",
	"Colours:",
	"--------",
	"  [ ]              Previous/next foreground",
	"  ( )              Previous/next background",
	"  P                Next built-in palette",
	"",
	"Layers:",
	"-------",
	"  Tab/Shift+Tab    Select layer above/below",
	"  A                Add layer above current",
	"  D                Remove current layer",
	"  + -              Raise/lower current layer",
	"  V                Toggle visibility",
	"  X                Toggle lock",
	"  R                Rename layer",
	"  M                Move layer (direction keys, Enter=finish, Esc=cancel)",
	"",
	"Editing:",
	"--------",
	"  t                Type text at cursor (Esc to finish)",
	"  d                Erase selection or cell under cursor",
	"  c                Copy selection (or canvas) to clipboard",
	"  p                Paste clipboard text at cursor",
	"  u/U              Undo/redo",
	"  :                Run script commands, separated by ';'",
	"",
	"Files and buffers:",
	"------------------",
	"  s                Export (PNG, ANSI or text)",
	"  S                Export PNG",
	"  n                New canvas in current buffer",
	"  N                New canvas in new buffer",
	"  x                Close current buffer",
	"  { }              Previous/next buffer",
	"",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	if m.canvasTop() > 0 {
		result.WriteString(m.renderBufferBar(m.width))
		result.WriteString("\n")
	}

	buf := m.getCurrentBuffer()
	var layerBar string
	if buf != nil {
		width := max(m.width, 1)
		view := doc.Rectangle{
			Start: doc.Position{X: buf.panX, Y: buf.panY},
			Size:  doc.Size{Width: width, Height: m.viewHeight()},
		}
		cursor := m.worldCoords()
		m.do(func(s *edit.State) error {
			for _, line := range render.Terminal(s.Canvas(), view, &cursor) {
				result.WriteString(line)
				result.WriteString("\n")
			}
			layerBar = m.renderLayerBar(s, width)
			return nil
		})
	}
	result.WriteString(layerBar)
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m *model) renderBufferBar(width int) string {
	var bar strings.Builder
	bar.WriteString("Open canvases: ")
	for i, buf := range m.buffers {
		if i > 0 {
			bar.WriteString(" | ")
		}
		name := buf.filename
		if name == "" {
			name = fmt.Sprintf("Buffer %d", i+1)
		}
		if i == m.currentBufferIndex {
			name = "[" + name + "]"
		}
		bar.WriteString(name)
	}
	return barStyle.Render(fitWidth(bar.String(), width))
}

func (m *model) renderLayerBar(s *edit.State, width int) string {
	var parts []string
	layers := s.Canvas().Layers()
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		flags := ""
		if !l.IsVisible {
			flags += "h"
		}
		if l.IsLocked {
			flags += "L"
		}
		if l.Offset != (doc.Position{}) {
			flags += "@" + l.Offset.String()
		}
		label := fmt.Sprintf("%d:%s", i, l.Title)
		if flags != "" {
			label += "(" + flags + ")"
		}
		if i == s.CurrentLayer() {
			label = currentStyle.Render(label)
		}
		parts = append(parts, label)
	}
	attr := s.Caret().Attr
	palette := s.Canvas().Palette
	colours := fmt.Sprintf("%s fg %d %s bg %d | %s",
		render.Swatch(palette, attr.Foreground), attr.Foreground,
		render.Swatch(palette, attr.Background), attr.Background,
		palette.Title)
	return colours + " | Layers: " + strings.Join(parts, " ")
}

// fitWidth pads or cuts s to exactly width terminal cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

func (m model) statusLine() string {
	var statusLine string
	switch m.mode {
	case ModeDrag:
		statusLine = fmt.Sprintf("Mode: DRAG | %s | hjkl/arrows=extend, Space/Enter=finish, Esc=cancel", m.tool)
	case ModeMove:
		statusLine = "Mode: MOVE LAYER | hjkl/arrows=move, Enter=finish, Esc=cancel"
	case ModeTextInput:
		statusLine = "Mode: TEXT | type to draw, Enter=next line, Backspace=erase, Esc=finish"
	case ModeCharInput:
		statusLine = "Mode: CHAR | press the brush character"
	case ModeTitleInput:
		statusLine = fmt.Sprintf("Mode: RENAME | Layer title: %s | Enter=confirm, Esc=cancel", m.inputText)
	case ModeScriptInput:
		statusLine = fmt.Sprintf("Mode: SCRIPT | :%s | Enter=run, Esc=cancel", m.inputText)
	case ModeFileInput:
		statusLine = fmt.Sprintf("Mode: FILE | %s filename: %s | Enter=confirm, Esc=cancel", m.fileOp, m.inputText)
		if m.errorMessage != "" {
			statusLine += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit? Unsaved changes will be lost. (y/n)"
		case ConfirmNewCanvas:
			message = "Create new canvas? Unsaved changes will be lost. (y/n)"
		case ConfirmCloseBuffer:
			message = "Close current buffer? Unsaved changes will be lost. (y/n)"
		case ConfirmRemoveLayer:
			message = "Remove current layer? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
		case ConfirmChooseExportType:
			message = "Export as (p)ng, (a)nsi or (t)ext? Esc=cancel"
		}
		statusLine = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		modeStr := "NORMAL"
		if m.zPanMode {
			modeStr = "PAN"
		}
		shape := ""
		if m.tool.isShape() {
			shape = " outline"
			if m.brush.Filled {
				shape = " filled"
			}
		}
		status := fmt.Sprintf("Mode: %s | %s%s %s %q | %s | (%d,%d)",
			modeStr, m.tool, shape, m.brush.Mode, render.Glyph(m.brush.Char), m.matcher, m.worldCoords().X, m.worldCoords().Y)
		if m.successMessage != "" {
			status += fmt.Sprintf(" | %s", m.successMessage)
		}
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		} else if m.successMessage == "" {
			status += " | ? for help | q to quit"
		}
		statusLine = status
	}
	return statusLine
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	start := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	end := min(start+visibleHeight, len(helpLines))
	return strings.Join(helpLines[start:end], "\n") + "\n" + barStyle.Render(fitWidth("j/k=scroll, any other key=close", m.width))
}
