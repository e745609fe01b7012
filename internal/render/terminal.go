package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ansiedit/internal/model"
)

func paletteColor(p *model.Palette, i uint32) lipgloss.Color {
	c, err := p.Color(int(i))
	if err != nil {
		return lipgloss.Color("")
	}
	return lipgloss.Color(c.Hex())
}

func cellStyle(p *model.Palette, a model.Attribute) lipgloss.Style {
	st := lipgloss.NewStyle().
		Foreground(paletteColor(p, a.Foreground)).
		Background(paletteColor(p, a.Background))
	if a.IsBold() {
		st = st.Bold(true)
	}
	if a.IsUnderline() {
		st = st.Underline(true)
	}
	if a.IsBlink() && !a.IsIceColor() {
		st = st.Blink(true)
	}
	return st
}

// Terminal renders the part of c inside view as styled lines, one per row.
// Cells outside the document are left blank. When cursor is not nil that
// cell is drawn reversed.
func Terminal(c *model.Canvas, view model.Rectangle, cursor *model.Position) []string {
	lines := make([]string, 0, view.Size.Height)
	for y := view.Top(); y <= view.Bottom(); y++ {
		var sb strings.Builder
		var run strings.Builder
		var runStyle lipgloss.Style
		hasRun := false
		runKey := model.Attribute{}
		runCursor := false

		flush := func() {
			if hasRun {
				sb.WriteString(runStyle.Render(run.String()))
				run.Reset()
				hasRun = false
			}
		}

		for x := view.Left(); x <= view.Right(); x++ {
			p := model.Position{X: x, Y: y}
			if !c.IsValid(p) {
				flush()
				sb.WriteByte(' ')
				continue
			}
			cell := c.CompositeCell(p)
			isCursor := cursor != nil && *cursor == p
			if !hasRun || cell.Attr != runKey || isCursor != runCursor {
				flush()
				runStyle = cellStyle(c.Palette, cell.Attr)
				if isCursor {
					runStyle = runStyle.Reverse(true)
				}
				runKey, runCursor, hasRun = cell.Attr, isCursor, true
			}
			run.WriteRune(Glyph(cell.Ch))
		}
		flush()
		lines = append(lines, sb.String())
	}
	return lines
}

// Swatch renders a two cell sample of palette colour i.
func Swatch(p *model.Palette, i uint32) string {
	return lipgloss.NewStyle().Background(paletteColor(p, i)).Render("  ")
}
