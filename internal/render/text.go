package render

import (
	"fmt"
	"strings"

	"ansiedit/internal/model"
)

// PlainText dumps the composite canvas as Unicode text without colours.
// Trailing blanks are trimmed from every row.
func PlainText(c *model.Canvas) string {
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		var row strings.Builder
		for x := 0; x < c.Width(); x++ {
			row.WriteRune(Glyph(c.CompositeCell(model.Position{X: x, Y: y}).Ch))
		}
		sb.WriteString(strings.TrimRight(row.String(), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// dosToANSI reorders the low eight DOS palette indexes into SGR colour
// numbers.
var dosToANSI = [8]uint32{0, 4, 2, 6, 1, 5, 3, 7}

func ansiIndex(i uint32) uint32 {
	if i < 16 {
		return i&8 | dosToANSI[i&7]
	}
	return i
}

// sgr builds the select graphic rendition sequence for a.
func sgr(a model.Attribute) string {
	codes := []string{"0"}
	fg, bg := ansiIndex(a.Foreground), ansiIndex(a.Background)
	switch {
	case fg < 8:
		codes = append(codes, fmt.Sprint(30+fg))
	case fg < 16:
		codes = append(codes, "1", fmt.Sprint(30+fg-8))
	default:
		codes = append(codes, "38", "5", fmt.Sprint(fg))
	}
	switch {
	case bg < 8:
		codes = append(codes, fmt.Sprint(40+bg))
	case bg < 16:
		codes = append(codes, "5", fmt.Sprint(40+bg-8))
	default:
		codes = append(codes, "48", "5", fmt.Sprint(bg))
	}
	if a.IsBold() && fg < 8 {
		codes = append(codes, "1")
	}
	if a.IsUnderline() {
		codes = append(codes, "4")
	}
	if a.IsBlink() && !(bg >= 8 && bg < 16) {
		codes = append(codes, "5")
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// ANSI dumps the composite canvas as UTF-8 text with SGR colour escapes.
func ANSI(c *model.Canvas) string {
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		var last model.Attribute
		first := true
		for x := 0; x < c.Width(); x++ {
			cell := c.CompositeCell(model.Position{X: x, Y: y})
			if first || cell.Attr != last {
				sb.WriteString(sgr(cell.Attr))
				last, first = cell.Attr, false
			}
			sb.WriteRune(Glyph(cell.Ch))
		}
		sb.WriteString("\x1b[0m\n")
	}
	return sb.String()
}
