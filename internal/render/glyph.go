// Package render draws a canvas for the outside world: styled terminal
// lines, PNG images and text dumps. It only ever reads the canvas.
package render

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/encoding/charmap"
)

// lowGlyphs are the CP437 pictures of the control range.
var lowGlyphs = []rune(" ☺☻♥♦♣♠•◘○◙♂♀♪♫☼►◄↕‼¶§▬↨↑↓→←∟↔▲▼")

// Glyph maps a document char code to the Unicode rune that shows it. Codes
// up to 255 are CP437; anything above is taken as Unicode already.
func Glyph(ch rune) rune {
	var r rune
	switch {
	case ch < 0:
		r = ' '
	case ch < 32:
		r = lowGlyphs[ch]
	case ch == 127:
		r = '⌂'
	case ch < 256:
		r = charmap.CodePage437.DecodeByte(byte(ch))
	default:
		r = ch
	}
	if unicode.IsControl(r) {
		return ' '
	}
	// wide glyphs would push the rest of the row out of the grid
	if runewidth.RuneWidth(r) != 1 {
		return '?'
	}
	return r
}

// CharCode maps a Unicode rune to its CP437 code, keeping runes CP437 has no
// code for.
func CharCode(r rune) rune {
	if r < 128 && r >= 32 {
		return r
	}
	for i, g := range lowGlyphs {
		if i > 0 && g == r {
			return rune(i)
		}
	}
	if b, ok := charmap.CodePage437.EncodeRune(r); ok {
		return rune(b)
	}
	return r
}
