package model

import (
	"errors"
	"testing"
)

func TestBuiltinPalettes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"dos", 16},
		{"ega", 64},
		{"c64", 16},
		{"xterm", 256},
		{"viewdata", 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuiltinPalette(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if p.Len() != tt.size {
				t.Errorf("Len = %d, want %d", p.Len(), tt.size)
			}
		})
	}
	if _, err := BuiltinPalette("amiga"); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestEGAMatchesDOSBrights(t *testing.T) {
	ega := EGAPalette()
	// rgbRGB index 0x3f is white, 0x38 is dark grey
	if c, _ := ega.Color(0x3f); c != (Color{0xff, 0xff, 0xff}) {
		t.Errorf("white = %v", c)
	}
	if c, _ := ega.Color(0x38); c != (Color{0x55, 0x55, 0x55}) {
		t.Errorf("dark grey = %v", c)
	}
}

func TestXtermPaletteBaseColors(t *testing.T) {
	p := XtermPalette()
	if c, _ := p.Color(0); c != (Color{0, 0, 0}) {
		t.Errorf("colour 0 = %v", c)
	}
	if c, _ := p.Color(231); c != (Color{0xff, 0xff, 0xff}) {
		t.Errorf("colour 231 = %v", c)
	}
}

func TestPaletteWithColor(t *testing.T) {
	p := DOSPalette()
	i, same := p.WithColor(Color{0xaa, 0x00, 0x00})
	if i != 4 || same != p {
		t.Errorf("existing colour: got %d, new palette %v", i, same != p)
	}

	i, n := p.WithColor(Color{1, 2, 3})
	if i != 16 || n.Len() != 17 {
		t.Errorf("appended colour: index %d len %d", i, n.Len())
	}
	if p.Len() != 16 {
		t.Error("WithColor mutated the original palette")
	}
}

func TestPaletteColorOutOfRange(t *testing.T) {
	if _, err := DOSPalette().Color(16); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v", err)
	}
}

func TestParseColorAndNearest(t *testing.T) {
	c, err := ParseColor("#fe5656")
	if err != nil {
		t.Fatal(err)
	}
	if got := DOSPalette().Nearest(c); got != 12 {
		t.Errorf("Nearest = %d, want 12", got)
	}
	if c.Hex() != "#fe5656" {
		t.Errorf("Hex = %s", c.Hex())
	}
	if _, err := ParseColor("zz"); err == nil {
		t.Error("expected parse error")
	}
}
