package main

import (
	"strings"
	"testing"

	"ansiedit/internal/edit"
)

func TestParseConfig(t *testing.T) {
	src := `# settings
width = 132
height=50
palette = EGA
fill_scope = composite
confirmations = false
save_directory = /tmp/art
bogus line
height = -3
palette = nope
`
	config := defaultConfig()
	parseConfig(strings.NewReader(src), "/home/me", config)

	if config.Width != 132 || config.Height != 50 {
		t.Errorf("size = %dx%d", config.Width, config.Height)
	}
	if config.Palette != "ega" {
		t.Errorf("palette = %q", config.Palette)
	}
	if config.FillScope != edit.FillComposite {
		t.Errorf("fill scope = %v", config.FillScope)
	}
	if config.Confirmations {
		t.Error("confirmations still on")
	}
	if config.SaveDirectory != "/tmp/art" {
		t.Errorf("save directory = %q", config.SaveDirectory)
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("~/art", "/home/me"); got != "/home/me/art" {
		t.Errorf("got %q", got)
	}
}

func TestExportPath(t *testing.T) {
	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{"a", FileOpSavePNG, "a.png"},
		{"a.PNG", FileOpSavePNG, "a.PNG"},
		{"b", FileOpSaveANSI, "b.ans"},
		{"c.txt", FileOpSaveTXT, "c.txt"},
	}
	for _, tt := range tests {
		if got := exportPath(tt.op, tt.name); got != tt.want {
			t.Errorf("exportPath(%v, %q) = %q, want %q", tt.op, tt.name, got, tt.want)
		}
		if got := fileOpForPath(tt.want); got != tt.op {
			t.Errorf("fileOpForPath(%q) = %v, want %v", tt.want, got, tt.op)
		}
	}
}
