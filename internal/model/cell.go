package model

// Channels selects the parts of a Cell taking part in a comparison or a
// replacement. The fill tool and the shape brushes both use it.
type Channels uint8

const (
	ChannelChar Channels = 1 << iota
	ChannelFore
	ChannelBack

	ChannelNone Channels = 0
	ChannelAll           = ChannelChar | ChannelFore | ChannelBack
)

func (c Channels) Has(o Channels) bool {
	return c&o != 0
}

func (c Channels) String() string {
	if c == ChannelNone {
		return "none"
	}
	s := ""
	for _, n := range []struct {
		ch   Channels
		name string
	}{{ChannelChar, "char"}, {ChannelFore, "fg"}, {ChannelBack, "bg"}} {
		if c.Has(n.ch) {
			if s != "" {
				s += "+"
			}
			s += n.name
		}
	}
	return s
}

// Cell is one attributed character. Ch holds a code point of the document
// code page (CP437 for DOS art). Cells are plain values and compare with ==.
type Cell struct {
	Ch   rune
	Attr Attribute

	transparent bool
}

// Transparent is the unset cell of layers with an alpha channel.
var Transparent = Cell{Ch: ' ', Attr: DefaultAttribute, transparent: true}

// Blank is the default cell of opaque layers and of the canvas background.
var Blank = Cell{Ch: ' ', Attr: DefaultAttribute}

func NewCell(ch rune, attr Attribute) Cell {
	return Cell{Ch: ch, Attr: attr}
}

func (c Cell) IsTransparent() bool {
	return c.transparent
}

func (c Cell) Equal(o Cell) bool {
	return c == o
}

// Matches reports whether c and o agree on every channel in mask.
func (c Cell) Matches(o Cell, mask Channels) bool {
	if mask.Has(ChannelChar) && c.Ch != o.Ch {
		return false
	}
	if mask.Has(ChannelFore) && c.Attr.Foreground != o.Attr.Foreground {
		return false
	}
	if mask.Has(ChannelBack) && c.Attr.Background != o.Attr.Background {
		return false
	}
	return true
}

// Replace returns template with the channels in mask copied from source.
// Copying any channel from an opaque source makes the result opaque.
func Replace(template, source Cell, mask Channels) Cell {
	res := template
	if mask.Has(ChannelChar) {
		res.Ch = source.Ch
	}
	if mask.Has(ChannelFore) {
		res.Attr.Foreground = source.Attr.Foreground
	}
	if mask.Has(ChannelBack) {
		res.Attr.Background = source.Attr.Background
	}
	if mask != ChannelNone && !source.transparent {
		res.transparent = false
	}
	return res
}
