package model

// Flags are the style bits of an Attribute.
type Flags uint8

const (
	FlagBlink Flags = 1 << iota
	FlagBold
	FlagUnderline
	FlagIceColor
)

// Attribute holds palette indices for both colours plus style flags.
type Attribute struct {
	Foreground uint32
	Background uint32
	Flags      Flags
}

// DefaultAttribute is light grey on black, the DOS default.
var DefaultAttribute = Attribute{Foreground: 7, Background: 0}

func NewAttribute(fg, bg uint32) Attribute {
	return Attribute{Foreground: fg, Background: bg}
}

func (a Attribute) Has(f Flags) bool {
	return a.Flags&f != 0
}

func (a *Attribute) Set(f Flags, on bool) {
	if on {
		a.Flags |= f
	} else {
		a.Flags &^= f
	}
}

func (a Attribute) IsBold() bool      { return a.Has(FlagBold) }
func (a Attribute) IsBlink() bool     { return a.Has(FlagBlink) }
func (a Attribute) IsUnderline() bool { return a.Has(FlagUnderline) }
func (a Attribute) IsIceColor() bool  { return a.Has(FlagIceColor) }
