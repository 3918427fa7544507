package point

import "image/color"

// Symbol is a column letter A..F.
type Symbol byte

const (
	SymbolA Symbol = 'A'
	SymbolB Symbol = 'B'
	SymbolC Symbol = 'C'
	SymbolD Symbol = 'D'
	SymbolE Symbol = 'E'
	SymbolF Symbol = 'F'
)

func symbolFromByte(c byte) (Symbol, bool) {
	if c < byte(SymbolA) || c > byte(SymbolF) {
		return 0, false
	}
	return Symbol(c), true
}

// Column is the zero-based column index.
func (s Symbol) Column() int { return int(s - SymbolA) }

func (s Symbol) String() string { return string(rune(s)) }

// Slot is a time slot 1..6 within a day.
type Slot uint8

// MinSlot and MaxSlot bound the valid slot range.
const (
	MinSlot Slot = 1
	MaxSlot Slot = GridSize
)

func slotFromByte(c byte) (Slot, bool) {
	if c < '0'+byte(MinSlot) || c > '0'+byte(MaxSlot) {
		return 0, false
	}
	return Slot(c - '0'), true
}

// Row is the zero-based row index.
func (s Slot) Row() int { return int(s) - 1 }

// Digit returns the slot as its ASCII digit.
func (s Slot) Digit() byte { return '0' + byte(s) }

// ColorCode is one of the eight colour letters.
type ColorCode byte

const (
	Red     ColorCode = 'R'
	Orange  ColorCode = 'O'
	Yellow  ColorCode = 'Y'
	Green   ColorCode = 'G'
	Blue    ColorCode = 'B'
	Indigo  ColorCode = 'I'
	Violet  ColorCode = 'V'
	Unknown ColorCode = '?' // brown; symbol seen but colour not identified
)

// Codes returns every colour code in palette order.
func Codes() []ColorCode {
	return []ColorCode{Red, Orange, Yellow, Green, Blue, Indigo, Violet, Unknown}
}

func colorCodeFromByte(c byte) (ColorCode, bool) {
	switch ColorCode(c) {
	case Red, Orange, Yellow, Green, Blue, Indigo, Violet, Unknown:
		return ColorCode(c), true
	}
	return 0, false
}

// RGB returns the fixed colour for the code. Values were sampled from the
// source footage.
func (c ColorCode) RGB() color.RGBA {
	switch c {
	case Red:
		return color.RGBA{R: 255, G: 24, B: 0, A: 255}
	case Orange:
		return color.RGBA{R: 255, G: 133, B: 0, A: 255}
	case Yellow:
		return color.RGBA{R: 252, G: 237, B: 0, A: 255}
	case Green:
		return color.RGBA{R: 0, G: 109, B: 0, A: 255}
	case Blue:
		return color.RGBA{R: 0, G: 15, B: 255, A: 255}
	case Indigo:
		return color.RGBA{R: 80, G: 15, B: 134, A: 255}
	case Violet:
		return color.RGBA{R: 158, G: 27, B: 219, A: 255}
	case Unknown:
		return color.RGBA{R: 135, G: 74, B: 43, A: 255}
	}
	// Unreachable for codes produced by Parse.
	return color.RGBA{A: 255}
}

func (c ColorCode) String() string { return string(rune(c)) }
