// Package point decodes 3-character records into validated grid points.
//
// A record is <symbol><slot><colour>, for example "A5Y": symbol A..F selects
// the column, slot 1..6 selects the row and the colour code selects one of
// eight fixed RGB values. Input is case-insensitive.
package point

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// RecordLen is the exact byte length of a record.
const RecordLen = 3

// GridSize is the width and height of the grid a point addresses.
const GridSize = 6

var (
	// ErrMalformedRecord means the record is not exactly RecordLen bytes.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidSymbol means the first character is outside A..F.
	ErrInvalidSymbol = errors.New("invalid symbol")
	// ErrInvalidSlot means the second character is not a digit 1..6.
	ErrInvalidSlot = errors.New("invalid slot")
	// ErrInvalidColor means the third character is not a known colour code.
	ErrInvalidColor = errors.New("invalid color")
)

// RecordError reports a record that failed validation. Err is always one of
// the package sentinels.
type RecordError struct {
	Record string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %q: %v", e.Record, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }

// Point is an immutable (symbol, slot, colour) triple.
type Point struct {
	symbol Symbol
	slot   Slot
	code   ColorCode
}

// Parse decodes a record. The record is uppercased before validation, so
// "a5y" and "A5Y" produce the same Point.
func Parse(record string) (Point, error) {
	if len(record) != RecordLen {
		return Point{}, &RecordError{Record: record, Err: ErrMalformedRecord}
	}
	b := [RecordLen]byte{upper(record[0]), upper(record[1]), upper(record[2])}

	sym, ok := symbolFromByte(b[0])
	if !ok {
		return Point{}, &RecordError{Record: record, Err: ErrInvalidSymbol}
	}
	slot, ok := slotFromByte(b[1])
	if !ok {
		return Point{}, &RecordError{Record: record, Err: ErrInvalidSlot}
	}
	code, ok := colorCodeFromByte(b[2])
	if !ok {
		return Point{}, &RecordError{Record: record, Err: ErrInvalidColor}
	}
	return Point{symbol: sym, slot: slot, code: code}, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(record string) Point {
	p, err := Parse(record)
	if err != nil {
		panic(err)
	}
	return p
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// Symbol returns the column symbol.
func (p Point) Symbol() Symbol { return p.symbol }

// Slot returns the time slot.
func (p Point) Slot() Slot { return p.slot }

// Code returns the colour code.
func (p Point) Code() ColorCode { return p.code }

// Position returns the zero-based (column, row) of the point.
func (p Point) Position() image.Point {
	return image.Point{X: p.symbol.Column(), Y: p.slot.Row()}
}

// Transposed returns Position with the axes swapped.
func (p Point) Transposed() image.Point {
	pos := p.Position()
	return image.Point{X: pos.Y, Y: pos.X}
}

// Color returns the RGB value of the point's colour code.
func (p Point) Color() color.RGBA { return p.code.RGB() }

// String returns the canonical uppercase record, e.g. "A5Y".
func (p Point) String() string {
	return string([]byte{byte(p.symbol), p.slot.Digit(), byte(p.code)})
}
