// Package testutil provides shared test helpers and fixtures.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/tkukec/arcus-grid/internal/fsutil"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// FormatLog renders days of records as a log file, one "0" delimiter line
// between days.
func FormatLog(days ...[]string) string {
	var b strings.Builder
	for i, day := range days {
		if i > 0 {
			b.WriteString("0\n")
		}
		for _, rec := range day {
			b.WriteString(rec)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// SeedLog writes days as a log file into fsys.
func SeedLog(fsys *fsutil.MemoryFileSystem, path string, days ...[]string) {
	fsys.WriteFile(path, []byte(FormatLog(days...)))
}

// DecodePNG reads path from fsys and decodes it.
func DecodePNG(t *testing.T, fsys fsutil.FileSystem, path string) image.Image {
	t.Helper()
	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

// RGBAAt returns the 8-bit colour of a pixel.
func RGBAAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}
