// Package render rasterises points onto the fixed 6×6 canvas and writes
// the result as PNG.
package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/tkukec/arcus-grid/internal/point"
)

// Background is the colour of cells no point was written to.
var Background = color.RGBA{A: 255}

// Canvas is a GridSize×GridSize RGB raster.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas returns a canvas filled with Background.
func NewCanvas() *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, point.GridSize, point.GridSize))
	xdraw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, xdraw.Src)
	return &Canvas{img: img}
}

// Paint writes each point's colour at its position. Later points overwrite
// earlier ones at the same cell.
func (c *Canvas) Paint(points []point.Point) {
	for _, p := range points {
		pos := p.Position()
		c.img.SetRGBA(pos.X, pos.Y, p.Color())
	}
}

// At returns the colour of cell (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Image exposes the raster for encoding.
func (c *Canvas) Image() image.Image { return c.img }

// Scaled returns the canvas enlarged by factor with nearest-neighbour
// sampling, so every cell stays a solid square.
func (c *Canvas) Scaled(factor int) *image.RGBA {
	if factor < 1 {
		factor = 1
	}
	size := point.GridSize * factor
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), c.img, c.img.Bounds(), xdraw.Src, nil)
	return dst
}
