// Package render turns automaton grids into pixels, PNG files and terminal
// rows.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
)

// Palette returns a greyscale ramp with k entries: state 0 is white and
// state k-1 is black.
func Palette(k int) []color.RGBA {
	if k < 1 {
		return nil
	}
	palette := make([]color.RGBA, k)
	if k == 1 {
		palette[0] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
		return palette
	}
	for i := range palette {
		v := uint8(255 - (255*i)/(k-1))
		palette[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return palette
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Values
// past the end of the palette use its last colour.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		col := palette[min(int(c), last)]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image paints a w x h grid of cells into an RGBA image, one pixel per cell.
// Missing cells are left transparent.
func Image(cells []uint8, w, h int, palette []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	n := min(len(cells), w*h)
	fillPaletteRGBA(img.Pix, cells[:n], palette)
	return img
}

// Scale enlarges img by an integer factor with nearest-neighbour sampling so
// cell edges stay sharp.
func Scale(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

// WritePNG encodes the grid as a PNG using the greyscale palette for k
// states, each cell drawn as a scale x scale square.
func WritePNG(w io.Writer, cells []uint8, width, height, k, scale int) error {
	img := Image(cells, width, height, Palette(k))
	return png.Encode(w, Scale(img, scale))
}
