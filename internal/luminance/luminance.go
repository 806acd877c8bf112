// Package luminance flattens images into a single 8-bit brightness channel.
package luminance

import (
	"image"
	"image/color"
)

// Grid is a row-major luminance raster. It is never modified after
// Composite returns it.
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

func (g *Grid) At(x, y int) uint8 {
	return g.Pix[y*g.Width+x]
}

// Row returns the samples of row y. The slice aliases the grid.
func (g *Grid) Row(y int) []uint8 {
	return g.Pix[y*g.Width : (y+1)*g.Width]
}

// Gray converts c to luma using the ITU-R 601-2 weights on non-premultiplied
// 8-bit channels. The alpha channel is ignored.
func Gray(c color.Color) uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint8((299*uint32(n.R) + 587*uint32(n.G) + 114*uint32(n.B) + 500) / 1000)
}

// HasAlpha reports whether img's color model carries an alpha channel.
// Paletted images only count when one of their entries is not fully opaque.
func HasAlpha(img image.Image) bool {
	if p, ok := img.ColorModel().(color.Palette); ok {
		for _, c := range p {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	}

	switch img.ColorModel() {
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model,
		color.AlphaModel, color.Alpha16Model:
		return true
	}
	return false
}

// Composite builds the luminance grid of img. When alpha is set, fully
// transparent pixels are forced to white. Partially transparent pixels keep
// their gray value and are not blended against any background.
func Composite(img image.Image, alpha bool) *Grid {
	b := img.Bounds()
	g := &Grid{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]uint8, b.Dx()*b.Dy()),
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.At(x, y)
			if alpha {
				if _, _, _, a := c.RGBA(); a == 0 {
					g.Pix[i] = 255
					i++
					continue
				}
			}
			g.Pix[i] = Gray(c)
			i++
		}
	}
	return g
}
