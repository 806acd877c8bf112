// Package preview renders a colored thumbnail of an image for the terminal.
package preview

import (
	"image"
	"image/color"
	"strings"

	"github.com/koki-develop/img2txt/internal/resize"
	"github.com/qeesung/image2ascii/ascii"
)

type Renderer struct {
	resizer        *resize.Resizer
	pixelConverter ascii.PixelConverter
	options        ascii.Options
}

func NewRenderer(colored bool) *Renderer {
	opts := ascii.DefaultOptions
	opts.Colored = colored
	return &Renderer{
		resizer:        resize.NewResizer(),
		pixelConverter: ascii.NewPixelConverter(),
		options:        opts,
	}
}

// Render fits img into w x h cells and returns one string per row.
func (r *Renderer) Render(img image.Image, w, h int) []string {
	if w <= 0 || h <= 0 {
		return nil
	}
	img = r.resizer.Fit(img, w, h)

	sz := img.Bounds()
	rows := make([]string, 0, sz.Dy())
	for i := sz.Min.Y; i < sz.Max.Y; i++ {
		b := new(strings.Builder)
		for j := sz.Min.X; j < sz.Max.X; j++ {
			pixel := color.NRGBAModel.Convert(img.At(j, i))
			b.WriteString(r.pixelConverter.ConvertPixelToASCII(pixel, &r.options))
		}
		rows = append(rows, b.String())
	}
	return rows
}
