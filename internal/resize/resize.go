package resize

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/qeesung/image2ascii/convert"
)

type Resizer struct {
	resizeHandler *convert.ImageResizeHandler
	interp        resize.InterpolationFunction
}

func NewResizer() *Resizer {
	return &Resizer{
		resizeHandler: convert.NewResizeHandler().(*convert.ImageResizeHandler),
		interp:        resize.Bicubic,
	}
}

// Resize scales img to exactly w x h. The source is returned untouched when
// it already has that size.
func (r *Resizer) Resize(img image.Image, w, h int) image.Image {
	sz := img.Bounds()
	if sz.Dx() == w && sz.Dy() == h {
		return img
	}
	return resize.Resize(uint(w), uint(h), img, r.interp)
}

// Fit scales img down to the largest size that fits in w x h terminal cells.
func (r *Resizer) Fit(img image.Image, w, h int) image.Image {
	sz := img.Bounds()
	neww, newh := r.resizeHandler.CalcFitSize(float64(w), float64(h), float64(sz.Dx()), float64(sz.Dy()))
	return resize.Resize(uint(max(neww, 1)), uint(max(newh, 1)), img, resize.Lanczos3)
}
