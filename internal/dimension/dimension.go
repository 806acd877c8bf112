// Package dimension computes the character grid an image is converted to.
package dimension

import (
	"errors"
	"fmt"
)

// GlyphCorrection compensates for text cells being taller than they are wide.
const GlyphCorrection = 2.8

var ErrInvalidDimension = errors.New("invalid dimension")

// Request holds the user supplied width and height. A zero value means the
// axis is unset and falls back to the image's native size.
type Request struct {
	Width  int
	Height int
}

// Unset reports whether neither axis was requested.
func (r Request) Unset() bool {
	return r.Width == 0 && r.Height == 0
}

func (r Request) String() string {
	return fmt.Sprintf("%s x %s", axisString(r.Width), axisString(r.Height))
}

func axisString(v int) string {
	if v == 0 {
		return "default"
	}
	return fmt.Sprint(v)
}

type Resolved struct {
	Width  int
	Height int
}

// Limits on the output grid. Anything larger is far beyond what a text
// viewer can show and would only exhaust memory.
const (
	MaxSide  = 1 << 16
	MaxCells = 1 << 26
)

// Resolve returns the output size for an image of nativeW x nativeH.
//
// When only one axis is requested the other one is derived from the aspect
// ratio and GlyphCorrection. When both are requested the height is derived
// from the width unless it would exceed the requested height, in which case
// the width is derived from the height instead. When nothing is requested the
// native size is returned as is, without glyph correction or limits.
//
// A derived axis may floor to zero for extreme aspect ratios. Requested or
// derived sizes above MaxSide, or grids above MaxCells, fail with
// ErrInvalidDimension.
func Resolve(nativeW, nativeH int, req Request) (Resolved, error) {
	if nativeW <= 0 || nativeH <= 0 {
		return Resolved{}, fmt.Errorf("%w: native size %dx%d", ErrInvalidDimension, nativeW, nativeH)
	}
	if req.Width < 0 || req.Width > MaxSide {
		return Resolved{}, fmt.Errorf("%w: width %d", ErrInvalidDimension, req.Width)
	}
	if req.Height < 0 || req.Height > MaxSide {
		return Resolved{}, fmt.Errorf("%w: height %d", ErrInvalidDimension, req.Height)
	}
	if req.Unset() {
		return Resolved{Width: nativeW, Height: nativeH}, nil
	}

	aspect := float64(nativeH) / float64(nativeW)

	var r Resolved
	switch {
	case req.Width > 0 && req.Height > 0:
		h := floor(float64(req.Width) * aspect / GlyphCorrection)
		if h < 0 || h > req.Height {
			r = Resolved{Width: floor(float64(req.Height) * GlyphCorrection / aspect), Height: req.Height}
		} else {
			r = Resolved{Width: req.Width, Height: h}
		}
	case req.Width > 0:
		r = Resolved{Width: req.Width, Height: floor(float64(req.Width) * aspect / GlyphCorrection)}
	default:
		r = Resolved{Width: floor(float64(req.Height) * GlyphCorrection / aspect), Height: req.Height}
	}

	if r.Width < 0 || r.Height < 0 {
		return Resolved{}, fmt.Errorf("%w: derived size exceeds %d per side", ErrInvalidDimension, MaxSide)
	}
	if r.Width*r.Height > MaxCells {
		return Resolved{}, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrInvalidDimension, r.Width, r.Height, MaxCells)
	}
	return r, nil
}

// floor truncates v, or returns -1 when v does not fit in MaxSide.
func floor(v float64) int {
	if v > MaxSide {
		return -1
	}
	return int(v)
}
