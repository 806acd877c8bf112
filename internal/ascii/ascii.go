package ascii

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/koki-develop/img2txt/internal/dimension"
	"github.com/koki-develop/img2txt/internal/glyph"
	"github.com/koki-develop/img2txt/internal/luminance"
	"github.com/koki-develop/img2txt/internal/resize"
)

type State int32

const (
	StateIdle State = iota
	StateResizing
	StateCompositing
	StateQuantizing
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResizing:
		return "resizing"
	case StateCompositing:
		return "compositing"
	case StateQuantizing:
		return "quantizing"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Progress reports rows finished out of the total. Final is set on the one
// event sent after the last row, which always has Done == Total.
type Progress struct {
	Done  int
	Total int
	Final bool
}

// Percent returns completion in [0, 100]. An empty conversion is complete.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 100
	}
	return p.Done * 100 / p.Total
}

type Result struct {
	Text   string
	Width  int
	Height int
}

// Converter turns images into text. A Converter runs one conversion at a
// time; State may be read from other goroutines while it works.
type Converter struct {
	resizer *resize.Resizer
	logger  *slog.Logger
	state   atomic.Int32
}

func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{
		resizer: resize.NewResizer(),
		logger:  logger,
	}
}

func (c *Converter) State() State {
	return State(c.state.Load())
}

func (c *Converter) setState(s State) {
	c.state.Store(int32(s))
	c.logger.Debug("conversion state", "state", s)
}

// Convert renders img at the size resolved from req. onProgress, if not nil,
// is called once per row and once more with Final set.
func (c *Converter) Convert(img image.Image, req dimension.Request, onProgress func(Progress)) (*Result, error) {
	if onProgress == nil {
		onProgress = func(Progress) {}
	}

	sz := img.Bounds()
	dim, err := dimension.Resolve(sz.Dx(), sz.Dy(), req)
	if err != nil {
		c.setState(StateFailed)
		return nil, fmt.Errorf("failed to resolve dimensions: %w", err)
	}
	if dim.Width < 0 || dim.Height < 0 {
		c.setState(StateFailed)
		return nil, fmt.Errorf("failed to resolve dimensions: %w: %dx%d", dimension.ErrInvalidDimension, dim.Width, dim.Height)
	}
	c.logger.Info("resolved dimensions", "native", fmt.Sprintf("%dx%d", sz.Dx(), sz.Dy()), "request", req.String(), "width", dim.Width, "height", dim.Height)

	if dim.Width == 0 || dim.Height == 0 {
		// Nothing to draw, on either axis. This is a conversion of zero rows.
		c.setState(StateComplete)
		onProgress(Progress{Done: 0, Total: 0, Final: true})
		return &Result{Width: dim.Width, Height: dim.Height}, nil
	}

	c.setState(StateResizing)
	resized := c.resizer.Resize(img, dim.Width, dim.Height)

	c.setState(StateCompositing)
	grid := luminance.Composite(resized, luminance.HasAlpha(img))

	c.setState(StateQuantizing)
	rows := c.quantize(grid, onProgress)

	c.setState(StateComplete)
	onProgress(Progress{Done: grid.Height, Total: grid.Height, Final: true})

	return &Result{Text: string(rows), Width: grid.Width, Height: grid.Height}, nil
}

func (c *Converter) quantize(grid *luminance.Grid, onProgress func(Progress)) []byte {
	b := make([]byte, 0, (grid.Width+1)*grid.Height)
	for i := 0; i < grid.Height; i++ {
		b = glyph.QuantizeRow(b, grid.Row(i))
		b = append(b, '\n')
		onProgress(Progress{Done: i + 1, Total: grid.Height})
	}
	return b
}
