package job

import (
	"github.com/koki-develop/img2txt/internal/ascii"
	"github.com/koki-develop/img2txt/internal/session"
)

// Event is anything the pipeline reports back to the front-end.
type Event interface {
	event()
}

type AcceptedImage struct {
	Path   string
	Format string
}

type RejectedImage struct {
	Path   string
	Reason string
	Err    error
}

type DimensionPrompt struct {
	Phase session.Phase
}

type DimensionError struct {
	Reason string
}

// ProgressUpdate is sent after every row and once more with Final set when
// the text is ready to be written.
type ProgressUpdate struct {
	Done  int
	Total int
	Final bool
}

func (p ProgressUpdate) Percent() int {
	return ascii.Progress{Done: p.Done, Total: p.Total, Final: p.Final}.Percent()
}

type ConversionComplete struct {
	OutputPath string
}

type ConversionFailed struct {
	Reason string
	Err    error
}

func (AcceptedImage) event()      {}
func (RejectedImage) event()      {}
func (DimensionPrompt) event()    {}
func (DimensionError) event()     {}
func (ProgressUpdate) event()     {}
func (ConversionComplete) event() {}
func (ConversionFailed) event()   {}
