// Package job ties validation, conversion and output for a single image.
package job

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/koki-develop/img2txt/internal/ascii"
	"github.com/koki-develop/img2txt/internal/dimension"
	"github.com/koki-develop/img2txt/internal/imagefile"
)

type Option struct {
	OutDir string
	Logger *slog.Logger
}

// Job is the state owned by one accepted image. It is created by Accept and
// runs at most once.
type Job struct {
	path   string
	format string
	outDir string
	logger *slog.Logger

	converter *ascii.Converter
	started   atomic.Bool
	finished  atomic.Bool
}

// Accept validates path and returns a job for it together with the event to
// report: AcceptedImage on success, RejectedImage otherwise.
func Accept(path string, opt *Option) (*Job, Event) {
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	format, err := imagefile.Validate(path)
	if err != nil {
		logger.Warn("rejected image", "path", path, "err", err)
		return nil, RejectedImage{Path: path, Reason: err.Error(), Err: err}
	}
	logger.Info("accepted image", "path", path, "format", format)

	outDir := opt.OutDir
	if outDir == "" {
		outDir = "."
	}
	return &Job{
		path:      path,
		format:    format,
		outDir:    outDir,
		logger:    logger,
		converter: ascii.NewConverter(logger),
	}, AcceptedImage{Path: path, Format: format}
}

func (j *Job) Path() string { return j.path }

func (j *Job) OutputPath() string {
	return imagefile.OutputPath(j.path, j.outDir)
}

// Finished reports whether the worker has sent its last event.
func (j *Job) Finished() bool { return j.finished.Load() }

// Start converts the image with req in a new goroutine. Events are sent on
// the returned channel in order and the channel is closed after
// ConversionComplete or ConversionFailed.
func (j *Job) Start(req dimension.Request) (<-chan Event, error) {
	if !j.started.CompareAndSwap(false, true) {
		return nil, errors.New("job already started")
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer j.finished.Store(true)
		events <- j.run(req, events)
	}()
	return events, nil
}

// Run converts synchronously, calling onEvent for each event.
func (j *Job) Run(req dimension.Request, onEvent func(Event)) error {
	events, err := j.Start(req)
	if err != nil {
		return err
	}
	var last Event
	for ev := range events {
		onEvent(ev)
		last = ev
	}
	if f, ok := last.(ConversionFailed); ok {
		return f.Err
	}
	return nil
}

func (j *Job) run(req dimension.Request, events chan<- Event) Event {
	img, err := imagefile.Decode(j.path)
	if err != nil {
		j.logger.Error("decode failed", "path", j.path, "err", err)
		return ConversionFailed{Reason: "Unable to open image file: " + err.Error(), Err: err}
	}

	res, err := j.converter.Convert(img, req, func(p ascii.Progress) {
		events <- ProgressUpdate{Done: p.Done, Total: p.Total, Final: p.Final}
	})
	if err != nil {
		j.logger.Error("conversion failed", "path", j.path, "err", err)
		return ConversionFailed{Reason: err.Error(), Err: err}
	}

	out := j.OutputPath()
	if err := imagefile.WriteText(out, res.Text); err != nil {
		j.logger.Error("write failed", "path", out, "err", err)
		return ConversionFailed{Reason: fmt.Sprintf("Unable to write %s: %s", out, err), Err: err}
	}
	j.logger.Info("wrote ascii art", "path", out, "width", res.Width, "height", res.Height)
	return ConversionComplete{OutputPath: out}
}
