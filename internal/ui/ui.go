package ui

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/koki-develop/img2txt/internal/imagefile"
	"github.com/koki-develop/img2txt/internal/job"
	"github.com/koki-develop/img2txt/internal/preview"
	"github.com/koki-develop/img2txt/internal/session"
)

type Option struct {
	Path   string
	OutDir string
	Logger *slog.Logger
}

func Start(opt *Option) error {
	m := newModel(opt)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

var _ tea.Model = &model{}

type model struct {
	logger *slog.Logger

	path   string
	outDir string

	state        modelState
	windowHeight int
	windowWidth  int

	picker   filepicker.Model
	progress progress.Model
	help     help.Model
	keys     keyMap
	console  *console

	renderer *preview.Renderer
	image    image.Image
	preview  []string

	// Per-image state. Both are dropped when a conversion starts or a new
	// image is chosen.
	job     *job.Job
	session *session.Session
	percent float64
}

func newModel(opt *Option) *model {
	logger := opt.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	picker := filepicker.New()
	picker.AllowedTypes = imagefile.Extensions
	picker.AutoHeight = false
	picker.Height = 10
	if wd, err := os.Getwd(); err == nil {
		picker.CurrentDirectory = wd
	}

	return &model{
		logger: logger,

		path:   opt.Path,
		outDir: opt.OutDir,

		picker:   picker,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     help.New(),
		keys:     newKeyMap(),
		console:  &console{},
		renderer: preview.NewRenderer(true),
	}
}

type modelState string

const (
	modelStateSelecting  modelState = "selecting"
	modelStateEntering   modelState = "entering"
	modelStateProcessing modelState = "processing"
)

type acceptMsg struct {
	job   *job.Job
	event job.Event
	image image.Image
}

type commitMsg struct{}

type eventMsg struct {
	event  job.Event
	events <-chan job.Event
}

func (m *model) Init() tea.Cmd {
	m.setState(modelStateSelecting)
	m.console.add("Submit an image to convert to ASCII art!", infoStyle)
	if m.path != "" {
		return tea.Batch(m.picker.Init(), m.accept(m.path))
	}
	return m.picker.Init()
}

func (m *model) setState(s modelState) {
	m.state = s
	m.keys.enable(s)
	m.logger.Debug("ui state", "state", s)
}

func (m *model) View() string {
	b := new(strings.Builder)
	b.WriteString(m.titleView())
	b.WriteString("\n\n")

	switch m.state {
	case modelStateSelecting:
		b.WriteString(m.picker.View())
		b.WriteString("\n")
	case modelStateEntering:
		for _, row := range m.preview {
			b.WriteString(row)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	case modelStateProcessing:
		b.WriteString(m.progress.ViewAs(m.percent))
		b.WriteString("\n\n")
	}

	b.WriteString(m.console.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) titleView() string {
	var chip string
	switch m.state {
	case modelStateSelecting:
		chip = color.New(color.BgBlue, color.FgWhite).Sprint(" SELECT ")
	case modelStateEntering:
		chip = color.New(color.BgGreen, color.FgBlack).Sprint(" SIZE ")
	case modelStateProcessing:
		chip = color.New(color.BgRed, color.FgWhite).Sprint(" BUSY ")
	}
	return chip + " Image to ASCII"
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state == modelStateEntering {
			return m, m.handleKey(msg)
		}
		if m.state == modelStateProcessing {
			// A conversion cannot be interrupted or replaced.
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.windowHeight = msg.Height
		m.windowWidth = msg.Width
		m.help.Width = msg.Width
		m.renderPreview()
		return m, nil

	case acceptMsg:
		return m, m.handleAccept(msg)

	case commitMsg:
		return m, m.commit()

	case eventMsg:
		return m, tea.Batch(m.handleEvent(msg.event), waitForEvent(msg.events))
	}

	if m.state == modelStateSelecting {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		if ok, path := m.picker.DidSelectFile(msg); ok {
			return m, tea.Batch(cmd, m.accept(path))
		}
		if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
			m.console.clear()
			m.console.add(fmt.Sprintf("Rejected file: %s. It is not a valid image format.", path), errorStyle)
			return m, cmd
		}
		return m, cmd
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Browse):
		m.reset()
		m.console.add("Submit an image to convert to ASCII art!", infoStyle)
		return m.picker.Init()

	case key.Matches(msg, m.keys.Submit):
		if m.session.Submit() {
			return func() tea.Msg { return commitMsg{} }
		}
		return nil

	case key.Matches(msg, m.keys.Backspace):
		if m.session.Backspace() {
			m.updateInputLine()
		}
		return nil
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		typed := false
		for _, r := range msg.Runes {
			typed = m.session.Type(r) || typed
		}
		if typed {
			m.updateInputLine()
		}
	}
	return nil
}

func (m *model) accept(path string) tea.Cmd {
	opt := &job.Option{OutDir: m.outDir, Logger: m.logger}
	return func() tea.Msg {
		j, ev := job.Accept(path, opt)
		var img image.Image
		if j != nil {
			// Only used for the preview; the job decodes again on its own.
			img, _ = imagefile.Decode(path)
		}
		return acceptMsg{job: j, event: ev, image: img}
	}
}

func (m *model) handleAccept(msg acceptMsg) tea.Cmd {
	if m.state == modelStateProcessing {
		return nil
	}

	m.reset()
	cmd := m.handleEvent(msg.event)
	if msg.job == nil {
		return cmd
	}

	m.job = msg.job
	m.session = session.New()
	m.image = msg.image
	m.renderPreview()
	m.setState(modelStateEntering)
	return tea.Batch(cmd, m.handleEvent(job.DimensionPrompt{Phase: m.session.Phase()}))
}

func (m *model) commit() tea.Cmd {
	if m.session == nil {
		return nil
	}

	input := strings.TrimSpace(m.session.Buffer())
	prev := m.session.Phase()
	phase, err := m.session.Commit()
	if err != nil {
		return m.handleEvent(job.DimensionError{Reason: err.Error()})
	}

	if input == "" {
		m.console.replace("No input provided, using default size.", infoStyle)
	} else {
		m.console.replace(fmt.Sprintf("%s entered: %s", capitalize(prev.String()), input), infoStyle)
	}

	if phase != session.Submitted {
		return m.handleEvent(job.DimensionPrompt{Phase: phase})
	}

	req := m.session.Request()
	m.session = nil
	events, err := m.job.Start(req)
	if err != nil {
		return m.handleEvent(job.ConversionFailed{Reason: err.Error(), Err: err})
	}
	m.logger.Info("conversion started", "path", m.job.Path(), "request", req.String())
	m.percent = 0
	m.setState(modelStateProcessing)
	m.console.add("Processing image... (0%)", infoStyle)
	return waitForEvent(events)
}

func (m *model) handleEvent(ev job.Event) tea.Cmd {
	m.logger.Debug("event", "type", fmt.Sprintf("%T", ev), "event", ev)

	switch ev := ev.(type) {
	case job.AcceptedImage:
		m.console.clear()
		m.console.add(fmt.Sprintf("Accepted image file: %s", ev.Path), successStyle)

	case job.RejectedImage:
		m.console.clear()
		m.console.add(fmt.Sprintf("Rejected file: %s. It is not a valid image format.", ev.Path), errorStyle)
		m.console.add(ev.Reason, errorStyle)

	case job.DimensionPrompt:
		m.console.add(fmt.Sprintf("Enter desired %s (leave blank for default):", ev.Phase), promptStyle)

	case job.DimensionError:
		m.console.add("Error: Please enter a valid number.", errorStyle)
		m.logger.Warn("invalid dimension", "reason", ev.Reason)
		return m.handleEvent(job.DimensionPrompt{Phase: m.session.Phase()})

	case job.ProgressUpdate:
		m.percent = float64(ev.Percent()) / 100
		m.console.replace(fmt.Sprintf("Processing image... (%d%%)", ev.Percent()), infoStyle)

	case job.ConversionComplete:
		m.console.add(fmt.Sprintf("ASCII art successfully written to %s!", ev.OutputPath), successStyle)
		m.reset()
		return nil

	case job.ConversionFailed:
		m.console.add(ev.Reason, errorStyle)
		m.reset()
		m.console.add("Submit an image to convert to ASCII art!", infoStyle)
		return nil
	}

	return nil
}

// reset drops all per-image state and goes back to choosing an image.
func (m *model) reset() {
	m.job = nil
	m.session = nil
	m.image = nil
	m.preview = nil
	m.percent = 0
	m.setState(modelStateSelecting)
}

func (m *model) updateInputLine() {
	m.console.replace(fmt.Sprintf("Enter desired %s: %s", m.session.Phase(), m.session.Buffer()), promptStyle)
}

func (m *model) renderPreview() {
	if m.image == nil {
		m.preview = nil
		return
	}
	// Leave room for the title, console and help lines.
	m.preview = m.renderer.Render(m.image, m.windowWidth-2, m.windowHeight-consoleLines-8)
}

func waitForEvent(events <-chan job.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{event: ev, events: events}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
