package ui

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koki-develop/img2txt/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	enter     = tea.KeyMsg{Type: tea.KeyEnter}
	backspace = tea.KeyMsg{Type: tea.KeyBackspace}
)

func (c *console) last() string {
	if len(c.lines) == 0 {
		return ""
	}
	return c.lines[len(c.lines)-1].text
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func writeImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "dark.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// drive runs cmd and feeds every resulting message back into m until no
// commands are left.
func drive(m *model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			drive(m, c)
		}
		return
	}
	if msg == nil {
		return
	}
	_, next := m.Update(msg)
	drive(m, next)
}

func accepted(t *testing.T, out string, w, h int) *model {
	t.Helper()
	m := newModel(&Option{OutDir: out})
	m.Init()
	m.Update(m.accept(writeImage(t, w, h))())
	require.Equal(t, modelStateEntering, m.state)
	require.NotNil(t, m.session)
	return m
}

func TestModelConvert(t *testing.T) {
	out := t.TempDir()
	m := accepted(t, out, 40, 20)

	m.Update(runes("120"))
	m.Update(backspace)
	assert.Equal(t, "Enter desired width: 12", m.console.last())

	_, cmd := m.Update(enter)
	require.NotNil(t, cmd)
	_, dup := m.Update(enter)
	assert.Nil(t, dup, "second enter is dropped while the first is committed")
	drive(m, cmd)
	assert.Equal(t, session.EnteringHeight, m.session.Phase())
	assert.Equal(t, 12, m.session.Request().Width)

	_, cmd = m.Update(enter)
	drive(m, cmd)

	assert.Equal(t, modelStateSelecting, m.state)
	assert.Nil(t, m.job)
	assert.Nil(t, m.session)
	assert.Contains(t, m.console.last(), "successfully written")

	text, err := os.ReadFile(filepath.Join(out, "dark_ASCII.txt"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(text), "\n"), "\n")
	// 12 * (20/40) / 2.8 = 2.14
	require.Len(t, lines, 2)
	assert.Equal(t, "@@@@@@@@@@@@", lines[0])
}

func TestModelInvalidDimension(t *testing.T) {
	m := accepted(t, t.TempDir(), 4, 4)

	m.Update(runes("abc"))
	_, cmd := m.Update(enter)
	drive(m, cmd)

	assert.Equal(t, modelStateEntering, m.state)
	assert.Equal(t, session.EnteringWidth, m.session.Phase())
	assert.Equal(t, "", m.session.Buffer())
	assert.Contains(t, m.console.View(), "Error: Please enter a valid number.")
}

func TestModelRejectsNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))

	m := newModel(&Option{OutDir: t.TempDir()})
	m.Init()
	m.Update(m.accept(path)())

	assert.Equal(t, modelStateSelecting, m.state)
	assert.Nil(t, m.session)
	assert.Contains(t, m.console.View(), "Rejected file")
}

func TestModelIgnoresNewImageWhileProcessing(t *testing.T) {
	m := accepted(t, t.TempDir(), 4, 4)
	m.setState(modelStateProcessing)
	current := m.job

	m.Update(m.accept(writeImage(t, 2, 2))())
	assert.Same(t, current, m.job)
	assert.Equal(t, modelStateProcessing, m.state)
}

func TestModelBrowseResets(t *testing.T) {
	m := accepted(t, t.TempDir(), 4, 4)
	m.Update(runes("9"))
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlO})

	assert.Equal(t, modelStateSelecting, m.state)
	assert.Nil(t, m.session)
	assert.Nil(t, m.job)
}

func TestConsole(t *testing.T) {
	c := &console{}
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		c.add(s, infoStyle)
	}
	assert.Len(t, c.lines, consoleLines)
	assert.Equal(t, "b", c.lines[0].text)

	c.replace("g", infoStyle)
	assert.Len(t, c.lines, consoleLines)
	assert.Equal(t, "g", c.last())

	c.clear()
	assert.Equal(t, "", c.last())
	c.replace("h", infoStyle)
	assert.Equal(t, "h", c.last())
}
