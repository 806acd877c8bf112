package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const consoleLines = 5

var (
	infoStyle    = lipgloss.NewStyle()
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

type consoleLine struct {
	text  string
	style lipgloss.Style
}

// console keeps the latest few status messages, oldest first.
type console struct {
	lines []consoleLine
}

func (c *console) add(text string, style lipgloss.Style) {
	c.lines = append(c.lines, consoleLine{text, style})
	if len(c.lines) > consoleLines {
		c.lines = c.lines[len(c.lines)-consoleLines:]
	}
}

// replace swaps the newest line for text.
func (c *console) replace(text string, style lipgloss.Style) {
	if len(c.lines) > 0 {
		c.lines = c.lines[:len(c.lines)-1]
	}
	c.add(text, style)
}

func (c *console) clear() {
	c.lines = nil
}

func (c *console) View() string {
	b := new(strings.Builder)
	for _, l := range c.lines {
		b.WriteString(l.style.Render(l.text))
		b.WriteString("\n")
	}
	return b.String()
}
