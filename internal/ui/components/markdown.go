package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
)

// MarkdownRenderer wraps glamour for the sheet body and the background page
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// NewMarkdownRenderer creates a markdown renderer wrapping at width. style
// is a glamour standard style name such as "dark" or "notty".
func NewMarkdownRenderer(width int, style string) (*MarkdownRenderer, error) {
	if style == "" {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width, 1)),
		glamour.WithEmoji(),
	)
	if err != nil {
		return nil, err
	}

	return &MarkdownRenderer{
		renderer: renderer,
		width:    width,
		style:    style,
	}, nil
}

// Render renders markdown and returns its lines without the trailing blank
// lines glamour appends
func (mr *MarkdownRenderer) Render(content string) ([]string, error) {
	out, err := mr.renderer.Render(content)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(out, "\n")
	for len(lines) > 0 && strings.TrimSpace(ansi.Strip(lines[len(lines)-1])) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// Width returns the wrap width
func (mr *MarkdownRenderer) Width() int {
	return mr.width
}

// UpdateWidth recreates the renderer for a new wrap width
func (mr *MarkdownRenderer) UpdateWidth(width int) error {
	if width == mr.width {
		return nil
	}

	newRenderer, err := NewMarkdownRenderer(width, mr.style)
	if err != nil {
		return err
	}

	mr.renderer = newRenderer.renderer
	mr.width = width
	return nil
}
