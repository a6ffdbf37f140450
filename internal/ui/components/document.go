package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Document is the scrollable background page. While locked every scroll
// request is ignored, which is the scroll half of the sheet's guard.
type Document struct {
	lines     []string
	width     int
	height    int
	scrollPos int
	locked    bool
	style     *lipgloss.Style
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{}
}

// SetDimensions sets the visible area
func (d *Document) SetDimensions(width, height int) {
	d.width = width
	d.height = height
	d.clamp()
}

// SetStyle sets the style each visible line is rendered with
func (d *Document) SetStyle(style lipgloss.Style) {
	d.style = &style
}

// SetLines replaces the content, keeping the scroll position where possible
func (d *Document) SetLines(lines []string) {
	d.lines = append([]string(nil), lines...)
	d.clamp()
}

// Lock freezes scrolling
func (d *Document) Lock() {
	d.locked = true
}

// Unlock allows scrolling again
func (d *Document) Unlock() {
	d.locked = false
}

// Locked reports whether scrolling is frozen
func (d *Document) Locked() bool {
	return d.locked
}

// ScrollUp scrolls up by one line
func (d *Document) ScrollUp() {
	d.scrollTo(d.scrollPos - 1)
}

// ScrollDown scrolls down by one line
func (d *Document) ScrollDown() {
	d.scrollTo(d.scrollPos + 1)
}

// ScrollPageUp scrolls up by one page
func (d *Document) ScrollPageUp() {
	d.scrollTo(d.scrollPos - max(d.height-1, 1))
}

// ScrollPageDown scrolls down by one page
func (d *Document) ScrollPageDown() {
	d.scrollTo(d.scrollPos + max(d.height-1, 1))
}

// ScrollToTop scrolls to the top of the page
func (d *Document) ScrollToTop() {
	d.scrollTo(0)
}

// ScrollToBottom scrolls to the bottom of the page
func (d *Document) ScrollToBottom() {
	d.scrollTo(d.maxScroll())
}

func (d *Document) scrollTo(pos int) {
	if d.locked {
		return
	}
	d.scrollPos = pos
	d.clamp()
}

func (d *Document) clamp() {
	d.scrollPos = min(max(d.scrollPos, 0), d.maxScroll())
}

func (d *Document) maxScroll() int {
	return max(len(d.lines)-d.height, 0)
}

// Lines returns exactly height lines of the visible window, each padded or
// cut to width cells
func (d *Document) Lines() []string {
	out := make([]string, d.height)
	for i := range out {
		line := ""
		if idx := d.scrollPos + i; idx < len(d.lines) {
			line = d.lines[idx]
		}
		line = ansi.Truncate(line, d.width, "")
		if pad := d.width - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		if d.style != nil {
			line = d.style.Render(line)
		}
		out[i] = line
	}
	return out
}

// GetScrollInfo returns the current and maximum scroll position
func (d *Document) GetScrollInfo() (current, maximum int) {
	return d.scrollPos, d.maxScroll()
}

// IsAtTop returns true if scrolled to top
func (d *Document) IsAtTop() bool {
	return d.scrollPos <= 0
}

// IsAtBottom returns true if scrolled to bottom
func (d *Document) IsAtBottom() bool {
	return d.scrollPos >= d.maxScroll()
}
