package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
)

const resetStyle = "\x1b[0m"

// Compositor draws the overlay dim and places the sheet over the page
type Compositor struct {
	background colorful.Color
	foreground colorful.Color
	overlay    colorful.Color
	strength   float64
}

// NewCompositor creates a compositor. Colours are #rrggbb; strength is the
// share of the overlay colour mixed in at opacity 1.
func NewCompositor(background, foreground, overlay string, strength float64) (*Compositor, error) {
	bg, err := colorful.Hex(background)
	if err != nil {
		return nil, fmt.Errorf("invalid background colour: %w", err)
	}
	fg, err := colorful.Hex(foreground)
	if err != nil {
		return nil, fmt.Errorf("invalid foreground colour: %w", err)
	}
	ov, err := colorful.Hex(overlay)
	if err != nil {
		return nil, fmt.Errorf("invalid overlay colour: %w", err)
	}
	return &Compositor{
		background: bg,
		foreground: fg,
		overlay:    ov,
		strength:   min(max(strength, 0), 1),
	}, nil
}

// mix returns the blend factor for an overlay opacity
func (c *Compositor) mix(opacity float64) float64 {
	return min(max(opacity, 0), 1) * c.strength
}

// Background returns the page background colour under the overlay
func (c *Compositor) Background(opacity float64) colorful.Color {
	return c.background.BlendRgb(c.overlay, c.mix(opacity)).Clamped()
}

// Foreground returns the page text colour under the overlay
func (c *Compositor) Foreground(opacity float64) colorful.Color {
	return c.foreground.BlendRgb(c.overlay, c.mix(opacity)).Clamped()
}

// Dim repaints page lines under the overlay. At opacity 0 the lines are
// returned untouched; otherwise their own styling is replaced by the
// blended colours.
func (c *Compositor) Dim(lines []string, opacity float64) []string {
	out := make([]string, len(lines))
	if c.mix(opacity) == 0 {
		copy(out, lines)
		return out
	}

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Foreground(opacity).Hex())).
		Background(lipgloss.Color(c.Background(opacity).Hex()))
	for i, line := range lines {
		out[i] = style.Render(ansi.Strip(line))
	}
	return out
}

// Splice draws block over base with its top-left cell at (x, y). Parts of
// the block outside [0, width) and outside base's rows are clipped.
func (c *Compositor) Splice(base, block []string, x, y, width int) []string {
	out := append([]string(nil), base...)

	for i, line := range block {
		row := y + i
		if row < 0 || row >= len(out) {
			continue
		}

		seg, segX := line, x
		if segX < 0 {
			seg = ansi.TruncateLeft(seg, -segX, "")
			segX = 0
		}
		if segX >= width {
			continue
		}
		seg = ansi.Truncate(seg, width-segX, "")
		segW := ansi.StringWidth(seg)
		if segW == 0 {
			continue
		}

		under := out[row]
		left := ansi.Truncate(under, segX, "")
		if pad := segX - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(under, segX+segW, "")

		out[row] = left + resetStyle + seg + resetStyle + right
	}
	return out
}
