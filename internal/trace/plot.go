package trace

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/uoon-dev/sancho/internal/sheet"
)

const (
	plotWidth   = 800
	plotHeight  = 360
	plotMargin  = 40
	plotBandGap = 20
)

// Plot writes an SVG timeline of the position and opacity targets in
// events. The upper band shows the position along the edge's travel axis,
// the lower band the overlay opacity; close requests are marked with a
// vertical line.
func Plot(w io.Writer, edge sheet.Edge, events []Event) error {
	if len(events) == 0 {
		return errors.New("no events to plot")
	}

	var positions, opacities []float64
	var posSeq, opSeq, closes []int
	for _, ev := range events {
		switch ev.Type {
		case EventPosition:
			positions = append(positions, ev.Offset.Along(edge))
			posSeq = append(posSeq, ev.Seq)
		case EventOpacity:
			opacities = append(opacities, *ev.Opacity)
			opSeq = append(opSeq, ev.Seq)
		case EventClosed:
			closes = append(closes, ev.Seq)
		}
	}

	last := events[len(events)-1].Seq
	bandHeight := (plotHeight - 2*plotMargin - plotBandGap) / 2
	posTop := plotMargin
	opTop := plotMargin + bandHeight + plotBandGap

	x := func(seq int) int {
		if last == 0 {
			return plotMargin
		}
		return plotMargin + seq*(plotWidth-2*plotMargin)/last
	}

	lo, hi := bounds(positions)

	canvas := svg.New(w)
	canvas.Start(plotWidth, plotHeight)
	canvas.Title(fmt.Sprintf("sheet timeline (%s edge)", edge))
	canvas.Rect(0, 0, plotWidth, plotHeight, "fill:#282A36")

	canvas.Rect(plotMargin, posTop, plotWidth-2*plotMargin, bandHeight, "fill:none;stroke:#44475A")
	canvas.Rect(plotMargin, opTop, plotWidth-2*plotMargin, bandHeight, "fill:none;stroke:#44475A")
	canvas.Text(plotMargin, posTop-8, fmt.Sprintf("position %.0f..%.0f", lo, hi), "fill:#F8F8F2;font-size:12px;font-family:monospace")
	canvas.Text(plotMargin, opTop-8, "opacity 0..1", "fill:#F8F8F2;font-size:12px;font-family:monospace")

	for _, seq := range closes {
		canvas.Line(x(seq), plotMargin, x(seq), plotHeight-plotMargin, "stroke:#FF5555;stroke-dasharray:4,4")
	}

	drawSeries(canvas, posSeq, positions, x, func(v float64) int {
		return posTop + scale(v, hi, lo, bandHeight)
	}, "#BD93F9")
	drawSeries(canvas, opSeq, opacities, x, func(v float64) int {
		return opTop + scale(v, 1, 0, bandHeight)
	}, "#50FA7B")

	canvas.End()
	return nil
}

func drawSeries(canvas *svg.SVG, seqs []int, values []float64, x func(int) int, y func(float64) int, color string) {
	if len(values) == 0 {
		return
	}
	xs := make([]int, len(values))
	ys := make([]int, len(values))
	for i, v := range values {
		xs[i] = x(seqs[i])
		ys[i] = y(v)
	}
	canvas.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+color)
	for i := range xs {
		canvas.Circle(xs[i], ys[i], 3, "fill:"+color)
	}
}

// scale maps v from [top, bottom] onto [0, height]
func scale(v, top, bottom float64, height int) int {
	if top == bottom {
		return height / 2
	}
	return int(math.Round((top - v) / (top - bottom) * float64(height)))
}

func bounds(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
