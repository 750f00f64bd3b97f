// Package barplot draws the stacked ancestry bar chart: one bar per sample,
// one colored segment per ancestral component, with population labels placed
// by a grouplayout.Layout.
package barplot

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/carbocation/admixplot/admixture"
	"github.com/carbocation/admixplot/grouplayout"
)

// AxisLineFraction is the share of the plot height covered by the axis
// reference line drawn in boundaries mode.
const AxisLineFraction = 0.95121

// Line widths in pixels.
const (
	dividerWidth = 0.5
	spineWidth   = 0.8
	tickLength   = 4.0
)

// minLabelFontSize is the smallest point size a population label shrinks to.
const minLabelFontSize = 1.0

// YTicks are the proportion values labeled on the y axis.
var YTicks = []float64{0, 0.2, 0.4, 0.6, 0.8, 1}

// Options are the styling choices of a plot.
type Options struct {
	// Palette is cycled through when there are more components than colors.
	Palette []color.Color

	LabelFontSize  float64
	TitleFontSize  float64
	LegendFontSize float64
	TickFontSize   float64

	// BarWidth is the share of each sample's slot covered by its bar.
	BarWidth float64

	// ShowK draws a "K = n" title above the plot.
	ShowK bool
}

// frame is the pixel rectangle of the plotting area and the mapping of axis
// units into it.
type frame struct {
	left, top, right, bottom float64

	// unit is the pixel width of one sample slot
	unit float64

	// labelSize is the population label size in points.
	labelSize float64
}

// x maps an axis position, where bar i is centered on i, to pixels.
func (f frame) x(pos float64) float64 {
	return f.left + (pos+0.5)*f.unit
}

// y maps a proportion to pixels.
func (f frame) y(v float64) float64 {
	return f.bottom - v*(f.bottom-f.top)
}

// Draw paints the table, in its current row order, onto c. The layout must
// have been computed from the same row order.
func Draw(c Canvas, t *admixture.Table, l grouplayout.Layout, opts Options) error {
	if len(t.Rows) == 0 {
		return grouplayout.EmptyGroupError{}
	}
	if l.N != len(t.Rows) {
		return fmt.Errorf("layout covers %d bars but the table has %d rows", l.N, len(t.Rows))
	}
	if len(opts.Palette) == 0 {
		return fmt.Errorf("palette is empty")
	}
	if opts.BarWidth <= 0 || opts.BarWidth > 1 {
		return fmt.Errorf("bar width must be in (0, 1], got %v", opts.BarWidth)
	}
	if opts.TickFontSize <= 0 {
		opts.TickFontSize = opts.LabelFontSize
	}

	f := plotFrame(c, t, l, opts)
	if f.right <= f.left || f.bottom <= f.top {
		w, h := c.Size()
		return fmt.Errorf("a %dx%d figure leaves no room for the plot", w, h)
	}

	drawBars(c, t, f, opts)
	drawAxes(c, f, opts)
	drawGroups(c, l, f)
	drawLegend(c, t.Components(), f, opts)

	if opts.ShowK {
		title := "K = " + strconv.Itoa(t.K)
		w, h := c.MeasureText(title, opts.TitleFontSize)
		c.Text(title, (f.left+f.right-w)/2, f.top-h, opts.TitleFontSize, 0, color.Black)
	}

	return nil
}

// plotFrame reserves room for the title, tick labels, legend and population
// labels around the plotting area. The horizontal extent is settled first
// because the label size depends on the slot width.
func plotFrame(c Canvas, t *admixture.Table, l grouplayout.Layout, opts Options) frame {
	width, height := c.Size()
	w, h := float64(width), float64(height)
	pad := 0.01 * w

	tickWidth, _ := c.MeasureText("0.0", opts.TickFontSize)

	var legendWidth float64
	for _, name := range t.Components() {
		tw, _ := c.MeasureText(name, opts.LegendFontSize)
		legendWidth = math.Max(legendWidth, tw)
	}
	_, legendHeight := c.MeasureText("pop", opts.LegendFontSize)
	legendWidth += 2*legendHeight + 2*pad

	out := frame{
		left:  pad + tickWidth + tickLength + pad,
		right: w - legendWidth,
	}
	out.unit = (out.right - out.left) / float64(len(t.Rows))
	out.labelSize = labelFontSize(l, opts, out.unit)

	var labelDepth float64
	for _, g := range l.Groups {
		tw, _ := c.MeasureText(g.Label, out.labelSize)
		labelDepth = math.Max(labelDepth, tw)
	}
	// Very long labels are allowed to run off the bottom edge
	labelDepth = math.Min(labelDepth, 0.4*h)

	out.top = 0.05 * h
	if opts.ShowK {
		_, th := c.MeasureText("K", opts.TitleFontSize)
		out.top = math.Max(out.top, 3*th)
	}
	out.bottom = h - labelDepth - 0.05*h

	return out
}

// labelFontSize sizes the population labels. In ModeFirstBar a label is as
// tall, in points, as its bar is wide on the page, capped at LabelFontSize.
func labelFontSize(l grouplayout.Layout, opts Options, unit float64) float64 {
	if l.Mode != grouplayout.ModeFirstBar {
		return opts.LabelFontSize * l.LabelScale
	}

	barPoints := l.LabelScale * unit * 72 / DPI
	return math.Max(minLabelFontSize, math.Min(opts.LabelFontSize, barPoints))
}

func drawBars(c Canvas, t *admixture.Table, f frame, opts Options) {
	half := opts.BarWidth / 2

	for i, row := range t.Rows {
		x0, x1 := f.x(float64(i)-half), f.x(float64(i)+half)

		var cum float64
		for j, p := range row.Proportions {
			lo := math.Min(cum, 1)
			cum += p
			hi := math.Min(cum, 1)
			if hi <= lo {
				continue
			}

			c.FillRect(x0, f.y(hi), x1, f.y(lo), opts.Palette[j%len(opts.Palette)])
		}
	}
}

// drawAxes draws the bottom spine and the y ticks. The other spines are left
// out.
func drawAxes(c Canvas, f frame, opts Options) {
	c.Line(f.left, f.bottom, f.right, f.bottom, spineWidth, color.Black)

	for _, v := range YTicks {
		y := f.y(v)
		c.Line(f.left-tickLength, y, f.left, y, spineWidth, color.Black)

		label := strconv.FormatFloat(v, 'f', 1, 64)
		w, h := c.MeasureText(label, opts.TickFontSize)
		c.Text(label, f.left-tickLength-2-w, y+h/2, opts.TickFontSize, 0, color.Black)
	}
}

// drawGroups draws the dividers, the axis reference line and the rotated
// population labels hanging below the axis.
func drawGroups(c Canvas, l grouplayout.Layout, f frame) {
	for _, b := range l.Boundaries {
		x := f.x(b)
		c.Line(x, f.y(0), x, f.y(1), dividerWidth, color.Black)
	}

	if l.AxisLine {
		x := f.x(grouplayout.AxisReference)
		c.Line(x, f.y(0), x, f.y(AxisLineFraction), dividerWidth, color.Black)
	}

	gap := 0.05 * (f.bottom - f.top)
	for _, g := range l.Groups {
		w, h := c.MeasureText(g.Label, f.labelSize)

		// Rotated a quarter turn counterclockwise, the text runs upward from
		// its baseline origin and its glyphs extend to the left of it.
		c.Text(g.Label, f.x(g.Position)+h/2, f.bottom+gap+w, f.labelSize, -math.Pi/2, color.Black)
	}
}

// drawLegend lists the components top to bottom to the right of the plot.
func drawLegend(c Canvas, components []string, f frame, opts Options) {
	_, h := c.MeasureText("pop", opts.LegendFontSize)
	x := f.right + 0.5*h
	y := f.top

	for j, name := range components {
		c.FillRect(x, y, x+h, y+h, opts.Palette[j%len(opts.Palette)])
		c.Text(name, x+1.5*h, y+h, opts.LegendFontSize, 0, color.Black)

		// Half a line of spacing between entries
		y += 1.5 * h
	}
}
