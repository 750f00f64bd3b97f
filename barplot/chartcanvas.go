package barplot

import (
	"html"
	"image/color"
	"io"
	"math"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// chartCanvas paints through a go-chart renderer, which gives us PNG and SVG
// output from the same drawing calls.
type chartCanvas struct {
	r      chart.Renderer
	font   *truetype.Font
	escape bool

	width, height int
}

func newChartCanvas(format Format, width, height int, f *truetype.Font) (*chartCanvas, error) {
	var (
		r   chart.Renderer
		err error
	)

	switch format {
	case FormatSVG:
		r, err = chart.SVG(width, height)
	default:
		r, err = chart.PNG(width, height)
	}
	if err != nil {
		return nil, err
	}
	r.SetDPI(DPI)

	c := &chartCanvas{
		r:      r,
		font:   f,
		escape: format == FormatSVG,
		width:  width,
		height: height,
	}

	// Raster renderers start out transparent
	c.FillRect(0, 0, float64(width), float64(height), color.White)

	return c, nil
}

func (c *chartCanvas) Size() (int, int) {
	return c.width, c.height
}

func (c *chartCanvas) FillRect(x0, y0, x1, y1 float64, col color.Color) {
	left, top, right, bottom := px(x0), px(y0), px(x1), px(y1)

	// Bars narrower than a pixel still get a column. Adjacent bars share a
	// rounded edge, so the next one paints over any overlap.
	if x1 > x0 && right <= left {
		right = left + 1
	}
	if right <= left || bottom <= top {
		return
	}

	c.r.ResetStyle()
	c.r.SetFillColor(toDrawing(col))
	c.r.MoveTo(left, top)
	c.r.LineTo(right, top)
	c.r.LineTo(right, bottom)
	c.r.LineTo(left, bottom)
	c.r.Close()
	c.r.Fill()
}

func (c *chartCanvas) Line(x0, y0, x1, y1, width float64, col color.Color) {
	c.r.ResetStyle()
	c.r.SetStrokeColor(toDrawing(col))

	// The SVG writer truncates stroke widths to whole pixels
	c.r.SetStrokeWidth(math.Max(1, width))

	c.r.MoveTo(px(x0), px(y0))
	c.r.LineTo(px(x1), px(y1))
	c.r.Stroke()
}

func (c *chartCanvas) Text(s string, x, y, size, rotation float64, col color.Color) {
	c.r.ResetStyle()
	c.r.SetFont(c.font)
	c.r.SetFontSize(size)
	c.r.SetFontColor(toDrawing(col))
	if rotation != 0 {
		c.r.SetTextRotation(rotation)
	}

	if c.escape {
		s = html.EscapeString(s)
	}
	c.r.Text(s, px(x), px(y))
	c.r.ClearTextRotation()
}

func (c *chartCanvas) MeasureText(s string, size float64) (float64, float64) {
	c.r.ResetStyle()
	c.r.SetFont(c.font)
	c.r.SetFontSize(size)

	box := c.r.MeasureText(s)
	return float64(box.Right - box.Left), float64(box.Bottom - box.Top)
}

func (c *chartCanvas) Save(w io.Writer) error {
	return c.r.Save(w)
}

func px(v float64) int {
	return int(math.Round(v))
}

func toDrawing(col color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
