package barplot

import (
	"image/color"
	"io"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/gofont/goregular"
)

// mmPerPixel converts plot pixels to the millimeters canvas works in.
const mmPerPixel = 25.4 / DPI

// pdfCanvas records vector drawing operations with canvas and renders them to
// PDF on Save. Text is embedded as Go Regular.
type pdfCanvas struct {
	c      *canvas.Canvas
	ctx    *canvas.Context
	family *canvas.FontFamily

	width, height int
}

func newPDFCanvas(width, height int) (*pdfCanvas, error) {
	family := canvas.NewFontFamily("Go")
	if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
		return nil, err
	}

	c := canvas.New(float64(width)*mmPerPixel, float64(height)*mmPerPixel)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, c.H, canvas.Rectangle(c.W, c.H))

	return &pdfCanvas{
		c:      c,
		ctx:    ctx,
		family: family,
		width:  width,
		height: height,
	}, nil
}

func (c *pdfCanvas) Size() (int, int) {
	return c.width, c.height
}

// FillRect anchors the rectangle at its bottom left, since paths are drawn
// with y pointing up from the anchor.
func (c *pdfCanvas) FillRect(x0, y0, x1, y1 float64, col color.Color) {
	if x1 <= x0 || y1 <= y0 {
		return
	}

	c.ctx.ResetStyle()
	c.ctx.SetFillColor(col)
	c.ctx.DrawPath(x0*mmPerPixel, y1*mmPerPixel, canvas.Rectangle((x1-x0)*mmPerPixel, (y1-y0)*mmPerPixel))
}

func (c *pdfCanvas) Line(x0, y0, x1, y1, width float64, col color.Color) {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo((x1-x0)*mmPerPixel, (y0-y1)*mmPerPixel)

	c.ctx.ResetStyle()
	c.ctx.SetFillColor(canvas.Transparent)
	c.ctx.SetStrokeColor(col)
	c.ctx.SetStrokeWidth(width * mmPerPixel)
	c.ctx.DrawPath(x0*mmPerPixel, y0*mmPerPixel, p)
}

func (c *pdfCanvas) Text(s string, x, y, size, rotation float64, col color.Color) {
	face := c.family.Face(size, col, canvas.FontRegular, canvas.FontNormal)
	x, y = x*mmPerPixel, y*mmPerPixel

	c.ctx.Push()
	defer c.ctx.Pop()

	// The view rotates counterclockwise in page coordinates, where y is
	// flipped relative to ours.
	if rotation != 0 {
		c.ctx.RotateAbout(-rotation*180/math.Pi, x, c.c.H-y)
	}
	c.ctx.DrawText(x, y, canvas.NewTextLine(face, s, canvas.Left))
}

func (c *pdfCanvas) MeasureText(s string, size float64) (float64, float64) {
	face := c.family.Face(size, color.Black, canvas.FontRegular, canvas.FontNormal)
	m := face.Metrics()

	return face.TextWidth(s) / mmPerPixel, (m.Ascent + m.Descent) / mmPerPixel
}

func (c *pdfCanvas) Save(w io.Writer) error {
	p := pdf.New(w, c.c.W, c.c.H, nil)
	c.c.Render(p)
	return p.Close()
}
