package barplot

import (
	"image/color"
	"image/jpeg"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// JPEGQuality is the encoder quality used for .jpg figures.
const JPEGQuality = 95

// ggCanvas paints onto an in-memory RGBA image with gg and encodes it as JPEG.
type ggCanvas struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

func newGGCanvas(width, height int, f *truetype.Font) *ggCanvas {
	dc := gg.NewContext(width, height)

	// JPEG has no alpha channel
	dc.SetColor(color.White)
	dc.Clear()

	return &ggCanvas{
		dc:    dc,
		font:  f,
		faces: make(map[float64]font.Face),
	}
}

func (c *ggCanvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

func (c *ggCanvas) FillRect(x0, y0, x1, y1 float64, col color.Color) {
	if x1 <= x0 || y1 <= y0 {
		return
	}

	c.dc.SetColor(col)
	c.dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	c.dc.Fill()
}

func (c *ggCanvas) Line(x0, y0, x1, y1, width float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

func (c *ggCanvas) Text(s string, x, y, size, rotation float64, col color.Color) {
	c.dc.Push()
	defer c.dc.Pop()

	c.dc.SetFontFace(c.face(size))
	c.dc.SetColor(col)
	if rotation != 0 {
		c.dc.RotateAbout(rotation, x, y)
	}
	c.dc.DrawString(s, x, y)
}

func (c *ggCanvas) MeasureText(s string, size float64) (float64, float64) {
	c.dc.SetFontFace(c.face(size))
	return c.dc.MeasureString(s)
}

func (c *ggCanvas) Save(w io.Writer) error {
	return jpeg.Encode(w, c.dc.Image(), &jpeg.Options{Quality: JPEGQuality})
}

// face returns the font face for a point size, creating it on first use.
func (c *ggCanvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}

	f := truetype.NewFace(c.font, &truetype.Options{Size: size, DPI: DPI})
	c.faces[size] = f
	return f
}
