package barplot

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
)

// DPI is the resolution at which font point sizes are converted to pixels.
const DPI = 96.0

// Canvas is the drawing surface a plot is painted on. Coordinates are in
// pixels with the origin at the top left.
type Canvas interface {
	Size() (width, height int)

	FillRect(x0, y0, x1, y1 float64, c color.Color)
	Line(x0, y0, x1, y1, width float64, c color.Color)

	// Text draws s with its baseline starting at (x, y), rotated clockwise by
	// rotation radians about that point. size is in points.
	Text(s string, x, y, size, rotation float64, c color.Color)

	// MeasureText returns the unrotated extent of s in pixels.
	MeasureText(s string, size float64) (width, height float64)

	// Save encodes the canvas in its output format.
	Save(w io.Writer) error
}

// Format is an output figure encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
)

// FormatForPath picks the figure format from the destination's extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".svg":
		return FormatSVG, nil
	case ".jpg", ".jpeg":
		return FormatJPEG, nil
	case ".pdf":
		return FormatPDF, nil
	}

	return "", fmt.Errorf("unsupported figure format %q for %s (expected .png, .svg, .pdf, .jpg or .jpeg)", filepath.Ext(path), path)
}

// NewCanvas creates a blank canvas of the given pixel size that encodes to
// format. Raster and SVG text is set in f; PDF embeds Go Regular.
func NewCanvas(format Format, width, height int, f *truetype.Font) (Canvas, error) {
	switch format {
	case FormatPNG, FormatSVG:
		c, err := newChartCanvas(format, width, height, f)
		if err != nil {
			return nil, err
		}
		return c, nil
	case FormatJPEG:
		return newGGCanvas(width, height, f), nil
	case FormatPDF:
		c, err := newPDFCanvas(width, height)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	return nil, fmt.Errorf("unsupported figure format %q", format)
}
