package barplot

import (
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFont returns the Go Regular face, which ships inside the binary so
// rendering never depends on system fonts.
func DefaultFont() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
}
