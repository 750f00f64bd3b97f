package barplot

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ColorFromCode parses a #rrggbb color code into an opaque color.
func ColorFromCode(colorCode string) (color.Color, error) {
	colorCode = strings.TrimPrefix(strings.TrimSpace(colorCode), "#")

	if len(colorCode) != 6 {
		return nil, fmt.Errorf("color code %q should have 6 hex digits", colorCode)
	}

	// Parse each channel
	r, err := strconv.ParseUint(colorCode[0:2], 16, 8)
	if err != nil {
		return nil, err
	}
	g, err := strconv.ParseUint(colorCode[2:4], 16, 8)
	if err != nil {
		return nil, err
	}
	b, err := strconv.ParseUint(colorCode[4:6], 16, 8)
	if err != nil {
		return nil, err
	}

	return color.RGBA{
		R: uint8(r),
		G: uint8(g),
		B: uint8(b),
		A: 255,
	}, nil
}

// Palette parses a list of color codes.
func Palette(codes []string) ([]color.Color, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}

	out := make([]color.Color, 0, len(codes))
	for _, code := range codes {
		c, err := ColorFromCode(code)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}
