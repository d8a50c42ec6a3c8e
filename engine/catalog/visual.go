package catalog

import (
	"fmt"
	"image/color"
	"strconv"
)

// RGBA parses the visual's color
func (v Visual) RGBA() (color.RGBA, error) {
	return ParseColor(v.Color)
}

// ParseColor reads "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' || (len(s) != 7 && len(s) != 9) {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(s) == 7 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
