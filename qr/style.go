package qr

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Style bounds and defaults.
const (
	DefaultForeground  = "#262626"
	DefaultBackground  = "#FFFFFF"
	DefaultModuleSize  = 8
	DefaultBorderWidth = 2

	MinModuleSize  = 5
	MaxModuleSize  = 20
	MinBorderWidth = 0
	MaxBorderWidth = 10
)

// Style describes how a QR code is painted: module colors, the pixel size of
// one module and the width of the quiet zone in modules.
type Style struct {
	Foreground  string `json:"foreground" yaml:"foreground"`
	Background  string `json:"background" yaml:"background"`
	ModuleSize  int    `json:"module_size" yaml:"module_size"`
	BorderWidth int    `json:"border_width" yaml:"border_width"`
}

// DefaultStyle returns the style used on first load and after a reset.
func DefaultStyle() Style {
	return Style{
		Foreground:  DefaultForeground,
		Background:  DefaultBackground,
		ModuleSize:  DefaultModuleSize,
		BorderWidth: DefaultBorderWidth,
	}
}

// Normalize returns a copy of s where both sizes are clamped into their
// ranges and each color is a canonical "#RRGGBB" string. A color that cannot
// be parsed is replaced by the default for that field.
func (s Style) Normalize() Style {
	out := Style{
		ModuleSize:  clamp(s.ModuleSize, MinModuleSize, MaxModuleSize),
		BorderWidth: clamp(s.BorderWidth, MinBorderWidth, MaxBorderWidth),
	}

	out.Foreground = DefaultForeground
	if c, err := ParseHexColor(s.Foreground); err == nil {
		out.Foreground = FormatHexColor(c)
	}
	out.Background = DefaultBackground
	if c, err := ParseHexColor(s.Background); err == nil {
		out.Background = FormatHexColor(c)
	}
	return out
}

// ParseHexColor parses "#RRGGBB" or "#RGB" (the leading '#' is optional)
// into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FormatHexColor renders c as an upper-case "#RRGGBB" string.
func FormatHexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
