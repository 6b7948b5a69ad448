package config

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Palette
var (
	Black = colornames.Black
	White = colornames.White
	Red   = colornames.Red
	Green = colornames.Lime // pure green, CSS "green" is half intensity
	Blue  = colornames.Blue
)

// ParseColor resolves an SVG/CSS color name ("black", "cornflowerblue") or a
// hex value ("#1a1a2e", "#1a1a2e80"). Hex digits are straight (CSS) alpha;
// the result is alpha-premultiplied like every color.RGBA.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	c, ok := colornames.Map[s]
	if !ok {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	return c, nil
}

func parseHex(s string) (color.RGBA, error) {
	c := color.NRGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBAModel.Convert(c).(color.RGBA), nil
}
