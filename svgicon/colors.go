package svgicon

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Pattern groups the kinds of paint a path can be filled or stroked
// with: either a PlainColor or a Gradient.
type Pattern interface {
	isPattern()
}

// PlainColor is a solid color paint.
type PlainColor struct {
	color.NRGBA
}

// NewPlainColor returns an opaque color pattern.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{NRGBA: color.NRGBA{R: r, G: g, B: b, A: a}}
}

func (PlainColor) isPattern() {}
func (Gradient) isPattern()   {}

// optionalColor distinguishes an explicit "none" from an actual color.
type optionalColor struct {
	color color.NRGBA
	valid bool
}

func (o optionalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return PlainColor{NRGBA: o.color}
}

func (o optionalColor) asColor() color.Color {
	if !o.valid {
		return color.NRGBA{}
	}
	return o.color
}

// parseColorComponent reads one value of an rgb() triple, either a
// plain number or a percentage.
func parseColorComponent(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, err
		}
		return uint8(f / 100 * 255), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = 0
	} else if n > 255 {
		n = 255
	}
	return uint8(n), nil
}

// parseSVGColor parses an SVG color value: hexadecimal notations,
// rgb()/rgba() functions, and the CSS keyword names.
func parseSVGColor(colorStr string) (optionalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "transparent":
		// not drawing is a valid color interpretation
		return optionalColor{}, nil
	case "currentcolor", "inherit":
		return optionalColor{color: color.NRGBA{A: 0xFF}, valid: true}, nil
	}
	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6:
		default:
			return optionalColor{}, fmt.Errorf("invalid hex color %q", colorStr)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return optionalColor{}, err
		}
		return optionalColor{
			color: color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF},
			valid: true,
		}, nil
	}
	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		open := strings.Index(v, "(")
		if !strings.HasSuffix(v, ")") {
			return optionalColor{}, fmt.Errorf("invalid rgb color %q", colorStr)
		}
		parts := strings.Split(v[open+1:len(v)-1], ",")
		if len(parts) != 3 && len(parts) != 4 {
			return optionalColor{}, fmt.Errorf("invalid rgb color %q", colorStr)
		}
		var rgb [3]uint8
		for i := 0; i < 3; i++ {
			var err error
			if rgb[i], err = parseColorComponent(parts[i]); err != nil {
				return optionalColor{}, err
			}
		}
		a := uint8(0xFF)
		if len(parts) == 4 {
			f, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
			if err != nil {
				return optionalColor{}, err
			}
			a = uint8(f * 255)
		}
		return optionalColor{
			color: color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: a},
			valid: true,
		}, nil
	}
	if named, ok := colornames.Map[v]; ok {
		return optionalColor{
			color: color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A},
			valid: true,
		}, nil
	}
	return optionalColor{}, fmt.Errorf("unknown color %q", colorStr)
}
