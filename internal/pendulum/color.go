package pendulum

import (
	"fmt"
	"strconv"
)

// ParseHexColor converts "#RRGGBB" into normalized RGB. Alpha is not accepted.
func ParseHexColor(hex string) ([3]float32, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return [3]float32{}, fmt.Errorf("color %q: want #RRGGBB", hex)
	}
	var rgb [3]float32
	for i := range rgb {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return [3]float32{}, fmt.Errorf("color %q: %w", hex, err)
		}
		rgb[i] = float32(v) / 255.0
	}
	return rgb, nil
}

// FormatHexColor is the inverse of ParseHexColor, rounding to the nearest byte.
func FormatHexColor(rgb [3]float32) string {
	var b [3]uint8
	for i, c := range rgb {
		switch {
		case c <= 0:
			b[i] = 0
		case c >= 1:
			b[i] = 255
		default:
			b[i] = uint8(c*255 + 0.5)
		}
	}
	return fmt.Sprintf("#%02X%02X%02X", b[0], b[1], b[2])
}
