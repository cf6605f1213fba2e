// Package color converts between 8-bit RGB and the CIE 1931 xy+brightness
// representation used by Hue bridges, and maps chromaticity points into the
// gamut triangle a given light model can actually reproduce.
package color

import (
	"errors"
	"math"
)

// ErrZeroChromaticity is returned when an XY value with y = 0 is converted
// back to RGB. Brightness-normalized recovery divides by y and is undefined
// at the chromaticity axis.
var ErrZeroChromaticity = errors.New("color: chromaticity y is zero")

// Neutral point used for pure black, which has no defined chromaticity.
const (
	neutralX = 0.3227
	neutralY = 0.3290
)

// RGB is an 8-bit-per-channel color value.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// XY is a CIE 1931 chromaticity coordinate plus the bridge's 0-254
// brightness value.
type XY struct {
	X   float64
	Y   float64
	Bri uint8
}

// XYFromRGB converts an RGB color to chromaticity and brightness using the
// Wide RGB D65 matrix the Hue light family is calibrated against. Pure black
// maps to a neutral point with brightness 0 instead of dividing by zero.
func XYFromRGB(c RGB) XY {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return XY{X: neutralX, Y: neutralY, Bri: 0}
	}

	r := gammaExpand(float64(c.R) / 255)
	g := gammaExpand(float64(c.G) / 255)
	b := gammaExpand(float64(c.B) / 255)

	bigX := r*0.664511 + g*0.154324 + b*0.162028
	bigY := r*0.283881 + g*0.668433 + b*0.047685
	bigZ := r*0.000088 + g*0.072310 + b*0.986039

	sum := bigX + bigY + bigZ

	return XY{
		X:   bigX / sum,
		Y:   bigY / sum,
		Bri: clampByte(math.Round(bigY*254), 254),
	}
}

// RGBFromXY recovers an RGB color from chromaticity and brightness. It fails
// when y = 0, since the XYZ recovery scales by brightness/y.
func RGBFromXY(xy XY) (RGB, error) {
	if xy.Y == 0 {
		return RGB{}, ErrZeroChromaticity
	}

	z := 1 - xy.X - xy.Y
	bigY := float64(xy.Bri) / 254
	bigX := bigY / xy.Y * xy.X
	bigZ := bigY / xy.Y * z

	r := bigX*1.656492 - bigY*0.354851 - bigZ*0.255038
	g := -bigX*0.707196 + bigY*1.655397 + bigZ*0.036152
	b := bigX*0.051713 - bigY*0.121364 + bigZ*1.011530

	return RGB{
		R: clampByte(gammaCompress(r)*255, 255),
		G: clampByte(gammaCompress(g)*255, 255),
		B: clampByte(gammaCompress(b)*255, 255),
	}, nil
}

// gammaExpand decodes an sRGB-encoded channel to linear light.
func gammaExpand(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// gammaCompress encodes a linear channel back to sRGB.
func gammaCompress(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// clampByte truncates v to an integer in [0, hi]. Out-of-gamut recoveries
// can produce channels below 0 or above 255; clamping avoids the wraparound
// a bare uint8 cast would give.
func clampByte(v float64, hi uint8) uint8 {
	if v < 0 {
		return 0
	}
	if v > float64(hi) {
		return hi
	}
	return uint8(v)
}
