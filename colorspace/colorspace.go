// Package colorspace converts colors between 8-bit sRGB, CIE XYZ and CIELAB.
//
// XYZ values are scaled so that the D65 reference white has Y = 100, and Lab
// values use the usual L in [0, 100] range. All functions are pure.
package colorspace

import (
	"github.com/chewxy/math32"
)

// reference white, D65 2°
const (
	refX = 95.047
	refY = 100.0
	refZ = 108.883
)

const (
	epsilon = 0.008856
	kappa   = 903.3
)

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// RGBA implements color.Color. RGB colors are always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// XYZ is a CIE 1931 XYZ color, Y in [0, 100].
type XYZ struct {
	X, Y, Z float32
}

// Lab is a CIELAB color relative to D65.
type Lab struct {
	L, A, B float32
}

// RGBToXYZ converts an sRGB color to XYZ.
func RGBToXYZ(c RGB) XYZ {
	r := linearize(c.R) * 100
	g := linearize(c.G) * 100
	b := linearize(c.B) * 100

	return XYZ{
		X: r*0.4124 + g*0.3576 + b*0.1805,
		Y: r*0.2126 + g*0.7152 + b*0.0722,
		Z: r*0.0193 + g*0.1192 + b*0.9505,
	}
}

// XYZToLab converts an XYZ color to Lab.
func XYZToLab(c XYZ) Lab {
	x := c.X / refX
	y := c.Y / refY
	z := c.Z / refZ

	var l float32
	if y > epsilon {
		l = 116*math32.Cbrt(y) - 16
	} else {
		l = kappa * y
	}

	fx, fy, fz := labF(x), labF(y), labF(z)

	return Lab{
		L: l,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToXYZ converts a Lab color to XYZ. It inverts XYZToLab on both the cube
// root and the linear branch.
func LabToXYZ(c Lab) XYZ {
	p := (c.L + 16) / 116

	var y float32
	if c.L > kappa*epsilon {
		y = p * p * p
	} else {
		y = c.L / kappa
	}

	return XYZ{
		X: refX * labFInv(p+c.A/500),
		Y: refY * y,
		Z: refZ * labFInv(p-c.B/200),
	}
}

// XYZToRGB converts an XYZ color to sRGB. Out of gamut channels are clamped.
func XYZToRGB(c XYZ) RGB {
	x := c.X / 100
	y := c.Y / 100
	z := c.Z / 100

	r := x*3.2406 + y*-1.5372 + z*-0.4986
	g := x*-0.9689 + y*1.8758 + z*0.0415
	b := x*0.0557 + y*-0.2040 + z*1.0570

	return RGB{R: encode(r), G: encode(g), B: encode(b)}
}

// RGBToLab converts an sRGB color to Lab.
func RGBToLab(c RGB) Lab {
	return XYZToLab(RGBToXYZ(c))
}

// LabToRGB converts a Lab color to sRGB.
func LabToRGB(c Lab) RGB {
	return XYZToRGB(LabToXYZ(c))
}

// DistanceSquared returns the squared Euclidean distance between two Lab colors.
func DistanceSquared(a, b Lab) float32 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}

func linearize(channel uint8) float32 {
	c := float32(channel) / 255
	if c > 0.04045 {
		return math32.Pow((c+0.055)/1.055, 2.4)
	}
	return c / 12.92
}

func encode(c float32) uint8 {
	if c > 0.0031308 {
		c = 1.055*math32.Pow(c, 1/2.4) - 0.055
	} else {
		c = 12.92 * c
	}

	v := math32.Floor(c*255 + 0.5)
	switch {
	case math32.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

func labF(t float32) float32 {
	if t > epsilon {
		return math32.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

func labFInv(f float32) float32 {
	if cube := f * f * f; cube > epsilon {
		return cube
	}
	return (f - 16.0/116.0) / 7.787
}
