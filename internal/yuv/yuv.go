// Package yuv holds the BT.601 color conversion used by every renderer.
//
// The GPU shaders and the CPU path share the coefficients below, so a
// frame converted on the CPU matches what the compositor puts on screen.
package yuv

import (
	"image"
	"image/color"
	"math"

	"github.com/junsooki/yuvview/internal/frame"
)

// YUV -> RGB, inputs normalized to [0,1], chroma centered at 0.5.
const (
	RV = 1.13983
	GU = -0.39465
	GV = -0.58060
	BU = 2.03211
)

// RGB -> YUV.
const (
	YR, YG, YB = 0.299, 0.587, 0.114
	UR, UG, UB = -0.14713, -0.28886, 0.436
	VR, VG, VB = 0.615, -0.51499, -0.10001
)

// ChromaOffset is subtracted from sampled U and V.
const ChromaOffset = 0.5

// ToRGB converts one normalized sample. u and v are raw samples,
// the chroma offset is applied here.
func ToRGB(y, u, v float64) (r, g, b float64) {
	u -= ChromaOffset
	v -= ChromaOffset
	r = y + RV*v
	g = y + GU*u + GV*v
	b = y + BU*u
	return
}

// FromRGB is the inverse of ToRGB, returning raw samples.
func FromRGB(r, g, b float64) (y, u, v float64) {
	y = YR*r + YG*g + YB*b
	u = UR*r + UG*g + UB*b + ChromaOffset
	v = VR*r + VG*g + VB*b + ChromaOffset
	return
}

// Pixel converts 8-bit samples to an opaque RGBA color.
func Pixel(y, u, v byte) color.RGBA {
	r, g, b := ToRGB(norm(y), norm(u), norm(v))
	return color.RGBA{R: denorm(r), G: denorm(g), B: denorm(b), A: 0xff}
}

// ToRGBA renders a planar frame on the CPU with nearest chroma sampling.
func ToRGBA(f *frame.Planar) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	cw, ch := f.Width/2, f.Height/2
	for yy := 0; yy < f.Height; yy++ {
		cy := min(yy/2, ch-1)
		row := img.Pix[yy*img.Stride:]
		for xx := 0; xx < f.Width; xx++ {
			Y := f.Y[yy*f.Width+xx]
			var U, V byte = 128, 128
			if cw > 0 && ch > 0 {
				ci := cy*cw + min(xx/2, cw-1)
				U, V = f.U[ci], f.V[ci]
			}
			c := Pixel(Y, U, V)
			o := xx * 4
			row[o+0], row[o+1], row[o+2], row[o+3] = c.R, c.G, c.B, c.A
		}
	}
	return img
}

// FromImage converts any image to a planar frame. Chroma is the average
// of each 2x2 block.
func FromImage(img image.Image) *frame.Planar {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	f := frame.New(w, h)
	cw, ch := w/2, h/2

	rgb := func(x, y int) (float64, float64, float64) {
		r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return float64(r) / 0xffff, float64(g) / 0xffff, float64(bb) / 0xffff
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			Y, _, _ := FromRGB(rgb(x, y))
			f.Y[y*w+x] = denorm(Y)
		}
	}
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			var su, sv float64
			for _, d := range [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
				_, u, v := FromRGB(rgb(2*x+d[0], 2*y+d[1]))
				su += u
				sv += v
			}
			f.U[y*cw+x] = denorm(su / 4)
			f.V[y*cw+x] = denorm(sv / 4)
		}
	}
	return f
}

func norm(b byte) float64 { return float64(b) / 255 }

func denorm(x float64) byte {
	return byte(math.Round(math.Max(0, math.Min(1, x)) * 255))
}
