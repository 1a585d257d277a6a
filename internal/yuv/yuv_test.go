package yuv

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/junsooki/yuvview/internal/frame"
)

func TestToRGBNeutralChroma(t *testing.T) {
	for _, y := range []byte{16, 128, 235, 255} {
		r, g, b := ToRGB(norm(y), norm(128), norm(128))
		if math.Abs(r-g) > 0.01 || math.Abs(g-b) > 0.01 || math.Abs(r-b) > 0.01 {
			t.Errorf("Y=%d: color cast r=%.4f g=%.4f b=%.4f", y, r, g, b)
		}
		if math.Abs(r-norm(y)) > 0.01 {
			t.Errorf("Y=%d: r=%.4f drifted from luma", y, r)
		}
	}
}

func TestToRGBCoefficients(t *testing.T) {
	// u, v at the extremes isolate each coefficient
	r, g, b := ToRGB(0.5, 0.5, 1.5)
	if math.Abs(r-(0.5+1.13983)) > 1e-9 || math.Abs(g-(0.5-0.58060)) > 1e-9 || b != 0.5 {
		t.Errorf("v coefficients: %v %v %v", r, g, b)
	}
	r, g, b = ToRGB(0.5, 1.5, 0.5)
	if r != 0.5 || math.Abs(g-(0.5-0.39465)) > 1e-9 || math.Abs(b-(0.5+2.03211)) > 1e-9 {
		t.Errorf("u coefficients: %v %v %v", r, g, b)
	}
}

func TestRoundTrip(t *testing.T) {
	colors := []color.RGBA{
		{R: 180, G: 60, B: 60, A: 255},
		{R: 60, G: 180, B: 60, A: 255},
		{R: 60, G: 60, B: 180, A: 255},
		{R: 128, G: 128, B: 128, A: 255},
		{R: 200, G: 150, B: 30, A: 255},
	}
	for _, c := range colors {
		y, u, v := FromRGB(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		got := Pixel(denorm(y), denorm(u), denorm(v))
		if diff(got.R, c.R) > 3 || diff(got.G, c.G) > 3 || diff(got.B, c.B) > 3 {
			t.Errorf("%v -> %v", c, got)
		}
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	fill := color.RGBA{R: 40, G: 180, B: 90, A: 255}
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = fill.R, fill.G, fill.B, fill.A
	}

	f := FromImage(src)
	if err := frame.Validate(f.Y, f.U, f.V, 8, 4); err != nil {
		t.Fatal(err)
	}
	out := ToRGBA(f)
	for i := 0; i < len(out.Pix); i += 4 {
		if diff(out.Pix[i], fill.R) > 3 || diff(out.Pix[i+1], fill.G) > 3 || diff(out.Pix[i+2], fill.B) > 3 {
			t.Fatalf("pixel %d = %v", i/4, out.Pix[i:i+4])
		}
	}
}

func TestToRGBAOddSize(t *testing.T) {
	f := frame.New(5, 3)
	for i := range f.Y {
		f.Y[i] = 200
	}
	for i := range f.U {
		f.U[i], f.V[i] = 128, 128
	}
	img := ToRGBA(f)
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(4, 2); diff(c.R, 200) > 1 || diff(c.B, 200) > 1 {
		t.Errorf("edge pixel = %v", c)
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
