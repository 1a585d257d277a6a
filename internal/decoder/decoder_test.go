package decoder

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/junsooki/yuvview/internal/yuv"
)

func flat(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	return d <= tol && d >= -tol
}

func checkColor(t *testing.T, got color.RGBA, want color.RGBA, tol int) {
	t.Helper()
	if !near(got.R, want.R, tol) || !near(got.G, want.G, tol) || !near(got.B, want.B, tol) {
		t.Errorf("color = %v, want %v", got, want)
	}
}

var colors = []color.RGBA{
	{R: 180, G: 60, B: 60, A: 255},
	{R: 60, G: 160, B: 90, A: 255},
	{R: 70, G: 80, B: 190, A: 255},
	{R: 128, G: 128, B: 128, A: 255},
}

func TestJPEGDecoder(t *testing.T) {
	for _, c := range colors {
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, flat(32, 16, c), &jpeg.Options{Quality: 100}); err != nil {
			t.Fatal(err)
		}
		f, err := NewJPEGDecoder().Decode(buf.Bytes())
		if err != nil {
			t.Fatal(err)
		}
		if f.Width != 32 || f.Height != 16 || len(f.U) != 16*8 {
			t.Fatalf("frame = %v, chroma %d", f, len(f.U))
		}
		checkColor(t, yuv.ToRGBA(f).RGBAAt(7, 7), c, 8)
	}
}

func TestJPEGDecoderGarbage(t *testing.T) {
	if _, err := NewJPEGDecoder().Decode([]byte("not a jpeg")); err == nil {
		t.Error("expected an error")
	}
}

func TestImageDecoderPNG(t *testing.T) {
	c := colors[1]
	var buf bytes.Buffer
	if err := png.Encode(&buf, flat(10, 6, c)); err != nil {
		t.Fatal(err)
	}
	f, err := NewImageDecoder().Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if f.Width != 10 || f.Height != 6 {
		t.Fatalf("frame = %v", f)
	}
	checkColor(t, yuv.ToRGBA(f).RGBAAt(3, 3), c, 3)
}

func TestImageDecoderScale(t *testing.T) {
	c := colors[2]
	var buf bytes.Buffer
	if err := png.Encode(&buf, flat(64, 64, c)); err != nil {
		t.Fatal(err)
	}
	f, err := NewImageDecoder().WithSize(32, 18).Decode(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if f.Width != 32 || f.Height != 18 {
		t.Fatalf("frame = %v", f)
	}
	checkColor(t, yuv.ToRGBA(f).RGBAAt(16, 9), c, 3)
}

func TestImageDecoderUnsupported(t *testing.T) {
	_, err := NewImageDecoder().Decode([]byte{0, 1, 2, 3})
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("err = %v", err)
	}
}
