package encoder

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/junsooki/yuvview/internal/frame"
	"github.com/junsooki/yuvview/internal/yuv"
)

// solid builds a frame whose every pixel is y, u, v.
func solid(w, h int, y, u, v byte) *frame.Planar {
	f := frame.New(w, h)
	for i := range f.Y {
		f.Y[i] = y
	}
	for i := range f.U {
		f.U[i], f.V[i] = u, v
	}
	return f
}

func near(a, b uint32, tol uint32) bool {
	a, b = a>>8, b>>8
	if a > b {
		return a-b <= tol
	}
	return b-a <= tol
}

func TestJPEGEncoder(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		y, u, v byte
	}{
		{"gray", 16, 16, 128, 128, 128},
		{"reddish", 32, 16, 110, 110, 170},
		{"odd", 15, 9, 90, 160, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := solid(tt.w, tt.h, tt.y, tt.u, tt.v)
			data, err := NewJPEGEncoder(100).Encode(f)
			if err != nil {
				t.Fatal(err)
			}
			img, err := jpeg.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			if b := img.Bounds(); b.Dx() != tt.w || b.Dy() != tt.h {
				t.Fatalf("bounds = %v", b)
			}
			want := yuv.Pixel(tt.y, tt.u, tt.v)
			r, g, b, _ := img.At(tt.w/2, tt.h/2).RGBA()
			if !near(r, uint32(want.R)<<8, 8) || !near(g, uint32(want.G)<<8, 8) || !near(b, uint32(want.B)<<8, 8) {
				t.Errorf("rgb = %d %d %d, want %v", r>>8, g>>8, b>>8, want)
			}
		})
	}
}

func TestJPEGQualityClamp(t *testing.T) {
	if e := NewJPEGEncoder(0); e.quality != 1 {
		t.Errorf("quality = %d", e.quality)
	}
	if e := NewJPEGEncoder(400); e.quality != 100 {
		t.Errorf("quality = %d", e.quality)
	}
}

func TestPNGEncoderExact(t *testing.T) {
	f := solid(6, 4, 100, 90, 200)
	f.Y[0] = 250
	data, err := NewPNGEncoder().Encode(f)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := yuv.ToRGBA(f)
	got, ok := img.(*image.RGBA)
	if !ok {
		nrgba, ok := img.(*image.NRGBA)
		if !ok {
			t.Fatalf("decoded %T", img)
		}
		if !bytes.Equal(nrgba.Pix, want.Pix) {
			t.Error("pixels differ")
		}
		return
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("pixels differ")
	}
}

func TestNew(t *testing.T) {
	for _, tt := range []struct{ format, ext string }{{"jpeg", "jpg"}, {"jpg", "jpg"}, {"png", "png"}} {
		e, err := New(tt.format, 80)
		if err != nil || e.Ext() != tt.ext {
			t.Errorf("New(%q) = %v, %v", tt.format, e, err)
		}
	}
	if _, err := New("gif", 80); err == nil {
		t.Error("gif accepted")
	}
}

func TestNewAppliesQuality(t *testing.T) {
	for q, want := range map[int]png.CompressionLevel{
		0:   png.DefaultCompression,
		10:  png.BestSpeed,
		50:  png.DefaultCompression,
		100: png.BestCompression,
	} {
		e, err := New("png", q)
		if err != nil {
			t.Fatal(err)
		}
		if got := e.(*PNGEncoder).enc.CompressionLevel; got != want {
			t.Errorf("New(png, %d) level = %v, want %v", q, got, want)
		}
	}
}

func TestSnapshot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	s := NewSnapshot(dir, NewPNGEncoder())
	s.Now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 7_000_000, time.UTC) }

	path, err := s.Save(solid(4, 4, 16, 128, 128))
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "snapshot-20240309-140506.007.png"); path != want {
		t.Errorf("path = %s, want %s", path, want)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("stat = %v, %v", st, err)
	}

	if _, err := s.Save(nil); !errors.Is(err, ErrNoFrame) {
		t.Errorf("err = %v", err)
	}
}
