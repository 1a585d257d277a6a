package decoder

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/junsooki/yuvview/internal/frame"
)

// ImageDecoder decodes any registered still image format (JPEG, PNG, BMP,
// TIFF, WebP). With a target size set the image is scaled to it first.
type ImageDecoder struct {
	Width, Height int
	Scaler        draw.Scaler
}

func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{Scaler: draw.CatmullRom}
}

// WithSize sets the output size. Zero keeps the source size.
func (d *ImageDecoder) WithSize(w, h int) *ImageDecoder {
	d.Width, d.Height = w, h
	return d
}

func (d *ImageDecoder) Decode(data []byte) (*frame.Planar, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty %s image", ErrUnsupported, format)
	}
	if d.Width > 0 && d.Height > 0 && (b.Dx() != d.Width || b.Dy() != d.Height) {
		img = d.scale(img)
	}
	return toPlanar(img), nil
}

func (d *ImageDecoder) scale(src image.Image) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, d.Width, d.Height))
	s := d.Scaler
	if s == nil {
		s = draw.ApproxBiLinear
	}
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
