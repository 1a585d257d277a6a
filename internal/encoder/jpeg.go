package encoder

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/junsooki/yuvview/internal/frame"
	"github.com/junsooki/yuvview/internal/yuv"
)

// JPEGEncoder encodes frames as JPEG. The planes go in as 4:2:0 YCbCr
// without a round trip through RGB.
type JPEGEncoder struct {
	quality int
}

// NewJPEGEncoder creates a JPEG encoder with the given quality (1-100).
func NewJPEGEncoder(quality int) *JPEGEncoder {
	e := &JPEGEncoder{}
	e.SetQuality(quality)
	return e
}

func (e *JPEGEncoder) SetQuality(quality int) {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	e.quality = quality
}

func (e *JPEGEncoder) Ext() string { return "jpg" }

func (e *JPEGEncoder) Encode(f *frame.Planar) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(f.Y) / 4)
	err := jpeg.Encode(&buf, toYCbCr(f), &jpeg.Options{Quality: e.quality})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var uToCb, vToCr = chromaLUT(yuv.BU / 1.772), chromaLUT(yuv.RV / 1.402)

func chromaLUT(scale float64) (lut [256]byte) {
	for i := range lut {
		c := (float64(i)/255-yuv.ChromaOffset)*scale + yuv.ChromaOffset
		lut[i] = byte(min(255, max(0, c*255+0.5)))
	}
	return
}

// toYCbCr rescales chroma to JFIF. Odd sizes repeat the last chroma
// column and row, since image.YCbCr rounds chroma sizes up.
func toYCbCr(f *frame.Planar) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, f.Width, f.Height), image.YCbCrSubsampleRatio420)
	for y := 0; y < f.Height; y++ {
		copy(img.Y[y*img.YStride:], f.Y[y*f.Width:(y+1)*f.Width])
	}
	cw, ch := f.Width/2, f.Height/2
	rows := len(img.Cb) / img.CStride
	for y := 0; y < rows; y++ {
		for x := 0; x < img.CStride; x++ {
			var u, v byte = 128, 128
			if cw > 0 && ch > 0 {
				i := min(y, ch-1)*cw + min(x, cw-1)
				u, v = f.U[i], f.V[i]
			}
			img.Cb[y*img.CStride+x] = uToCb[u]
			img.Cr[y*img.CStride+x] = vToCr[v]
		}
	}
	return img
}
