package decoder

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/junsooki/yuvview/internal/frame"
	"github.com/junsooki/yuvview/internal/yuv"
)

// JPEGDecoder decodes JPEG bytes into a planar frame. Baseline 4:2:0
// files keep their planes; only the chroma scale is changed from JFIF to
// the renderer's YUV.
type JPEGDecoder struct{}

func NewJPEGDecoder() *JPEGDecoder {
	return &JPEGDecoder{}
}

func (d *JPEGDecoder) Decode(data []byte) (*frame.Planar, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return toPlanar(img), nil
}

// JFIF chroma is (B-Y)/1.772 and (R-Y)/1.402.
var cbToU, crToV = chromaLUT(1.772 / yuv.BU), chromaLUT(1.402 / yuv.RV)

func chromaLUT(scale float64) (lut [256]byte) {
	for i := range lut {
		c := (float64(i)/255-yuv.ChromaOffset)*scale + yuv.ChromaOffset
		lut[i] = byte(min(255, max(0, c*255+0.5)))
	}
	return
}

func toPlanar(img image.Image) *frame.Planar {
	src, ok := img.(*image.YCbCr)
	if !ok || src.SubsampleRatio != image.YCbCrSubsampleRatio420 {
		return yuv.FromImage(img)
	}
	b := src.Rect
	w, h := b.Dx(), b.Dy()
	f := frame.New(w, h)
	for y := 0; y < h; y++ {
		o := src.YOffset(b.Min.X, b.Min.Y+y)
		copy(f.Y[y*w:(y+1)*w], src.Y[o:o+w])
	}
	cw, ch := w/2, h/2
	for y := 0; y < ch; y++ {
		o := src.COffset(b.Min.X, b.Min.Y+2*y)
		for x := 0; x < cw; x++ {
			f.U[y*cw+x] = cbToU[src.Cb[o+x]]
			f.V[y*cw+x] = crToV[src.Cr[o+x]]
		}
	}
	return f
}
