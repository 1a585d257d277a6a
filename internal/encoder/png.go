package encoder

import (
	"bytes"
	"image/png"

	"github.com/junsooki/yuvview/internal/frame"
	"github.com/junsooki/yuvview/internal/yuv"
)

// PNGEncoder encodes the CPU rendition of a frame, pixel-exact with
// yuv.ToRGBA.
type PNGEncoder struct {
	enc png.Encoder
}

func NewPNGEncoder() *PNGEncoder {
	return &PNGEncoder{enc: png.Encoder{CompressionLevel: png.DefaultCompression}}
}

// SetQuality maps 1-100 onto the compression level, lower is faster.
func (e *PNGEncoder) SetQuality(quality int) {
	switch {
	case quality <= 0:
		e.enc.CompressionLevel = png.DefaultCompression
	case quality < 34:
		e.enc.CompressionLevel = png.BestSpeed
	case quality < 67:
		e.enc.CompressionLevel = png.DefaultCompression
	default:
		e.enc.CompressionLevel = png.BestCompression
	}
}

func (e *PNGEncoder) Ext() string { return "png" }

func (e *PNGEncoder) Encode(f *frame.Planar) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.enc.Encode(&buf, yuv.ToRGBA(f)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
