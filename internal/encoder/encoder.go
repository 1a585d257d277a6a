package encoder

import (
	"fmt"

	"github.com/junsooki/yuvview/internal/frame"
)

// Encoder encodes a planar frame into an image file.
type Encoder interface {
	Encode(f *frame.Planar) ([]byte, error)
	SetQuality(quality int)
	Ext() string
}

// New returns the encoder for a snapshot format, "jpeg", "jpg" or "png",
// set to the given quality.
func New(format string, quality int) (Encoder, error) {
	var e Encoder
	switch format {
	case "jpeg", "jpg":
		e = &JPEGEncoder{}
	case "png":
		e = NewPNGEncoder()
	default:
		return nil, fmt.Errorf("encoder: unknown format %q", format)
	}
	e.SetQuality(quality)
	return e, nil
}
