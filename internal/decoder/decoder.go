package decoder

import (
	"errors"

	"github.com/junsooki/yuvview/internal/frame"
)

var ErrUnsupported = errors.New("unsupported image")

// Decoder decodes bytes into a planar frame.
type Decoder interface {
	Decode(data []byte) (*frame.Planar, error)
}
