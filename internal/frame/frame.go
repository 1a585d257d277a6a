package frame

import (
	"errors"
	"fmt"
)

// ErrInvalidFrameGeometry is returned when plane sizes do not agree with
// the frame dimensions.
var ErrInvalidFrameGeometry = errors.New("invalid frame geometry")

// Planar is a planar YUV 4:2:0 frame.
// Y is Width*Height bytes, U and V are (Width/2)*(Height/2) bytes each.
type Planar struct {
	Y, U, V []byte

	Width  int
	Height int
}

// LumaSize returns the expected Y plane length.
func LumaSize(w, h int) int { return w * h }

// ChromaSize returns the expected U (or V) plane length.
func ChromaSize(w, h int) int { return (w / 2) * (h / 2) }

// Validate checks the plane lengths against the 4:2:0 size formulas.
func Validate(y, u, v []byte, w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: bad size %dx%d", ErrInvalidFrameGeometry, w, h)
	}
	if n := LumaSize(w, h); len(y) != n {
		return fmt.Errorf("%w: y plane is %d bytes, want %d", ErrInvalidFrameGeometry, len(y), n)
	}
	n := ChromaSize(w, h)
	if len(u) != n {
		return fmt.Errorf("%w: u plane is %d bytes, want %d", ErrInvalidFrameGeometry, len(u), n)
	}
	if len(v) != n {
		return fmt.Errorf("%w: v plane is %d bytes, want %d", ErrInvalidFrameGeometry, len(v), n)
	}
	return nil
}

// New allocates an empty frame of the given size.
func New(w, h int) *Planar {
	cs := ChromaSize(w, h)
	buf := make([]byte, LumaSize(w, h)+2*cs)
	return fromBuffer(buf, w, h)
}

// FromI420 slices a contiguous I420 buffer (Y then U then V) into planes
// without copying.
func FromI420(buf []byte, w, h int) (*Planar, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: bad size %dx%d", ErrInvalidFrameGeometry, w, h)
	}
	if want := I420Size(w, h); len(buf) != want {
		return nil, fmt.Errorf("%w: i420 buffer is %d bytes, want %d", ErrInvalidFrameGeometry, len(buf), want)
	}
	return fromBuffer(buf, w, h), nil
}

// I420Size is the byte size of one contiguous I420 frame.
func I420Size(w, h int) int { return LumaSize(w, h) + 2*ChromaSize(w, h) }

func fromBuffer(buf []byte, w, h int) *Planar {
	i0 := LumaSize(w, h)
	i1 := i0 + ChromaSize(w, h)
	i2 := i1 + ChromaSize(w, h)
	return &Planar{
		Y:      buf[:i0:i0],
		U:      buf[i0:i1:i1],
		V:      buf[i1:i2:i2],
		Width:  w,
		Height: h,
	}
}

// Clone returns a deep copy of the planes.
func (p *Planar) Clone() *Planar {
	c := New(p.Width, p.Height)
	copy(c.Y, p.Y)
	copy(c.U, p.U)
	copy(c.V, p.V)
	return c
}

// SameSize reports whether both frames have equal dimensions.
func (p *Planar) SameSize(o *Planar) bool {
	return o != nil && p.Width == o.Width && p.Height == o.Height
}

func (p *Planar) String() string { return fmt.Sprintf("i420 %dx%d", p.Width, p.Height) }
