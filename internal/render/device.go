package render

import (
	"errors"

	"github.com/junsooki/yuvview/internal/geometry"
)

var (
	ErrShaderCompile = errors.New("shader compile failed")
	ErrShaderLink    = errors.New("shader link failed")
	ErrDeviceInit    = errors.New("device init failed")
	ErrTextureUpload = errors.New("texture upload failed")
	ErrClosed        = errors.New("compositor closed")
)

// Plane identifies a texture unit: 0=Y, 1=U, 2=V.
type Plane int

const (
	PlaneY Plane = iota
	PlaneU
	PlaneV
)

func (p Plane) String() string {
	switch p {
	case PlaneY:
		return "y"
	case PlaneU:
		return "u"
	case PlaneV:
		return "v"
	}
	return "?"
}

// Quad is the static full-screen quad: 4 positions in NDC followed by
// 4 texture coordinates, drawn as a triangle fan.
// Vertex order is bottom-left, top-left, top-right, bottom-right; the
// texture coordinates run top-left, bottom-left, bottom-right, top-right
// because rows are stored top to bottom.
type Quad [16]float32

var FullScreenQuad = Quad{
	-1, -1,
	-1, +1,
	+1, +1,
	+1, -1,

	0, 1,
	0, 0,
	1, 0,
	1, 1,
}

// Positions returns the 8 position floats.
func (q *Quad) Positions() []float32 { return q[:8] }

// TexCoords returns the 8 texture coordinate floats.
func (q *Quad) TexCoords() []float32 { return q[8:] }

// Device is the graphics context used by the Compositor.
// All calls happen on the goroutine that owns the context.
type Device interface {
	// Setup compiles and links the YUV program, uploads the quad and
	// allocates the three plane textures. Errors wrap ErrShaderCompile,
	// ErrShaderLink or ErrDeviceInit.
	Setup(q Quad) error
	// Upload replaces the whole texture of a plane with w*h bytes.
	Upload(p Plane, data []byte, w, h int) error
	// Draw renders the quad into dst (host coordinates).
	Draw(dst geometry.Rect) error
	Release()
}

// Clearer is implemented by devices whose back buffer keeps stale
// content between presents. Draw clears it while no frame has arrived.
type Clearer interface {
	Clear() error
}
