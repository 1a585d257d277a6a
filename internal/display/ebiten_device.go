package display

import (
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/junsooki/yuvview/internal/geometry"
	"github.com/junsooki/yuvview/internal/render"
)

// EbitenDevice runs the YUV program as a Kage shader. Each plane is kept
// in a frame-sized image; Ebitengine needs all shader sources to have the
// same size, so U and V fill only the top-left quarter of theirs.
type EbitenDevice struct {
	shader *ebiten.Shader
	quad   render.Quad
	planes [3]*ebiten.Image
	w, h   int

	// expanded gray pixels per plane, reused between uploads
	pix [3][]byte

	target *ebiten.Image
}

var errNotReady = errors.New("device not ready")

func NewEbitenDevice() *EbitenDevice { return &EbitenDevice{} }

// SetTarget sets the image Draw renders into, normally the screen.
func (d *EbitenDevice) SetTarget(img *ebiten.Image) { d.target = img }

func (d *EbitenDevice) Setup(q render.Quad) error {
	s, err := ebiten.NewShader([]byte(FragmentKage))
	if err != nil {
		return fmt.Errorf("%w: %w", render.ErrShaderCompile, err)
	}
	d.shader, d.quad = s, q
	return nil
}

func (d *EbitenDevice) Upload(p render.Plane, data []byte, w, h int) error {
	if p < render.PlaneY || p > render.PlaneV {
		return fmt.Errorf("unknown plane %d", p)
	}
	if len(data) < w*h {
		return fmt.Errorf("plane %v: %d bytes for %dx%d", p, len(data), w, h)
	}
	if p == render.PlaneY && (w != d.w || h != d.h) {
		d.allocate(w, h)
	}
	if d.planes[p] == nil || w > d.w || h > d.h {
		return fmt.Errorf("plane %v: %dx%d does not fit %dx%d", p, w, h, d.w, d.h)
	}
	if w == 0 || h == 0 {
		return nil
	}
	d.pix[p] = expandGray(d.pix[p], data[:w*h])
	img := d.planes[p]
	if p != render.PlaneY {
		img = img.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	}
	img.WritePixels(d.pix[p])
	return nil
}

func (d *EbitenDevice) allocate(w, h int) {
	for i, img := range d.planes {
		if img != nil {
			img.Deallocate()
		}
		d.planes[i] = ebiten.NewImage(w, h)
	}
	d.w, d.h = w, h
}

func (d *EbitenDevice) Draw(dst geometry.Rect) error {
	if d.target == nil || d.shader == nil || d.planes[0] == nil {
		return errNotReady
	}
	if dst.Empty() {
		return nil
	}
	op := &ebiten.DrawTrianglesShaderOptions{}
	op.Images[0], op.Images[1], op.Images[2] = d.planes[0], d.planes[1], d.planes[2]
	d.target.DrawTrianglesShader(quadVertices(&d.quad, dst, d.w, d.h), fanIndices, d.shader, op)
	return nil
}

func (d *EbitenDevice) Release() {
	for i, img := range d.planes {
		if img != nil {
			img.Deallocate()
			d.planes[i] = nil
		}
	}
	if d.shader != nil {
		d.shader.Deallocate()
		d.shader = nil
	}
	d.w, d.h = 0, 0
}

// the quad is a triangle fan of 4 vertices
var fanIndices = []uint16{0, 1, 2, 0, 2, 3}

// quadVertices maps the NDC quad into dst (top-left origin) and its
// texture coordinates onto a w x h source.
func quadVertices(q *render.Quad, dst geometry.Rect, w, h int) []ebiten.Vertex {
	pos, tex := q.Positions(), q.TexCoords()
	vs := make([]ebiten.Vertex, 4)
	for i := range vs {
		x, y := pos[2*i], pos[2*i+1]
		vs[i] = ebiten.Vertex{
			DstX:   float32(dst.X) + (x+1)/2*float32(dst.W),
			DstY:   float32(dst.Y) + (1-y)/2*float32(dst.H),
			SrcX:   tex[2*i] * float32(w),
			SrcY:   tex[2*i+1] * float32(h),
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	return vs
}

// expandGray writes each byte as an opaque gray RGBA pixel.
func expandGray(dst, src []byte) []byte {
	n := len(src) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range src {
		o := i * 4
		dst[o], dst[o+1], dst[o+2], dst[o+3] = v, v, v, 0xff
	}
	return dst
}
