package sdlgl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/junsooki/yuvview/internal/display"
	"github.com/junsooki/yuvview/internal/geometry"
	"github.com/junsooki/yuvview/internal/logger"
	"github.com/junsooki/yuvview/internal/render"
)

// attribute locations bound before linking
const (
	locVertex  = 0
	locTexture = 1
)

// GLDevice draws the YUV program with OpenGL 2.1.
// The context must be current on the calling thread.
type GLDevice struct {
	program  uint32
	vbo      uint32
	tex      [3]uint32
	samplers [3]int32

	surfaceW, surfaceH int
	log                *logger.Logger
}

func NewGLDevice(log *logger.Logger) *GLDevice {
	return &GLDevice{log: log}
}

var _ render.Clearer = (*GLDevice)(nil)

// SetSurface sets the drawable size used to flip the viewport origin.
func (d *GLDevice) SetSurface(w, h int) { d.surfaceW, d.surfaceH = w, h }

func (d *GLDevice) Setup(q render.Quad) error {
	vs, err := compileShader(display.VertexGLSL, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(display.FragmentGLSL, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.BindAttribLocation(program, locVertex, gl.Str(display.AttribVertex+"\x00"))
	gl.BindAttribLocation(program, locTexture, gl.Str(display.AttribTexture+"\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
		info := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(program, n, nil, gl.Str(info))
		gl.DeleteProgram(program)
		return fmt.Errorf("%w: %s", render.ErrShaderLink, strings.TrimRight(info, "\x00"))
	}
	d.program = program
	for i, name := range display.Samplers {
		d.samplers[i] = gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	}

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(q)*4, gl.Ptr(&q[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.GenTextures(int32(len(d.tex)), &d.tex[0])
	for _, t := range d.tex {
		gl.BindTexture(gl.TEXTURE_2D, t)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := initError(gl.GetError()); err != nil {
		d.Release()
		return err
	}
	d.log.Info().Str("version", glString(gl.VERSION)).Str("renderer", glString(gl.RENDERER)).
		Str("glsl", glString(gl.SHADING_LANGUAGE_VERSION)).Msg("OpenGL")
	return nil
}

// initError reports a GL error left by buffer and texture allocation.
func initError(code uint32) error {
	if code == gl.NO_ERROR {
		return nil
	}
	return fmt.Errorf("%w: GL error 0x%X", render.ErrDeviceInit, code)
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, src, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		info := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(info))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", render.ErrShaderCompile, strings.TrimRight(info, "\x00"))
	}
	return shader, nil
}

func (d *GLDevice) Upload(p render.Plane, data []byte, w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	if len(data) < w*h {
		return fmt.Errorf("plane %v: %d bytes for %dx%d", p, len(data), w, h)
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(p))
	gl.BindTexture(gl.TEXTURE_2D, d.tex[p])
	// rows of odd width are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.LUMINANCE, int32(w), int32(h), 0, gl.LUMINANCE, gl.UNSIGNED_BYTE, gl.Ptr(&data[0]))
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("GL error 0x%X", e)
	}
	return nil
}

// Clear fills the back buffer with black.
func (d *GLDevice) Clear() error {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	return nil
}

func (d *GLDevice) Draw(dst geometry.Rect) error {
	_ = d.Clear()
	if dst.Empty() {
		return nil
	}
	v := dst.FlipY(d.surfaceH)
	gl.Viewport(int32(v.X), int32(v.Y), int32(v.W), int32(v.H))

	gl.UseProgram(d.program)
	for i, t := range d.tex {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, t)
		gl.Uniform1i(d.samplers[i], int32(i))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.EnableVertexAttribArray(locVertex)
	gl.VertexAttribPointer(locVertex, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(locTexture)
	gl.VertexAttribPointer(locTexture, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(8*4))
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.DisableVertexAttribArray(locVertex)
	gl.DisableVertexAttribArray(locTexture)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.UseProgram(0)

	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("draw: GL error 0x%X", e)
	}
	return nil
}

func (d *GLDevice) Release() {
	if d.tex[0] != 0 {
		gl.DeleteTextures(int32(len(d.tex)), &d.tex[0])
		d.tex = [3]uint32{}
	}
	if d.vbo != 0 {
		gl.DeleteBuffers(1, &d.vbo)
		d.vbo = 0
	}
	if d.program != 0 {
		gl.DeleteProgram(d.program)
		d.program = 0
	}
}

func glString(name uint32) string { return gl.GoStr(gl.GetString(name)) }
