package display

import (
	"fmt"

	"github.com/junsooki/yuvview/internal/yuv"
)

// Attribute and sampler names shared by the GL program and the quad layout.
const (
	AttribVertex  = "vertexIn"
	AttribTexture = "textureIn"
)

var Samplers = [3]string{"tex_y", "tex_u", "tex_v"}

// VertexGLSL passes the quad through.
const VertexGLSL = `#version 120
attribute vec4 vertexIn;
attribute vec2 textureIn;
varying vec2 textureOut;
void main(void)
{
    gl_Position = vertexIn;
    textureOut = textureIn;
}
`

// FragmentGLSL samples the three planes and converts to RGB with a
// column-major BT.601 matrix.
var FragmentGLSL = fmt.Sprintf(`#version 120
varying vec2 textureOut;
uniform sampler2D tex_y;
uniform sampler2D tex_u;
uniform sampler2D tex_v;
void main(void)
{
    vec3 yuv;
    vec3 rgb;
    yuv.x = texture2D(tex_y, textureOut).r;
    yuv.y = texture2D(tex_u, textureOut).r - %[1]g;
    yuv.z = texture2D(tex_v, textureOut).r - %[1]g;
    rgb = mat3(1.0, 1.0, 1.0,
               0.0, %[2]g, %[3]g,
               %[4]g, %[5]g, 0.0) * yuv;
    gl_FragColor = vec4(rgb, 1.0);
}
`, yuv.ChromaOffset, yuv.GU, yuv.BU, yuv.RV, yuv.GV)

// FragmentKage is the same conversion for Ebitengine. All three source
// images have the frame size; chroma lives in their top-left quarter.
var FragmentKage = fmt.Sprintf(`//kage:unit pixels

package main

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	half := origin + (srcPos-origin)/2
	y := imageSrc0At(srcPos).r
	u := imageSrc1At(half).r - %[1]g
	v := imageSrc2At(half).r - %[1]g
	return vec4(y+%[4]g*v, y+%[2]g*u+%[5]g*v, y+%[3]g*u, 1)
}
`, yuv.ChromaOffset, yuv.GU, yuv.BU, yuv.RV, yuv.GV)
