package source

import (
	"context"

	"github.com/junsooki/yuvview/internal/frame"
	"github.com/junsooki/yuvview/internal/qos"
	"github.com/junsooki/yuvview/internal/yuv"
)

// 75% color bars.
var bars = [][3]float64{
	{.75, .75, .75},
	{.75, .75, 0},
	{0, .75, .75},
	{0, .75, 0},
	{.75, 0, .75},
	{.75, 0, 0},
	{0, 0, .75},
	{0, 0, 0},
}

type sample struct{ y, u, v byte }

var barSamples = func() []sample {
	out := make([]sample, len(bars))
	for i, c := range bars {
		y, u, v := yuv.FromRGB(c[0], c[1], c[2])
		out[i] = sample{toByte(y), toByte(u), toByte(v)}
	}
	return out
}()

func toByte(x float64) byte { return byte(min(255, max(0, x*255+0.5))) }

// Pattern generates color bars scrolling two pixels per frame, with a
// luma ramp in the bottom quarter.
type Pattern struct {
	Width, Height int
	Clock         *Clock
	QoS           qos.Observer
}

func (p *Pattern) Run(ctx context.Context, sink Sink) error {
	if p.QoS != nil {
		p.QoS.OnVideoCodecUpdated(qos.CodecRaw, qos.StreamHigh)
	}
	f := frame.New(p.Width, p.Height)
	n := 0
	return p.Clock.Run(ctx, func() error {
		PatternFrame(f, n)
		n++
		return submit(sink, f.Y, f.U, f.V, f.Width, f.Height)
	})
}

// PatternFrame draws pattern frame n into f.
func PatternFrame(f *frame.Planar, n int) {
	w, h := f.Width, f.Height
	barW := max(1, w/len(bars))
	shift := 2 * n
	ramp := h - h/4
	for y := 0; y < h; y++ {
		row := f.Y[y*w : (y+1)*w]
		for x := range row {
			if y >= ramp {
				row[x] = byte(x * 255 / max(1, w-1))
				continue
			}
			row[x] = barSamples[((x+shift)/barW)%len(bars)].y
		}
	}
	cw, ch := w/2, h/2
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			s := barSamples[((2*x+shift)/barW)%len(bars)]
			if 2*y >= ramp {
				s = sample{u: 128, v: 128}
			}
			f.U[y*cw+x], f.V[y*cw+x] = s.u, s.v
		}
	}
}
