package source

import (
	"context"

	"github.com/junsooki/yuvview/internal/frame"
)

// Still submits the same frame on every tick.
type Still struct {
	Frame *frame.Planar
	Clock *Clock
}

func (s *Still) Run(ctx context.Context, sink Sink) error {
	f := s.Frame
	return s.Clock.Run(ctx, func() error {
		return submit(sink, f.Y, f.U, f.V, f.Width, f.Height)
	})
}
