package encoder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/junsooki/yuvview/internal/frame"
)

var ErrNoFrame = errors.New("no frame to save")

// Snapshot writes frames to <dir>/snapshot-<timestamp>.<ext>.
type Snapshot struct {
	Dir string
	Enc Encoder
	Now func() time.Time
}

func NewSnapshot(dir string, enc Encoder) *Snapshot {
	return &Snapshot{Dir: dir, Enc: enc, Now: time.Now}
}

// Save encodes f and returns the written path.
func (s *Snapshot) Save(f *frame.Planar) (string, error) {
	if f == nil {
		return "", ErrNoFrame
	}
	data, err := s.Enc.Encode(f)
	if err != nil {
		return "", fmt.Errorf("snapshot encode: %w", err)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("snapshot-%s.%s", s.Now().Format("20060102-150405.000"), s.Enc.Ext())
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
