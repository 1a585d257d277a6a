package frame

import (
	"sync"
	"sync/atomic"
)

// Buffer is a single-slot frame mailbox between a producer goroutine
// and the render thread.
//
// Put never waits for the consumer: a frame that was not taken yet is
// overwritten by the next one (last writer wins) and counted as a drop.
// Planes are copied into buffer-owned memory, so the consumer never sees
// a frame that is still being written.
type Buffer struct {
	mu      sync.Mutex
	pending *Planar
	dirty   bool
	// dimensions of the last accepted frame, planes unset
	shape Planar

	pool sync.Pool

	submitted atomic.Uint64
	dropped   atomic.Uint64
}

// Stats is a snapshot of Buffer counters.
type Stats struct {
	Submitted uint64
	Dropped   uint64
}

func NewBuffer() *Buffer { return &Buffer{} }

// Put validates and stores a copy of the planes.
// A rejected frame leaves the buffer untouched.
func (b *Buffer) Put(y, u, v []byte, w, h int) error {
	if err := Validate(y, u, v, w, h); err != nil {
		return err
	}
	f := b.get(w, h)
	copy(f.Y, y)
	copy(f.U, u)
	copy(f.V, v)

	b.mu.Lock()
	old := b.pending
	b.pending = f
	if !f.SameSize(&b.shape) {
		b.dirty = true
		b.shape = Planar{Width: w, Height: h}
	}
	b.mu.Unlock()

	b.submitted.Add(1)
	if old != nil {
		b.dropped.Add(1)
		b.Recycle(old)
	}
	return nil
}

// Take hands over the newest frame, if any.
// resized is true when the frame dimensions changed since the last Take.
func (b *Buffer) Take() (f *Planar, resized bool, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending == nil {
		return nil, false, false
	}
	f, resized = b.pending, b.dirty
	b.pending, b.dirty = nil, false
	return f, resized, true
}

// Recycle returns a frame that is no longer referenced to the pool.
func (b *Buffer) Recycle(f *Planar) {
	if f != nil {
		b.pool.Put(f)
	}
}

func (b *Buffer) Stats() Stats {
	return Stats{Submitted: b.submitted.Load(), Dropped: b.dropped.Load()}
}

func (b *Buffer) get(w, h int) *Planar {
	if f, ok := b.pool.Get().(*Planar); ok && f.Width == w && f.Height == h {
		return f
	}
	return New(w, h)
}
