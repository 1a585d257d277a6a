package qos

import (
	"sync"
	"sync/atomic"
	"time"
)

// Kind tags an Event.
type Kind string

const (
	KindKeyFrameRequest Kind = "key_frame_request"
	KindBitrate         Kind = "bitrate"
	KindCodec           Kind = "codec"
)

// Event is one QoS notification as a value, for queues and the wire.
type Event struct {
	Kind    Kind       `json:"kind"`
	Stream  StreamType `json:"stream"`
	Bitrate uint32     `json:"bitrateBps,omitempty"`
	Codec   CodecType  `json:"codec,omitempty"`
	Mime    string     `json:"mime,omitempty"`
	Time    time.Time  `json:"time"`
}

// Emit delivers e to o through the matching Observer method.
func Emit(o Observer, e Event) {
	switch e.Kind {
	case KindKeyFrameRequest:
		o.OnRequestSendKeyFrame(e.Stream)
	case KindBitrate:
		o.OnBitrateUpdated(e.Bitrate, e.Stream)
	case KindCodec:
		o.OnVideoCodecUpdated(e.Codec, e.Stream)
	}
}

// Recorder turns notifications into Events and passes them to fn.
type Recorder func(Event)

func (r Recorder) OnRequestSendKeyFrame(s StreamType) {
	r(Event{Kind: KindKeyFrameRequest, Stream: s, Time: time.Now()})
}

func (r Recorder) OnBitrateUpdated(bps uint32, s StreamType) {
	r(Event{Kind: KindBitrate, Stream: s, Bitrate: bps, Time: time.Now()})
}

func (r Recorder) OnVideoCodecUpdated(c CodecType, s StreamType) {
	r(Event{Kind: KindCodec, Stream: s, Codec: c, Mime: c.Capability().MimeType, Time: time.Now()})
}

// Dispatcher decouples producers from observers. Notifications are
// queued and delivered on a single goroutine in order; when the queue is
// full the notification is dropped instead of blocking the producer.
type Dispatcher struct {
	Recorder

	target  Observer
	queue   chan Event
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	dropped atomic.Uint64
}

// NewDispatcher starts a dispatcher delivering to target.
func NewDispatcher(target Observer, size int) *Dispatcher {
	if size < 1 {
		size = 1
	}
	d := &Dispatcher{
		target:  target,
		queue:   make(chan Event, size),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	d.Recorder = d.push
	go d.loop()
	return d
}

func (d *Dispatcher) push(e Event) {
	select {
	case <-d.done:
		return
	default:
	}
	select {
	case d.queue <- e:
	default:
		d.dropped.Add(1)
	}
}

func (d *Dispatcher) loop() {
	defer close(d.stopped)
	for {
		select {
		case e := <-d.queue:
			Emit(d.target, e)
		case <-d.done:
			// drain what is already queued
			for {
				select {
				case e := <-d.queue:
					Emit(d.target, e)
				default:
					return
				}
			}
		}
	}
}

// Dropped returns the number of notifications lost to a full queue.
func (d *Dispatcher) Dropped() uint64 { return d.dropped.Load() }

// Close stops the dispatcher after delivering queued notifications.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.done) })
	<-d.stopped
}
