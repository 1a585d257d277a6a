// Package qos carries video encoder QoS notifications: key frame
// requests, target bitrate and codec changes.
//
// An observer implements whatever subset of Observer it cares about by
// embedding Nop.
package qos

import (
	"fmt"

	"github.com/pion/webrtc/v4"
)

// StreamType selects the main stream or the low-resolution sub-stream.
type StreamType int

const (
	StreamHigh StreamType = iota
	StreamLow
)

func (s StreamType) String() string {
	switch s {
	case StreamHigh:
		return "high"
	case StreamLow:
		return "low"
	}
	return fmt.Sprintf("stream(%d)", int(s))
}

// CodecType is the video codec used by the encoder.
type CodecType int

const (
	CodecUnknown CodecType = iota
	CodecRaw
	CodecH264
	CodecH265
	CodecVP8
	CodecVP9
	CodecAV1
)

var codecNames = map[CodecType]string{
	CodecUnknown: "unknown",
	CodecRaw:     "raw",
	CodecH264:    "h264",
	CodecH265:    "h265",
	CodecVP8:     "vp8",
	CodecVP9:     "vp9",
	CodecAV1:     "av1",
}

func (c CodecType) String() string {
	if n, ok := codecNames[c]; ok {
		return n
	}
	return fmt.Sprintf("codec(%d)", int(c))
}

// Capability describes the codec the way RTP negotiation does.
// Raw and unknown codecs have no MIME type.
func (c CodecType) Capability() webrtc.RTPCodecCapability {
	mime := ""
	switch c {
	case CodecH264:
		mime = webrtc.MimeTypeH264
	case CodecH265:
		mime = webrtc.MimeTypeH265
	case CodecVP8:
		mime = webrtc.MimeTypeVP8
	case CodecVP9:
		mime = webrtc.MimeTypeVP9
	case CodecAV1:
		mime = webrtc.MimeTypeAV1
	default:
		return webrtc.RTPCodecCapability{}
	}
	return webrtc.RTPCodecCapability{MimeType: mime, ClockRate: 90000}
}

// ParseCodec maps a codec name or MIME type to a CodecType.
func ParseCodec(s string) CodecType {
	for c, n := range codecNames {
		if s == n || (s != "" && s == c.Capability().MimeType) {
			return c
		}
	}
	return CodecUnknown
}

// Observer receives encoder QoS notifications.
type Observer interface {
	OnRequestSendKeyFrame(stream StreamType)
	OnBitrateUpdated(bps uint32, stream StreamType)
	OnVideoCodecUpdated(codec CodecType, stream StreamType)
}

// Nop ignores every notification. Embed it to override only some.
type Nop struct{}

func (Nop) OnRequestSendKeyFrame(StreamType)          {}
func (Nop) OnBitrateUpdated(uint32, StreamType)       {}
func (Nop) OnVideoCodecUpdated(CodecType, StreamType) {}

var _ Observer = Nop{}

// Multi forwards every notification to all observers in order.
type Multi []Observer

func (m Multi) OnRequestSendKeyFrame(s StreamType) {
	for _, o := range m {
		o.OnRequestSendKeyFrame(s)
	}
}

func (m Multi) OnBitrateUpdated(bps uint32, s StreamType) {
	for _, o := range m {
		o.OnBitrateUpdated(bps, s)
	}
}

func (m Multi) OnVideoCodecUpdated(c CodecType, s StreamType) {
	for _, o := range m {
		o.OnVideoCodecUpdated(c, s)
	}
}
