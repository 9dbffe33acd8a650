// ABOUTME: Audio type definitions
// ABOUTME: Defines payloads, formats and normalized frame buffers
package audio

import (
	"fmt"
	"time"
)

// Payload is standard base64 text of raw PCM bytes.
type Payload string

// Format describes a PCM stream
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// SpeechFormat is the fixed format of synthesized speech: 24kHz mono s16le.
var SpeechFormat = Format{
	SampleRate: 24000,
	Channels:   1,
	BitDepth:   16,
}

// Validate checks that the format can describe playable audio
func (f Format) Validate() error {
	if f.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, f.SampleRate)
	}
	if f.Channels <= 0 {
		return fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidParameter, f.Channels)
	}
	return nil
}

// String returns a short human readable description
func (f Format) String() string {
	return fmt.Sprintf("%dHz/%dch/%dbit", f.SampleRate, f.Channels, f.BitDepth)
}

// FrameBuffer holds decoded audio as one sample slice per channel.
// Samples lie in [-1.0, 1.0) and every channel has the same length.
type FrameBuffer struct {
	SampleRate int
	Data       [][]float32
}

// NewFrameBuffer builds a buffer from per-channel samples
func NewFrameBuffer(sampleRate int, data [][]float32) (*FrameBuffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidParameter, sampleRate)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: at least one channel is required", ErrInvalidParameter)
	}
	for ch := 1; ch < len(data); ch++ {
		if len(data[ch]) != len(data[0]) {
			return nil, fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrInvalidParameter, ch, len(data[ch]), len(data[0]))
		}
	}
	return &FrameBuffer{SampleRate: sampleRate, Data: data}, nil
}

// Channels returns the channel count
func (b *FrameBuffer) Channels() int {
	return len(b.Data)
}

// Frames returns the number of samples per channel
func (b *FrameBuffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Seconds returns the buffer length in seconds (frames / sample rate)
func (b *FrameBuffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Duration returns the buffer length as a time.Duration
func (b *FrameBuffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// Format returns the buffer's format as 16-bit PCM
func (b *FrameBuffer) Format() Format {
	return Format{SampleRate: b.SampleRate, Channels: b.Channels(), BitDepth: 16}
}

// Channel returns the samples of one channel
func (b *FrameBuffer) Channel(ch int) []float32 {
	return b.Data[ch]
}

// Interleaved returns the samples frame by frame (ch0, ch1, ..., ch0, ch1, ...)
func (b *FrameBuffer) Interleaved() []float32 {
	channels := b.Channels()
	frames := b.Frames()
	out := make([]float32, frames*channels)
	for i := 0; i < frames; i++ {
		for ch := 0; ch < channels; ch++ {
			out[i*channels+ch] = b.Data[ch][i]
		}
	}
	return out
}

// Remix converts the buffer to the given channel count. Mono is copied to
// every output channel and multi-channel audio is averaged down to mono;
// other conversions are not supported.
func (b *FrameBuffer) Remix(channels int) (*FrameBuffer, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", ErrInvalidParameter, channels)
	}
	if channels == b.Channels() {
		return b, nil
	}

	switch {
	case b.Channels() == 1:
		out := make([][]float32, channels)
		for ch := range out {
			out[ch] = b.Data[0]
		}
		return &FrameBuffer{SampleRate: b.SampleRate, Data: out}, nil
	case channels == 1:
		mono := make([]float32, b.Frames())
		for i := range mono {
			var sum float32
			for ch := range b.Data {
				sum += b.Data[ch][i]
			}
			mono[i] = sum / float32(b.Channels())
		}
		return &FrameBuffer{SampleRate: b.SampleRate, Data: [][]float32{mono}}, nil
	default:
		return nil, fmt.Errorf("%w: cannot remix %d channels to %d", ErrInvalidParameter, b.Channels(), channels)
	}
}
