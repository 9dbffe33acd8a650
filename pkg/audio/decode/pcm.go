// ABOUTME: PCM audio decoder
// ABOUTME: Converts 16-bit little-endian PCM bytes to normalized float32 frames
package decode

import (
	"fmt"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// pcm16Scale maps the int16 range onto [-1.0, 1.0)
const pcm16Scale = 32768.0

// PCMDecoder decodes base64 payloads of 16-bit PCM in a fixed format
type PCMDecoder struct {
	format audio.Format
}

// NewPCM creates a new PCM decoder
func NewPCM(format audio.Format) (*PCMDecoder, error) {
	if format.BitDepth != 16 {
		return nil, fmt.Errorf("%w: unsupported bit depth: %d (supported: 16)", audio.ErrInvalidParameter, format.BitDepth)
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	return &PCMDecoder{
		format: format,
	}, nil
}

// Decode converts a payload to a frame buffer in the decoder's format
func (d *PCMDecoder) Decode(payload audio.Payload) (*audio.FrameBuffer, error) {
	raw, err := Base64(payload)
	if err != nil {
		return nil, err
	}
	return PCM16(raw, d.format.SampleRate, d.format.Channels)
}

// PCM16 interprets data as signed 16-bit little-endian samples and
// normalizes each one by 32768. Interleaved frames are split across channels.
func PCM16(data []byte, sampleRate, channels int) (*audio.FrameBuffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", audio.ErrInvalidParameter, sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("%w: channel count must be positive, got %d", audio.ErrInvalidParameter, channels)
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: odd PCM byte count %d", audio.ErrMalformedEncoding, len(data))
	}

	numSamples := len(data) / 2
	if numSamples%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels",
			audio.ErrMalformedEncoding, numSamples, channels)
	}

	frames := numSamples / channels
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
	}

	for i := 0; i < numSamples; i++ {
		sample16 := int16(uint16(data[i*2]) | uint16(data[i*2+1])<<8)
		out[i%channels][i/channels] = float32(sample16) / pcm16Scale
	}

	return &audio.FrameBuffer{SampleRate: sampleRate, Data: out}, nil
}
