// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for all frame buffer encoders
package encode

import "github.com/mindspark-ai/mindspark-go/pkg/audio"

// Encoder encodes frame buffers to bytes
type Encoder interface {
	// Encode converts a frame buffer to encoded audio data
	Encode(buf *audio.FrameBuffer) ([]byte, error)
}

// EncoderFunc adapts a function to the Encoder interface
type EncoderFunc func(buf *audio.FrameBuffer) ([]byte, error)

// Encode calls f(buf)
func (f EncoderFunc) Encode(buf *audio.FrameBuffer) ([]byte, error) {
	return f(buf)
}
