// ABOUTME: Decoder interface definition
// ABOUTME: Common interface for payload decoders
package decode

import "github.com/mindspark-ai/mindspark-go/pkg/audio"

// Decoder decodes a speech payload into a frame buffer
type Decoder interface {
	// Decode converts an encoded payload to normalized frames
	Decode(payload audio.Payload) (*audio.FrameBuffer, error)
}
